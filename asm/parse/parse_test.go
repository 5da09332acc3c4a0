package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zachsouth11/Assembler/asm/isa"
)

func TestLine(t *testing.T) {
	for _, tc := range []struct {
		src  string
		want isa.PInstr
	}{
		{"push 123", isa.Push{Val: isa.Vi32(123)}},
		{"push -5", isa.Push{Val: isa.Vi32(-5)}},
		{"push 4294967295", isa.Push{Val: isa.Vloc(4294967295)}},
		{"push tt", isa.Push{Val: isa.Vunit{}}},
		{"push undef", isa.Push{Val: isa.Vundef{}}},
		{"push true", isa.Push{Val: isa.Vbool(true)}},
		{"push L1", isa.PPush("L1")},
		{"push _Lret0", isa.PPush("_Lret0")},
		{"Labc123:", isa.PLabel("Labc123")},
		{"_L9:", isa.PLabel("_L9")},
		{"  halt  ", isa.Halt{}},
		{"binary ==", isa.Binary{Op: isa.Eq}},
	} {
		p, err := Line(tc.src)
		require.NoError(t, err, "%q", tc.src)
		assert.Equal(t, tc.want, p, "%q", tc.src)
	}
}

func TestLineErrors(t *testing.T) {
	for _, tc := range []struct {
		src string
		msg string
	}{
		{"", "empty line"},
		{"jmp L1", "unknown mnemonic"},
		{"peek", "want 1 operands"},
		{"pop 1", "want 0 operands"},
		{"push", "want 1 operands"},
		{"push 99999999999", "bad value"},
		{"peek -1", "bad offset"},
		{"unary not", "bad unop"},
		{"binary %", "bad binop"},
		{"Lfo!o:", "bad label"},
	} {
		_, err := Line(tc.src)
		assert.ErrorContains(t, err, tc.msg, "%q", tc.src)
	}
}

func TestLabelName(t *testing.T) {
	for _, s := range []string{"L", "L1", "Labc123", "_L", "_Lx9"} {
		_, err := LabelName(s)
		assert.NoError(t, err, "%q", s)
	}

	for _, s := range []string{"", "_", "x", "main", "9L", "__L", "L a", "L-1", "_9L"} {
		_, err := LabelName(s)
		assert.Error(t, err, "%q", s)
	}
}

// Rendering a pseudo-instruction and parsing it back is the identity.
func TestRoundTrip(t *testing.T) {
	prog := []isa.PInstr{
		isa.PLabel("Ltest"),
		isa.PPush("Ltest"),
	}

	for _, i := range []isa.Instr{
		isa.Push{Val: isa.Vi32(123)},
		isa.Push{Val: isa.Vunit{}},
		isa.Push{Val: isa.Vbool(false)},
		isa.Push{Val: isa.Vundef{}},
		isa.Pop{},
		isa.Peek{Off: 45},
		isa.Unary{Op: isa.Neg},
		isa.Binary{Op: isa.Lt},
		isa.Swap{},
		isa.Alloc{},
		isa.Set{},
		isa.Get{},
		isa.Var{Off: 65},
		isa.Store{Off: 5},
		isa.SetFrame{Off: 2},
		isa.Call{},
		isa.Ret{},
		isa.Branch{},
		isa.Halt{},
	} {
		prog = append(prog, i)
	}

	for _, p := range prog {
		src := isa.FormatPInstr(p)

		back, err := Line(src)
		require.NoError(t, err, "%q", src)
		assert.Equal(t, p, back, "%q", src)
	}
}

func TestProgram(t *testing.T) {
	prog, err := Program([]byte("push 1\npush 2\nbinary +\nhalt\n"))
	require.NoError(t, err)
	assert.Equal(t, []isa.PInstr{
		isa.Push{Val: isa.Vi32(1)},
		isa.Push{Val: isa.Vi32(2)},
		isa.Binary{Op: isa.Add},
		isa.Halt{},
	}, prog)

	_, err = Program([]byte("push 1\n\nhalt\n"))
	assert.ErrorContains(t, err, "line 2")

	prog, err = Program(nil)
	require.NoError(t, err)
	assert.Empty(t, prog)
}
