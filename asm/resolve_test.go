package asm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zachsouth11/Assembler/asm/isa"
)

func TestResolveForward(t *testing.T) {
	prog := []isa.PInstr{
		isa.PPush("L1"),
		isa.Pop{},
		isa.PLabel("L1"),
		isa.Halt{},
	}

	code := Resolve(context.Background(), prog)

	assert.Equal(t, []isa.Instr{
		isa.Push{Val: isa.Vloc(2)},
		isa.Pop{},
		isa.Halt{},
		isa.Push{Val: isa.Vloc(3)},
	}, code)
}

func TestResolveBackward(t *testing.T) {
	prog := []isa.PInstr{
		isa.PLabel("L1"),
		isa.Pop{},
		isa.PPush("L1"),
		isa.Halt{},
	}

	code := Resolve(context.Background(), prog)

	assert.Equal(t, []isa.Instr{
		isa.Pop{},
		isa.Push{Val: isa.Vloc(0)},
		isa.Halt{},
		isa.Push{Val: isa.Vloc(3)},
	}, code)
}

// The sentinel makes the output one longer than the counted instructions
// and carries the count as its payload.
func TestResolveSentinel(t *testing.T) {
	prog := []isa.PInstr{
		isa.PLabel("L1"),
		isa.Push{Val: isa.Vi32(1)},
		isa.PLabel("L2"),
		isa.Swap{},
		isa.Call{},
	}

	code := Resolve(context.Background(), prog)

	assert.Len(t, code, 4)
	assert.Equal(t, isa.Push{Val: isa.Vloc(3)}, code[3])
}

func TestResolveDuplicateLabel(t *testing.T) {
	prog := []isa.PInstr{
		isa.PLabel("L1"),
		isa.Pop{},
		isa.PLabel("L1"),
		isa.PPush("L1"),
	}

	code := Resolve(context.Background(), prog)

	// The second binding wins.
	assert.Equal(t, isa.Push{Val: isa.Vloc(1)}, code[1])
}

// A push of a label that was never defined emits nothing.
func TestResolveUnboundLabel(t *testing.T) {
	prog := []isa.PInstr{
		isa.PPush("L1"),
		isa.Halt{},
	}

	code := Resolve(context.Background(), prog)

	assert.Equal(t, []isa.Instr{
		isa.Halt{},
		isa.Push{Val: isa.Vloc(2)},
	}, code)
}

func TestResolveEmpty(t *testing.T) {
	code := Resolve(context.Background(), nil)

	assert.Equal(t, []isa.Instr{isa.Push{Val: isa.Vloc(0)}}, code)
}
