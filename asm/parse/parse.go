// Package parse implements the textual grammar: one instruction or label
// pseudo-instruction per line, tokens separated by whitespace.
package parse

import (
	"strconv"
	"strings"

	"github.com/zachsouth11/Assembler/asm/isa"
	"tlog.app/go/errors"
)

// Program parses full source text, one pseudo-instruction per line.
// The first bad line aborts the parse with its 1-based line number.
func Program(text []byte) (prog []isa.PInstr, err error) {
	if len(text) == 0 {
		return nil, nil
	}

	lines := strings.Split(strings.TrimSuffix(string(text), "\n"), "\n")

	prog = make([]isa.PInstr, 0, len(lines))

	for n, l := range lines {
		p, err := Line(strings.TrimSuffix(l, "\r"))
		if err != nil {
			return nil, errors.Wrap(err, "line %d", n+1)
		}

		prog = append(prog, p)
	}

	return prog, nil
}

// Line parses one source line: a label definition, a push of a label, or a
// native instruction. A push whose operand is not a valid label falls back
// to push of a value.
func Line(s string) (isa.PInstr, error) {
	f := strings.Fields(s)
	if len(f) == 0 {
		return nil, errors.New("empty line")
	}

	if f[0] == "push" && len(f) == 2 {
		if l, err := LabelName(f[1]); err == nil {
			return isa.PPush(l), nil
		}
	}

	if stem, ok := strings.CutSuffix(f[0], ":"); ok && len(f) == 1 {
		l, err := LabelName(stem)
		if err != nil {
			return nil, errors.Wrap(err, "label definition")
		}

		return isa.PLabel(l), nil
	}

	return Instr(f)
}

// Instr parses a native instruction from the whitespace-split tokens of a
// line. Operand arity is strict: one operand token for the mnemonics that
// take one, none for the rest.
func Instr(f []string) (isa.Instr, error) {
	mn := f[0]

	nargs := 0
	switch mn {
	case "push", "peek", "unary", "binary", "var", "store", "setframe":
		nargs = 1
	}

	if len(f)-1 != nargs {
		return nil, errors.New("%v: want %d operands, got %d", mn, nargs, len(f)-1)
	}

	switch mn {
	case "push":
		v, err := Val(f[1])
		if err != nil {
			return nil, errors.Wrap(err, "push operand")
		}

		return isa.Push{Val: v}, nil
	case "pop":
		return isa.Pop{}, nil
	case "peek":
		off, err := offset(f[1])
		if err != nil {
			return nil, errors.Wrap(err, "peek operand")
		}

		return isa.Peek{Off: off}, nil
	case "unary":
		u, err := Unop(f[1])
		if err != nil {
			return nil, errors.Wrap(err, "unary operand")
		}

		return isa.Unary{Op: u}, nil
	case "binary":
		op, err := Binop(f[1])
		if err != nil {
			return nil, errors.Wrap(err, "binary operand")
		}

		return isa.Binary{Op: op}, nil
	case "swap":
		return isa.Swap{}, nil
	case "alloc":
		return isa.Alloc{}, nil
	case "set":
		return isa.Set{}, nil
	case "get":
		return isa.Get{}, nil
	case "var":
		off, err := offset(f[1])
		if err != nil {
			return nil, errors.Wrap(err, "var operand")
		}

		return isa.Var{Off: off}, nil
	case "store":
		off, err := offset(f[1])
		if err != nil {
			return nil, errors.Wrap(err, "store operand")
		}

		return isa.Store{Off: off}, nil
	case "setframe":
		off, err := offset(f[1])
		if err != nil {
			return nil, errors.Wrap(err, "setframe operand")
		}

		return isa.SetFrame{Off: off}, nil
	case "call":
		return isa.Call{}, nil
	case "ret":
		return isa.Ret{}, nil
	case "branch":
		return isa.Branch{}, nil
	case "halt":
		return isa.Halt{}, nil
	}

	return nil, errors.New("unknown mnemonic: %v", mn)
}

// Val parses a value token. Keywords first, then signed 32-bit integer,
// then unsigned 32-bit location.
func Val(s string) (isa.Val, error) {
	switch s {
	case "tt":
		return isa.Vunit{}, nil
	case "undef":
		return isa.Vundef{}, nil
	case "true":
		return isa.Vbool(true), nil
	case "false":
		return isa.Vbool(false), nil
	}

	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return isa.Vi32(i), nil
	}

	if u, err := strconv.ParseUint(s, 10, 32); err == nil {
		return isa.Vloc(u), nil
	}

	return nil, errors.New("bad value: %q", s)
}

// Unop parses a unary operator token.
func Unop(s string) (isa.Unop, error) {
	if s == "neg" {
		return isa.Neg, nil
	}

	return 0, errors.New("bad unop: %q", s)
}

// Binop parses a binary operator token.
func Binop(s string) (isa.Binop, error) {
	switch s {
	case "+":
		return isa.Add, nil
	case "*":
		return isa.Mul, nil
	case "-":
		return isa.Sub, nil
	case "/":
		return isa.Div, nil
	case "<":
		return isa.Lt, nil
	case "==":
		return isa.Eq, nil
	}

	return 0, errors.New("bad binop: %q", s)
}

// LabelName parses a bare label token, without a trailing colon.
func LabelName(s string) (isa.Label, error) {
	l := isa.Label(s)
	if !l.Valid() {
		return "", errors.New("bad label: %q", s)
	}

	return l, nil
}

func offset(s string) (uint32, error) {
	u, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, errors.New("bad offset: %q", s)
	}

	return uint32(u), nil
}
