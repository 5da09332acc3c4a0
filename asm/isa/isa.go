package isa

import (
	"fmt"
	"strconv"
)

type (
	// Val is a machine value: one of Vunit, Vi32, Vbool, Vloc, Vundef,
	// or the runtime-internal Vsize and Vaddr.
	Val any

	// Vunit is the unit value.
	Vunit struct{}
	// Vi32 is a 32-bit signed integer.
	Vi32 int32
	// Vbool is a boolean.
	Vbool bool
	// Vloc is a stack or instruction location.
	Vloc uint32
	// Vundef is the undefined value.
	Vundef struct{}

	// Vsize and Vaddr exist only inside the executing machine: heap object
	// size metadata and heap pointers. They have no source form and the
	// assembler never emits them.
	Vsize int32
	Vaddr uint64

	// Unop is a unary operator.
	Unop int
	// Binop is a binary operator. The constants are ordered to match the
	// binary encoding.
	Binop int

	// Instr is a native machine instruction: one of the sixteen types below.
	Instr any

	// Push pushes a value onto the stack.
	Push struct{ Val Val }
	// Pop discards the top of the stack.
	Pop struct{}
	// Peek pushes the value Off positions from the top.
	Peek struct{ Off uint32 }
	// Unary applies Op to the top value.
	Unary struct{ Op Unop }
	// Binary applies Op to the top two values, replacing them.
	Binary struct{ Op Binop }
	// Swap exchanges the top two values.
	Swap struct{}
	// Alloc allocates an array on the heap.
	Alloc struct{}
	// Set writes to a heap array.
	Set struct{}
	// Get reads from a heap array.
	Get struct{}
	// Var pushes the value at stack position fp+Off.
	Var struct{ Off uint32 }
	// Store writes the top value to stack position fp+Off.
	Store struct{ Off uint32 }
	// SetFrame sets fp to the stack length minus Off.
	SetFrame struct{ Off uint32 }
	// Call, Ret and Branch transfer control; Halt stops the machine.
	Call   struct{}
	Ret    struct{}
	Branch struct{}
	Halt   struct{}

	// Label is a symbolic program location name.
	Label string

	// PInstr extends Instr with the label pseudo-instructions the machine
	// cannot execute: PLabel, PPush, or a bare Instr.
	PInstr any

	// PLabel labels the next instruction.
	PLabel Label
	// PPush pushes the location a label resolves to.
	PPush Label
)

const (
	// Neg is boolean negation, the only unary operator.
	Neg Unop = iota
)

const (
	Add Binop = iota
	Mul
	Sub
	Div
	Lt
	Eq
)

func (u Unop) String() string {
	switch u {
	case Neg:
		return "neg"
	}

	panic(fmt.Sprintf("bad unop: %d", int(u)))
}

func (b Binop) String() string {
	switch b {
	case Add:
		return "+"
	case Mul:
		return "*"
	case Sub:
		return "-"
	case Div:
		return "/"
	case Lt:
		return "<"
	case Eq:
		return "=="
	}

	panic(fmt.Sprintf("bad binop: %d", int(b)))
}

// Valid reports whether l obeys label syntax: the first character is 'L',
// or the name starts with "_L", and every character after the first is
// ASCII alphanumeric.
func (l Label) Valid() bool {
	s := string(l)

	if len(s) != 0 && s[0] == '_' {
		s = s[1:]
	}

	if len(s) == 0 || s[0] != 'L' {
		return false
	}

	for i := 1; i < len(s); i++ {
		if !alnum(s[i]) {
			return false
		}
	}

	return true
}

func alnum(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

// FormatVal renders v in source form. Internal-only values have none.
func FormatVal(v Val) string {
	switch v := v.(type) {
	case Vunit:
		return "tt"
	case Vi32:
		return strconv.FormatInt(int64(v), 10)
	case Vbool:
		if v {
			return "true"
		}

		return "false"
	case Vloc:
		return strconv.FormatUint(uint64(v), 10)
	case Vundef:
		return "undef"
	}

	panic(fmt.Sprintf("unrepresentable value: %T", v))
}

// FormatInstr renders i in source form.
func FormatInstr(i Instr) string {
	switch i := i.(type) {
	case Push:
		return "push " + FormatVal(i.Val)
	case Pop:
		return "pop"
	case Peek:
		return "peek " + strconv.FormatUint(uint64(i.Off), 10)
	case Unary:
		return "unary " + i.Op.String()
	case Binary:
		return "binary " + i.Op.String()
	case Swap:
		return "swap"
	case Alloc:
		return "alloc"
	case Set:
		return "set"
	case Get:
		return "get"
	case Var:
		return "var " + strconv.FormatUint(uint64(i.Off), 10)
	case Store:
		return "store " + strconv.FormatUint(uint64(i.Off), 10)
	case SetFrame:
		return "setframe " + strconv.FormatUint(uint64(i.Off), 10)
	case Call:
		return "call"
	case Ret:
		return "ret"
	case Branch:
		return "branch"
	case Halt:
		return "halt"
	}

	panic(fmt.Sprintf("bad instruction: %T", i))
}

// FormatPInstr renders p in source form.
func FormatPInstr(p PInstr) string {
	switch p := p.(type) {
	case PLabel:
		return string(p) + ":"
	case PPush:
		return "push " + string(p)
	}

	return FormatInstr(p)
}
