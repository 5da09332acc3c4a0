package isa

import (
	"encoding/binary"
	"fmt"
)

// Opcode bytes, fixed by the image format.
const (
	opPush byte = iota
	opPop
	opPeek
	opUnary
	opBinary
	opSwap
	opAlloc
	opSet
	opGet
	opVar
	opStore
	opSetFrame
	opCall
	opRet
	opBranch
	opHalt
)

// Value tag bytes.
const (
	tagUnit  byte = 0x00
	tagI32   byte = 0x01
	tagTrue  byte = 0x02
	tagFalse byte = 0x03
	tagLoc   byte = 0x04
	tagUndef byte = 0x05

	// tagReserved marks the machine-internal values. An image must never
	// contain it.
	tagReserved byte = 0x11
)

// AppendVal appends the encoding of v to b. Multi-byte fields are
// big-endian.
func AppendVal(b []byte, v Val) []byte {
	switch v := v.(type) {
	case Vunit:
		return append(b, tagUnit)
	case Vi32:
		return binary.BigEndian.AppendUint32(append(b, tagI32), uint32(v))
	case Vbool:
		if v {
			return append(b, tagTrue)
		}

		return append(b, tagFalse)
	case Vloc:
		return binary.BigEndian.AppendUint32(append(b, tagLoc), uint32(v))
	case Vundef:
		return append(b, tagUndef)
	case Vsize, Vaddr:
		return append(b, tagReserved)
	}

	panic(fmt.Sprintf("unencodable value: %T", v))
}

// AppendUnop appends the encoding of u to b. Every unary operator encodes
// to the same byte since there is only one.
func AppendUnop(b []byte, u Unop) []byte {
	return append(b, 0x00)
}

// AppendBinop appends the encoding of op to b.
func AppendBinop(b []byte, op Binop) []byte {
	return append(b, byte(op))
}

// AppendInstr appends the encoding of i to b: the opcode byte, then the
// operand bytes if the instruction has an operand.
func AppendInstr(b []byte, i Instr) []byte {
	switch i := i.(type) {
	case Push:
		return AppendVal(append(b, opPush), i.Val)
	case Pop:
		return append(b, opPop)
	case Peek:
		return binary.BigEndian.AppendUint32(append(b, opPeek), i.Off)
	case Unary:
		return AppendUnop(append(b, opUnary), i.Op)
	case Binary:
		return AppendBinop(append(b, opBinary), i.Op)
	case Swap:
		return append(b, opSwap)
	case Alloc:
		return append(b, opAlloc)
	case Set:
		return append(b, opSet)
	case Get:
		return append(b, opGet)
	case Var:
		return binary.BigEndian.AppendUint32(append(b, opVar), i.Off)
	case Store:
		return binary.BigEndian.AppendUint32(append(b, opStore), i.Off)
	case SetFrame:
		return binary.BigEndian.AppendUint32(append(b, opSetFrame), i.Off)
	case Call:
		return append(b, opCall)
	case Ret:
		return append(b, opRet)
	case Branch:
		return append(b, opBranch)
	case Halt:
		return append(b, opHalt)
	}

	panic(fmt.Sprintf("unencodable instruction: %T", i))
}

// AppendProgram appends the encoding of each instruction in program order.
func AppendProgram(b []byte, code []Instr) []byte {
	for _, i := range code {
		b = AppendInstr(b, i)
	}

	return b
}
