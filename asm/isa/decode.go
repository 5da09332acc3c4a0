package isa

import (
	"encoding/binary"

	"tlog.app/go/errors"
)

type reader struct {
	b   []byte
	pos int
}

// Decode parses an encoded instruction stream back into instructions.
// It is the inverse of AppendProgram.
func Decode(b []byte) (code []Instr, err error) {
	r := &reader{b: b}

	for r.pos < len(r.b) {
		at := r.pos

		i, err := r.instr()
		if err != nil {
			return nil, errors.Wrap(err, "at offset %#x", at)
		}

		code = append(code, i)
	}

	return code, nil
}

func (r *reader) instr() (Instr, error) {
	op, err := r.byte()
	if err != nil {
		return nil, errors.Wrap(err, "opcode")
	}

	switch op {
	case opPush:
		v, err := r.val()
		if err != nil {
			return nil, errors.Wrap(err, "push operand")
		}

		return Push{Val: v}, nil
	case opPop:
		return Pop{}, nil
	case opPeek:
		off, err := r.u32()
		if err != nil {
			return nil, errors.Wrap(err, "peek operand")
		}

		return Peek{Off: off}, nil
	case opUnary:
		t, err := r.byte()
		if err != nil {
			return nil, errors.Wrap(err, "unary operand")
		}
		if t != 0x00 {
			return nil, errors.New("bad unop tag: %#x", t)
		}

		return Unary{Op: Neg}, nil
	case opBinary:
		t, err := r.byte()
		if err != nil {
			return nil, errors.Wrap(err, "binary operand")
		}
		if t > byte(Eq) {
			return nil, errors.New("bad binop tag: %#x", t)
		}

		return Binary{Op: Binop(t)}, nil
	case opSwap:
		return Swap{}, nil
	case opAlloc:
		return Alloc{}, nil
	case opSet:
		return Set{}, nil
	case opGet:
		return Get{}, nil
	case opVar:
		off, err := r.u32()
		if err != nil {
			return nil, errors.Wrap(err, "var operand")
		}

		return Var{Off: off}, nil
	case opStore:
		off, err := r.u32()
		if err != nil {
			return nil, errors.Wrap(err, "store operand")
		}

		return Store{Off: off}, nil
	case opSetFrame:
		off, err := r.u32()
		if err != nil {
			return nil, errors.Wrap(err, "setframe operand")
		}

		return SetFrame{Off: off}, nil
	case opCall:
		return Call{}, nil
	case opRet:
		return Ret{}, nil
	case opBranch:
		return Branch{}, nil
	case opHalt:
		return Halt{}, nil
	}

	return nil, errors.New("bad opcode: %#x", op)
}

func (r *reader) val() (Val, error) {
	tag, err := r.byte()
	if err != nil {
		return nil, errors.Wrap(err, "tag")
	}

	switch tag {
	case tagUnit:
		return Vunit{}, nil
	case tagI32:
		u, err := r.u32()
		if err != nil {
			return nil, err
		}

		return Vi32(u), nil
	case tagTrue:
		return Vbool(true), nil
	case tagFalse:
		return Vbool(false), nil
	case tagLoc:
		u, err := r.u32()
		if err != nil {
			return nil, err
		}

		return Vloc(u), nil
	case tagUndef:
		return Vundef{}, nil
	case tagReserved:
		return nil, errors.New("reserved value tag: %#x", tag)
	}

	return nil, errors.New("bad value tag: %#x", tag)
}

func (r *reader) byte() (byte, error) {
	if r.pos >= len(r.b) {
		return 0, errors.New("unexpected end of stream")
	}

	c := r.b[r.pos]
	r.pos++

	return c, nil
}

func (r *reader) u32() (uint32, error) {
	if r.pos+4 > len(r.b) {
		return 0, errors.New("unexpected end of stream")
	}

	u := binary.BigEndian.Uint32(r.b[r.pos:])
	r.pos += 4

	return u, nil
}
