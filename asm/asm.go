package asm

import (
	"context"
	"encoding/binary"
	"os"

	"github.com/zachsouth11/Assembler/asm/isa"
	"github.com/zachsouth11/Assembler/asm/parse"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

// AssembleFile translates the assembly source in name to a loadable image.
func AssembleFile(ctx context.Context, name string) (img []byte, err error) {
	text, err := os.ReadFile(name)
	if err != nil {
		return nil, errors.Wrap(err, "read file")
	}

	tlog.SpanFromContext(ctx).Printw("read file", "size", len(text), "name", name)

	return Assemble(ctx, name, text)
}

// Assemble runs the full pipeline: parse the source, resolve labels,
// encode, and prepend the entry-pc header.
func Assemble(ctx context.Context, name string, text []byte) (img []byte, err error) {
	tr, ctx := tlog.SpawnFromContextAndWrap(ctx, "assemble", "name", name)
	defer tr.Finish("err", &err)

	prog, err := parse.Program(text)
	if err != nil {
		return nil, errors.Wrap(err, "parse text")
	}

	code := Resolve(ctx, prog)

	return Image(code), nil
}

// Image lays out the final image from the resolver output: 4 big-endian
// bytes of entry pc, then the encoded instruction stream. The trailing
// sentinel is removed and its payload becomes the entry pc; if the last
// instruction is not a push of a location the entry pc is 0.
func Image(code []isa.Instr) []byte {
	var entry uint32

	if n := len(code); n != 0 {
		if p, ok := code[n-1].(isa.Push); ok {
			if u, ok := p.Val.(isa.Vloc); ok {
				entry = uint32(u)
			}
		}

		code = code[:n-1]
	}

	img := binary.BigEndian.AppendUint32(nil, entry)

	return isa.AppendProgram(img, code)
}

// ReadImage splits an image into its entry pc and decoded instructions.
func ReadImage(data []byte) (entry uint32, code []isa.Instr, err error) {
	if len(data) < 4 {
		return 0, nil, errors.New("short image: %d bytes", len(data))
	}

	entry = binary.BigEndian.Uint32(data)

	code, err = isa.Decode(data[4:])
	if err != nil {
		return 0, nil, errors.Wrap(err, "decode body")
	}

	return entry, code, nil
}

// ObjFile derives the object file name the way existing callers expect:
// the last two characters of the source name are replaced by ".o".
func ObjFile(name string) string {
	if len(name) < 2 {
		return ".o"
	}

	return name[:len(name)-2] + ".o"
}
