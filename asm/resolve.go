package asm

import (
	"context"

	"github.com/zachsouth11/Assembler/asm/isa"
	"tlog.app/go/loc"
	"tlog.app/go/tlog"
)

// Resolve replaces label pseudo-instructions with absolute locations in
// two passes over the program.
//
// Pass 1 assigns each label the pc of the next emitted instruction, so
// forward and backward references resolve alike. Pass 2 emits the native
// stream. A trailing `push <count>` sentinel carries the instruction
// count; the image writer reuses it as the entry pc.
func Resolve(ctx context.Context, prog []isa.PInstr) []isa.Instr {
	tr := tlog.SpanFromContext(ctx)

	pc := uint32(0)
	labels := map[isa.Label]uint32{}

	for _, p := range prog {
		if l, ok := p.(isa.PLabel); ok {
			// Rebinding a name overwrites the earlier address.
			labels[isa.Label(l)] = pc
			continue
		}

		pc++
	}

	code := make([]isa.Instr, 0, pc+1)

	for _, p := range prog {
		switch p := p.(type) {
		case isa.PLabel:
		case isa.PPush:
			u, ok := labels[isa.Label(p)]
			if !ok {
				// An unbound label drops the push entirely, shifting every
				// following address. Existing images depend on it.
				tlog.V("resolve").Printw("dropped push of unbound label", "label", p, "from", loc.Caller(1))
				continue
			}

			code = append(code, isa.Push{Val: isa.Vloc(u)})
		default:
			code = append(code, p.(isa.Instr))
		}
	}

	code = append(code, isa.Push{Val: isa.Vloc(pc)})

	tr.Printw("resolved labels", "count", pc, "labels", len(labels), "emitted", len(code))

	return code
}
