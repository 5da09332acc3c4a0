package main

import (
	"context"
	"fmt"
	"os"

	"github.com/zachsouth11/Assembler/asm"
	"github.com/zachsouth11/Assembler/asm/isa"
	"nikand.dev/go/cli"
	"tlog.app/go/errors"
	"tlog.app/go/tlog"
)

func main() {
	asmCmd := &cli.Command{
		Name:   "asm",
		Action: asmAct,
		Args:   cli.Args{},
	}

	dumpCmd := &cli.Command{
		Name:   "dump",
		Action: dumpAct,
		Args:   cli.Args{},
	}

	app := &cli.Command{
		Name:        "gasm",
		Description: "gasm is an assembler for a small stack machine",
		Commands: []*cli.Command{
			asmCmd,
			dumpCmd,
		},
	}

	cli.RunAndExit(app, os.Args, os.Environ())
}

func asmAct(c *cli.Command) (err error) {
	ctx := context.Background()
	ctx = tlog.ContextWithSpan(ctx, tlog.Root())

	for _, a := range c.Args {
		img, err := asm.AssembleFile(ctx, a)
		if err != nil {
			return errors.Wrap(err, "assemble %v", a)
		}

		obj := asm.ObjFile(a)

		err = os.WriteFile(obj, img, 0o644)
		if err != nil {
			return errors.Wrap(err, "write %v", obj)
		}

		tlog.SpanFromContext(ctx).Printw("wrote image", "size", len(img), "name", obj)
	}

	return nil
}

func dumpAct(c *cli.Command) (err error) {
	for _, a := range c.Args {
		data, err := os.ReadFile(a)
		if err != nil {
			return errors.Wrap(err, "read %v", a)
		}

		entry, code, err := asm.ReadImage(data)
		if err != nil {
			return errors.Wrap(err, "read image %v", a)
		}

		fmt.Printf("entry %d\n", entry)

		for pc, i := range code {
			fmt.Printf("%4d  %s\n", pc, isa.FormatInstr(i))
		}
	}

	return nil
}
