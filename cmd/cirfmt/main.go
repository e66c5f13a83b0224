// Command cirfmt builds a small demonstration function, optionally
// legalizes its global values, verifies it, and prints the result — a
// thin end-to-end smoke test of the four packages this module exports,
// in the spirit of the teacher's cmd/compile smoke-test entry points.
package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/nimbuscode/cir/internal/clog"
	"github.com/nimbuscode/cir/ir"
	"github.com/nimbuscode/cir/isa"
	"github.com/nimbuscode/cir/legalize"
	"github.com/nimbuscode/cir/verify"
)

func main() {
	expand := flag.Bool("expand", false, "legalize global-value references before printing")
	verbose := flag.Bool("v", false, "log each pass step at debug level")
	out := flag.String("o", "-", "output file, or - for stdout")
	flag.Parse()

	var logger *zap.Logger
	if *verbose {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintln(os.Stderr, "cirfmt: building logger:", err)
			os.Exit(1)
		}
		defer l.Sync()
		logger = l
	}

	f := demoFunction()
	target := isa.Generic64{}

	if *expand {
		if err := legalize.ExpandGlobalValues(f, target, legalize.WithLogger(logger)); err != nil {
			fmt.Fprintln(os.Stderr, "cirfmt: legalizing:", err)
			os.Exit(1)
		}
	}

	if err := verify.Function(f, verify.WithLogger(logger)); err != nil {
		fmt.Fprintln(os.Stderr, "cirfmt: function is not well formed:")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	clog.Info(logger, "function verified", zap.String("function", f.Name))

	text := f.Format()
	if *out == "-" {
		fmt.Print(text)
		return
	}
	if err := os.WriteFile(*out, []byte(text), 0o644); err != nil {
		fmt.Fprintln(os.Stderr, "cirfmt: writing output:", err)
		os.Exit(1)
	}
}

// demoFunction builds a function that loads a field out of the VM context
// and returns it, the canonical shape legalize.ExpandGlobalValues exists to
// handle.
func demoFunction() *ir.Function {
	sig := ir.Signature{
		Params:      []ir.AbiParam{{Type: ir.TypeI64, Purpose: ir.PurposeVMContext}},
		ReturnTypes: []ir.AbiParam{{Type: ir.TypeI64}},
	}
	f := ir.NewFunction("demo", sig)

	entry := f.DFG.MakeEbb()
	f.Layout.AppendEbb(entry)
	f.DFG.AppendEbbArg(entry, ir.TypeI64)

	vmctx := f.DFG.DeclareGlobalValue(ir.GlobalValueData{Kind: ir.GlobalVMContext})
	field := f.DFG.DeclareGlobalValue(ir.GlobalValueData{
		Kind: ir.GlobalIAddImm, Base: vmctx, Offset: 24, GlobalType: ir.TypeI64,
	})
	loaded := f.DFG.DeclareGlobalValue(ir.GlobalValueData{
		Kind: ir.GlobalLoad, Base: field, Offset: 0, GlobalType: ir.TypeI64,
	})

	b := ir.InstBuilder{F: f, Ins: ir.AppendToEbb{Ebb: entry}}
	addr := b.GlobalValue(ir.TypeI64, loaded)
	b.Return(addr)

	return f
}
