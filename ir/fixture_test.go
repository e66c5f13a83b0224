package ir_test

import (
	"github.com/nimbuscode/cir/ir"
)

// buildDiamond constructs a small diamond-shaped function:
//
//	ebb0(v0: i32):
//	    brnz v0, ebb1()
//	    jump ebb2()
//	ebb1():
//	    jump ebb3()
//	ebb2():
//	    jump ebb3()
//	ebb3():
//	    return
//
// used by layout tests as a minimal function with more than one EBB.
func buildDiamond() *ir.Function {
	sig := ir.Signature{Params: []ir.AbiParam{{Type: ir.TypeI32}}}
	f := ir.NewFunction("diamond", sig)

	ebb0 := f.DFG.MakeEbb()
	ebb1 := f.DFG.MakeEbb()
	ebb2 := f.DFG.MakeEbb()
	ebb3 := f.DFG.MakeEbb()
	f.Layout.AppendEbb(ebb0)
	f.Layout.AppendEbb(ebb1)
	f.Layout.AppendEbb(ebb2)
	f.Layout.AppendEbb(ebb3)

	v0 := f.DFG.AppendEbbArg(ebb0, ir.TypeI32)

	b0 := ir.InstBuilder{F: f, Ins: ir.AppendToEbb{Ebb: ebb0}}
	b0.Brnz(v0, ebb1)
	b0.Jump(ebb2)

	b1 := ir.InstBuilder{F: f, Ins: ir.AppendToEbb{Ebb: ebb1}}
	b1.Jump(ebb3)

	b2 := ir.InstBuilder{F: f, Ins: ir.AppendToEbb{Ebb: ebb2}}
	b2.Jump(ebb3)

	b3 := ir.InstBuilder{F: f, Ins: ir.AppendToEbb{Ebb: ebb3}}
	b3.Return()

	return f
}

// buildStraightLine constructs a single-EBB function that adds its one
// argument to a constant and returns it, used by tests that only need a
// trivially well-formed function.
func buildStraightLine() (f *ir.Function, entry ir.Ebb, arg ir.Value) {
	sig := ir.Signature{Params: []ir.AbiParam{{Type: ir.TypeI32}}, ReturnTypes: []ir.AbiParam{{Type: ir.TypeI32}}}
	f = ir.NewFunction("straight_line", sig)

	entry = f.DFG.MakeEbb()
	f.Layout.AppendEbb(entry)
	arg = f.DFG.AppendEbbArg(entry, ir.TypeI32)

	b := ir.InstBuilder{F: f, Ins: ir.AppendToEbb{Ebb: entry}}
	one := b.Iconst(ir.TypeI32, 1)
	sum := b.Iadd(ir.TypeI32, arg, one)
	b.Return(sum)

	return f, entry, arg
}
