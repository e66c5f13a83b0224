// Package legalize expands target-independent global-value references into
// concrete address arithmetic, mirroring Cranelift's
// legalizer::globalvalue::expand_global_value. This is the only
// legalization pass spec §4.F asks for: turning OpGlobalValue/OpSymbolValue
// instructions into the Load/IaddImm/SymbolValue instructions that actually
// compute an address.
package legalize

import (
	"go.uber.org/zap"

	"github.com/nimbuscode/cir/internal/clog"
	"github.com/nimbuscode/cir/ir"
	"github.com/nimbuscode/cir/isa"
)

// Option configures an ExpandGlobalValues run.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger attaches a logger the pass uses to report each expansion step.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// ExpandGlobalValues rewrites every OpGlobalValue/OpSymbolValue instruction
// in f into concrete address computation, in layout order, iterating to a
// fixed point: expanding one global value can introduce a reference to
// another (e.g. an IAddImm's Base), so a single pass is not enough in
// general (spec §4.F, invariant I5 requires the Base graph be acyclic, which
// is what guarantees this loop terminates).
func ExpandGlobalValues(f *ir.Function, target isa.TargetIsa, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	for {
		changed := false
		for _, ebb := range f.Layout.Ebbs() {
			for _, inst := range f.Layout.EbbInsts(ebb) {
				d := f.DFG.InstData(inst)
				if d.Format != ir.FormatUnaryGlobalValue {
					continue
				}
				if expandGlobalValue(f, target, inst, d, &o) {
					changed = true
				}
			}
		}
		if !changed {
			return nil
		}
	}
}

// expandGlobalValue rewrites a single OpGlobalValue/OpSymbolValue
// instruction, dispatching on the referenced GlobalValueData's kind (spec
// §4.F.1-4, ported from globalvalue.rs's expand_global_value). It reports
// whether it rewrote anything, so the caller's fixed-point loop can detect
// when there is nothing left to do.
func expandGlobalValue(f *ir.Function, target isa.TargetIsa, inst ir.Inst, d ir.InstructionData, o *options) bool {
	gv := d.Global
	data := f.GlobalValues.At(gv)
	ctrl := d.Ctrl

	switch data.Kind {
	case ir.GlobalVMContext:
		return expandVMContext(f, inst, o)
	case ir.GlobalIAddImm:
		return expandIAddImm(f, inst, ctrl, gv, data, o)
	case ir.GlobalLoad:
		return expandLoad(f, target, inst, ctrl, gv, data, o)
	case ir.GlobalSymbol:
		return expandSymbol(f, target, inst, gv, o)
	default:
		panic("legalize: unknown global value kind in " + f.DisplayInst(inst))
	}
}

// expandVMContext collapses a reference to the VM context global into the
// function's reserved vmctx parameter, the way Cranelift's vmctx_addr does:
// alias the instruction's result to that parameter, clear the instruction's
// results, and remove it from layout. A function with no vmctx parameter in
// its Signature is a caller bug; the original panics the same way.
func expandVMContext(f *ir.Function, inst ir.Inst, o *options) bool {
	vmctx, ok := f.SpecialParam(ir.PurposeVMContext)
	if !ok {
		panic("legalize: function references vmctx global value but declares no vmctx parameter")
	}
	result := f.DFG.FirstResult(inst)
	f.DFG.ClearResults(inst)
	f.DFG.ChangeToAlias(result, vmctx)
	f.Layout.RemoveInst(inst)
	clog.Debug(o.logger, "expanded vmctx global value", zap.Stringer("inst", inst))
	return true
}

// expandIAddImm rewrites `v = global_value.T gv` where gv is IAddImm(base,
// offset) into `v = iadd_imm.T base_addr, offset`, where base_addr is
// either the vmctx parameter directly (when base is itself the VMContext
// global, Cranelift's "tidiness" short-circuit that avoids inserting a
// redundant global_value instruction for vmctx) or a fresh global_value
// instruction referencing base, inserted immediately before the
// instruction being expanded. The freshly inserted global_value is typed
// with gv's own global_type (iadd_imm_addr's `global_type` parameter),
// not base's — base's type is irrelevant here.
func expandIAddImm(f *ir.Function, inst ir.Inst, ctrl ir.Type, gv ir.GlobalValue, data ir.GlobalValueData, o *options) bool {
	baseAddr := addrOf(f, inst, data.Base, data.GlobalType)
	f.DFG.Replace(inst).IaddImm(ctrl, baseAddr, data.Offset)
	clog.Debug(o.logger, "expanded iadd_imm global value", zap.Stringer("inst", inst), zap.Stringer("global_value", gv))
	return true
}

// expandLoad rewrites `v = global_value.T gv` where gv is Load(base,
// offset) into `v = load.T notrap aligned base_addr, offset`, applying the
// same vmctx short-circuit as expandIAddImm. Per load_addr, the freshly
// inserted global_value computing base_addr is typed with the target's
// pointer type, not gv's global_type (the loaded value's type need not be
// pointer-width at all).
func expandLoad(f *ir.Function, target isa.TargetIsa, inst ir.Inst, ctrl ir.Type, gv ir.GlobalValue, data ir.GlobalValueData, o *options) bool {
	baseAddr := addrOf(f, inst, data.Base, target.PointerType())
	f.DFG.Replace(inst).Load(ctrl, ir.NotrapAligned(), baseAddr, int32(data.Offset))
	clog.Debug(o.logger, "expanded load global value", zap.Stringer("inst", inst), zap.Stringer("global_value", gv))
	return true
}

// expandSymbol rewrites `v = global_value.T gv` into `v = symbol_value.T
// gv`, typing the result with the target's pointer type per `symbol`'s
// `ptr_ty` (a symbolic address is always pointer-width, regardless of
// gv's original controlling type). It reports false (nothing changed) if
// inst is already a symbol_value instruction, so the fixed-point loop
// converges instead of looping forever re-replacing an already-expanded
// instruction with an identical one.
func expandSymbol(f *ir.Function, target isa.TargetIsa, inst ir.Inst, gv ir.GlobalValue, o *options) bool {
	if d := f.DFG.InstData(inst); d.Opcode == ir.OpSymbolValue {
		return false
	}
	f.DFG.Replace(inst).SymbolValue(target.PointerType(), gv)
	clog.Debug(o.logger, "expanded symbol global value", zap.Stringer("inst", inst))
	return true
}

// addrOf returns the Value carrying base's address, for use as the operand
// of an iadd_imm or load expansion: the function's vmctx parameter
// directly if base is the VMContext global (Cranelift's short-circuit, spec
// SPEC_FULL supplement), otherwise a freshly inserted global_value
// instruction referencing base, typed with t (the caller decides this:
// the outer global value's own type for an IAddImm base, the target's
// pointer type for a Load base), placed immediately before before so it
// is available by the time before runs.
func addrOf(f *ir.Function, before ir.Inst, base ir.GlobalValue, t ir.Type) ir.Value {
	if f.GlobalValues.At(base).Kind == ir.GlobalVMContext {
		if vmctx, ok := f.SpecialParam(ir.PurposeVMContext); ok {
			return vmctx
		}
	}
	cur := ir.NewFuncCursor(f).AtInst(before)
	return cur.Ins().GlobalValue(t, base)
}
