package verify

import (
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/nimbuscode/cir/internal/clog"
	"github.com/nimbuscode/cir/ir"
)

// Option configures a Function verification run.
type Option func(*options)

type options struct {
	logger *zap.Logger
}

// WithLogger attaches a logger the verifier uses for a one-line debug
// summary of how many findings it collected.
func WithLogger(l *zap.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Function verifies f and reports every structural, type, and SSA
// violation it finds (spec §4.E). Open Question (a) in spec §9 is decided
// here: rather than stopping at the first error, every ebb_integrity and
// instruction_integrity finding across the whole function is collected
// and joined with multierr.Append, so a caller can pull the individual
// Error values back out with multierr.Errors. Function returns nil if f
// is well formed.
func Function(f *ir.Function, opts ...Option) error {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	v := &verifier{f: f}
	var err error
	for _, ebb := range f.Layout.Ebbs() {
		err = multierr.Append(err, v.ebbArgIntegrity(ebb))
		for _, inst := range f.Layout.EbbInsts(ebb) {
			err = multierr.Append(err, v.ebbIntegrity(ebb, inst))
			err = multierr.Append(err, v.instructionIntegrity(inst))
		}
	}

	n := len(multierr.Errors(err))
	clog.Debug(o.logger, "verify.Function finished", zap.String("function", f.Name), zap.Int("findings", n))
	return err
}

type verifier struct {
	f *ir.Function
}

// ebbIntegrity implements spec §4.E.1 checks 1-3: terminator placement,
// EBB closure, and containment.
func (v *verifier) ebbIntegrity(ebb ir.Ebb, inst ir.Inst) error {
	f := v.f
	isTerminator := f.DFG.InstData(inst).Opcode.IsTerminator()
	isLast := f.Layout.LastInst(ebb) == inst

	var err error
	if isTerminator && !isLast {
		err = multierr.Append(err, errf(entityInst(inst),
			"a terminator instruction was encountered before the end of %s", ebb))
	}
	if isLast && !isTerminator {
		err = multierr.Append(err, errf(entityEbb(ebb), "block does not end in a terminator instruction"))
	}
	if gotEbb := f.Layout.InstEbb(inst); gotEbb != ebb {
		err = multierr.Append(err, errf(entityInst(inst), "should belong to %s not %s", ebb, gotEbb))
	}
	return err
}

// ebbArgIntegrity implements spec §4.E.1 check 4: every formal argument
// of an EBB must report itself as defined by that same EBB.
func (v *verifier) ebbArgIntegrity(ebb ir.Ebb) error {
	var err error
	for _, arg := range v.f.DFG.EbbArgs(ebb) {
		def := v.f.DFG.ValueDef(arg)
		if def.Kind != ir.DefArg || def.Ebb != ebb {
			err = multierr.Append(err, errf(entityValue(arg), "expected an argument of %s, found %s", ebb, def))
		}
	}
	return err
}

// instructionIntegrity implements spec §4.E.2 checks 5-6: format matches
// opcode, and the materialized result count agrees with the opcode's
// constraints (including call signatures' variable results).
func (v *verifier) instructionIntegrity(inst ir.Inst) error {
	f := v.f
	data := f.DFG.InstData(inst)
	var err error

	if data.Opcode.Format() != data.Format {
		err = multierr.Append(err, errf(entityInst(inst), "instruction opcode doesn't match instruction format"))
	}

	fixed := data.Opcode.FixedResults()
	varResults := 0
	if sig, ok := f.DFG.CallSignature(inst); ok {
		varResults = len(f.DFG.Signature(sig).ReturnTypes)
	}
	total := fixed + varResults

	if total == 0 {
		if data.Ctrl != ir.TypeVoid {
			err = multierr.Append(err, errf(entityInst(inst),
				"instruction expected to have VOID return value, found %s", data.Ctrl))
		}
	} else {
		got := len(f.DFG.InstResults(inst))
		if got != total {
			err = multierr.Append(err, errf(entityInst(inst),
				"expected %d result values, found %d", total, got))
		}
	}

	err = multierr.Append(err, v.verifyEntityReferences(inst, data))
	return err
}

// verifyEntityReferences implements spec §4.E.2 check 7 and §4.E.3: every
// handle the instruction's payload mentions must be valid in its owning
// arena. The switch lists every Format, the same discipline the original
// verifier.rs documents ("Exhaustive list so we can't forget to add new
// formats"); Go does not check a switch for exhaustiveness, so a format
// added later without a case here is silently treated as referencing
// nothing.
func (v *verifier) verifyEntityReferences(inst ir.Inst, d ir.InstructionData) error {
	f := v.f
	var err error

	checkValue := func(val ir.Value) {
		if !f.DFG.ValueIsValid(val) {
			err = multierr.Append(err, errf(entityInst(inst), "invalid value reference %s", val))
		}
	}
	checkEbb := func(e ir.Ebb) {
		if !f.DFG.EbbIsValid(e) {
			err = multierr.Append(err, errf(entityInst(inst), "invalid ebb reference %s", e))
		}
	}
	checkArgs := func(vl ir.ValueList) {
		if !f.DFG.ValueListIsValid(vl) {
			err = multierr.Append(err, errf(entityInst(inst), "invalid value list reference"))
			return
		}
		for _, val := range f.DFG.ValueListView(vl) {
			checkValue(val)
		}
	}

	for _, r := range f.DFG.InstResults(inst) {
		checkValue(r)
	}

	switch d.Format {
	case ir.FormatNullary:
	case ir.FormatUnary:
		checkValue(d.Arg0)
	case ir.FormatUnaryImm, ir.FormatUnaryIeee32, ir.FormatUnaryIeee64, ir.FormatUnarySplit:
	case ir.FormatBinary, ir.FormatBinaryOverflow:
		checkValue(d.Arg0)
		checkValue(d.Arg1)
	case ir.FormatBinaryImm:
		checkValue(d.Arg0)
	case ir.FormatTernary:
		checkValue(d.Arg0)
		checkValue(d.Arg1)
		checkValue(d.Arg2)
	case ir.FormatMultiAry:
		checkArgs(d.Args)
	case ir.FormatJump:
		checkEbb(d.Ebb)
		checkArgs(d.Args)
	case ir.FormatBranch:
		checkValue(d.Arg0)
		checkEbb(d.Ebb)
		checkArgs(d.Args)
	case ir.FormatBranchTable:
		checkValue(d.Arg0)
		if !f.JumpTables.IsValid(d.JumpTable) {
			err = multierr.Append(err, errf(entityInst(inst), "invalid jump table reference %s", d.JumpTable))
		}
	case ir.FormatCall:
		if !f.DFG.FuncRefIsValid(d.FuncRef) {
			err = multierr.Append(err, errf(entityInst(inst), "invalid function reference %s", d.FuncRef))
		}
		checkArgs(d.Args)
	case ir.FormatIndirectCall:
		if !f.DFG.SigIsValid(d.SigRef) {
			err = multierr.Append(err, errf(entityInst(inst), "invalid signature reference %s", d.SigRef))
		}
		checkValue(d.Arg0)
		checkArgs(d.Args)
	case ir.FormatInsertLane:
		checkValue(d.Arg0)
		checkValue(d.Arg1)
	case ir.FormatExtractLane:
		checkValue(d.Arg0)
	case ir.FormatIntCompare, ir.FormatFloatCompare:
		checkValue(d.Arg0)
		checkValue(d.Arg1)
	case ir.FormatUnaryGlobalValue:
		if !f.GlobalValues.IsValid(d.Global) {
			err = multierr.Append(err, errf(entityInst(inst), "invalid global value reference %s", d.Global))
		}
	case ir.FormatLoad:
		checkValue(d.Arg0)
	case ir.FormatStore:
		checkValue(d.Arg0)
		checkValue(d.Arg1)
	case ir.FormatStackLoad:
		if !f.StackSlots.IsValid(d.StackSlot) {
			err = multierr.Append(err, errf(entityInst(inst), "invalid stack slot reference %s", d.StackSlot))
		}
	case ir.FormatStackStore:
		checkValue(d.Arg0)
		if !f.StackSlots.IsValid(d.StackSlot) {
			err = multierr.Append(err, errf(entityInst(inst), "invalid stack slot reference %s", d.StackSlot))
		}
	}

	return err
}
