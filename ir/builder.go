package ir

import "github.com/pkg/errors"

// InstInserter captures where an instruction goes once its payload and
// results are built: appended to a specific EBB, or spliced in at a
// cursor's position. InstBuilder is polymorphic over this one obligation,
// the way spec §9 describes — "realisable as an interface with a single
// build obligation, over which opcode-per-opcode convenience methods are
// generated."
type InstInserter interface {
	Insert(f *Function, inst Inst)
}

// AppendToEbb is the InstInserter that places new instructions at the end
// of a specific EBB.
type AppendToEbb struct{ Ebb Ebb }

func (a AppendToEbb) Insert(f *Function, inst Inst) {
	f.Layout.AppendInst(inst, a.Ebb)
}

// InstBuilder is the fluent construction API (spec §6): one method per
// opcode, each inferring its result type(s) from the opcode's constraints
// (and, for calls, from the referenced signature) before delegating
// placement to Ins.
type InstBuilder struct {
	F   *Function
	Ins InstInserter
}

func (b InstBuilder) build(data InstructionData, resultTypes ...Type) Inst {
	inst := b.F.DFG.MakeInst(data)
	b.F.DFG.MaterializeResults(inst, resultTypes)
	b.Ins.Insert(b.F, inst)
	return inst
}

func (b InstBuilder) result1(data InstructionData, t Type) Value {
	inst := b.build(data, t)
	return b.F.DFG.FirstResult(inst)
}

func (b InstBuilder) Nop() Inst { return b.build(NewNullary(OpNop, TypeVoid)) }

func (b InstBuilder) Trap() Inst { return b.build(NewNullary(OpTrap, TypeVoid)) }

func (b InstBuilder) Iconst(t Type, imm int64) Value {
	return b.result1(NewUnaryImm(OpIconst, t, imm), t)
}

func (b InstBuilder) F32const(bits uint32) Value {
	return b.result1(NewUnaryIeee32(OpF32const, TypeF32, bits), TypeF32)
}

func (b InstBuilder) F64const(bits uint64) Value {
	return b.result1(NewUnaryIeee64(OpF64const, TypeF64, bits), TypeF64)
}

func (b InstBuilder) Iadd(t Type, x, y Value) Value {
	return b.result1(NewBinary(OpIadd, t, x, y), t)
}

func (b InstBuilder) IaddImm(t Type, x Value, imm int64) Value {
	return b.result1(NewBinaryImm(OpIaddImm, t, x, imm), t)
}

func (b InstBuilder) Select(t Type, cond, x, y Value) Value {
	return b.result1(NewTernary(OpSelect, t, cond, x, y), t)
}

func (b InstBuilder) Load(t Type, flags MemFlags, base Value, offset int32) Value {
	return b.result1(NewLoad(t, flags, base, offset), t)
}

func (b InstBuilder) Store(flags MemFlags, v, base Value, offset int32) Inst {
	return b.build(NewStore(flags, v, base, offset))
}

func (b InstBuilder) StackLoad(t Type, slot StackSlot, offset int32) Value {
	return b.result1(NewStackLoad(t, slot, offset), t)
}

func (b InstBuilder) StackStore(v Value, slot StackSlot, offset int32) Inst {
	return b.build(NewStackStore(v, slot, offset))
}

func (b InstBuilder) Jump(target Ebb, args ...Value) Inst {
	return b.build(NewJump(target, b.F.DFG.pool.Make(args...)))
}

func (b InstBuilder) Brz(cond Value, target Ebb, args ...Value) Inst {
	return b.build(NewBranch(OpBrz, cond, target, b.F.DFG.pool.Make(args...)))
}

func (b InstBuilder) Brnz(cond Value, target Ebb, args ...Value) Inst {
	return b.build(NewBranch(OpBrnz, cond, target, b.F.DFG.pool.Make(args...)))
}

func (b InstBuilder) BrTable(index Value, table JumpTable) Inst {
	return b.build(NewBranchTable(index, table))
}

// Call inserts a direct call and returns its (possibly empty) result
// values, inferred from the callee's signature.
func (b InstBuilder) Call(fn FuncRef, args ...Value) []Value {
	sig := b.F.DFG.ExtFunc(fn).Signature
	types := returnTypes(b.F.DFG.Signature(sig))
	inst := b.build(NewCall(fn, b.F.DFG.pool.Make(args...)), types...)
	return b.F.DFG.InstResults(inst)
}

// CallIndirect inserts an indirect call through sig, called via callee.
func (b InstBuilder) CallIndirect(sig SigRef, callee Value, args ...Value) []Value {
	types := returnTypes(b.F.DFG.Signature(sig))
	inst := b.build(NewIndirectCall(sig, callee, b.F.DFG.pool.Make(args...)), types...)
	return b.F.DFG.InstResults(inst)
}

func returnTypes(sig Signature) []Type {
	ts := make([]Type, len(sig.ReturnTypes))
	for i, p := range sig.ReturnTypes {
		ts[i] = p.Type
	}
	return ts
}

func (b InstBuilder) Return(args ...Value) Inst {
	return b.build(NewMultiAry(OpReturn, b.F.DFG.pool.Make(args...)))
}

func (b InstBuilder) Icmp(cc IntCC, x, y Value) Value {
	return b.result1(NewIntCompare(cc, x, y), TypeB1)
}

func (b InstBuilder) Fcmp(cc FloatCC, x, y Value) Value {
	return b.result1(NewFloatCompare(cc, x, y), TypeB1)
}

func (b InstBuilder) InsertLane(t Type, vec, lane Value, idx uint8) Value {
	return b.result1(NewInsertLane(t, vec, lane, idx), t)
}

func (b InstBuilder) ExtractLane(t Type, vec Value, idx uint8) Value {
	return b.result1(NewExtractLane(t, vec, idx), t)
}

func (b InstBuilder) GlobalValue(t Type, gv GlobalValue) Value {
	return b.result1(NewUnaryGlobalValue(OpGlobalValue, t, gv), t)
}

func (b InstBuilder) SymbolValue(t Type, gv GlobalValue) Value {
	return b.result1(NewUnaryGlobalValue(OpSymbolValue, t, gv), t)
}

// replacer backs ReplaceBuilder for DataFlowGraph.Replace: it overwrites
// an existing instruction's payload in place instead of allocating a new
// one, reusing the same result Values and the same Layout slot (spec
// §4.B). Calling any builder method on it more than once is a bug.
type replacer struct {
	dfg  *DataFlowGraph
	inst Inst
}

func (r replacer) replace1(data InstructionData, t Type) Value {
	existing := r.dfg.InstResults(r.inst)
	if len(existing) != 1 {
		panic(errors.Errorf("ir: replace(%s) with a 1-result opcode requires exactly 1 existing result, found %d", r.inst, len(existing)))
	}
	r.dfg.SetInstData(r.inst, data)
	vd := r.dfg.values.At(existing[0])
	vd.typ = t
	r.dfg.values.Set(existing[0], vd)
	return existing[0]
}

// Replace returns a builder seeded to overwrite inst in place. The new
// opcode's result count must match inst's current result count.
func (dfg *DataFlowGraph) Replace(inst Inst) ReplaceBuilder {
	return ReplaceBuilder{r: replacer{dfg: dfg, inst: inst}}
}

// ReplaceBuilder is the subset of opcode constructors valid as a
// replacement — namely the ones the global-value legalizer needs. It
// mirrors Cranelift's `dfg.replace(inst).iadd_imm(...)` idiom.
type ReplaceBuilder struct{ r replacer }

func (rb ReplaceBuilder) IaddImm(t Type, x Value, imm int64) Value {
	return rb.r.replace1(NewBinaryImm(OpIaddImm, t, x, imm), t)
}

func (rb ReplaceBuilder) Load(t Type, flags MemFlags, base Value, offset int32) Value {
	return rb.r.replace1(NewLoad(t, flags, base, offset), t)
}

func (rb ReplaceBuilder) SymbolValue(t Type, gv GlobalValue) Value {
	return rb.r.replace1(NewUnaryGlobalValue(OpSymbolValue, t, gv), t)
}
