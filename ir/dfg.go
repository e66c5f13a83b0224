package ir

import "github.com/pkg/errors"

// ValueDefKind discriminates the three shapes a value's definition can
// take (spec §3.1): an EBB formal argument, an instruction result, or a
// value that has been collapsed into an alias of another value.
type ValueDefKind uint8

const (
	DefArg ValueDefKind = iota
	DefResult
	DefAlias
)

// ValueDef is the sum type returned by DataFlowGraph.ValueDef.
type ValueDef struct {
	Kind ValueDefKind
	Ebb  Ebb   // DefArg
	Inst Inst  // DefResult
	Num  int   // argument/result index for DefArg/DefResult
	Alias Value // DefAlias target
}

func (d ValueDef) String() string {
	switch d.Kind {
	case DefArg:
		return "arg"
	case DefResult:
		return "result"
	case DefAlias:
		return "alias"
	default:
		return "invalid"
	}
}

type valueData struct {
	def ValueDef
	typ Type
}

type instData struct {
	data    InstructionData
	results ValueList
}

type ebbData struct {
	params ValueList
}

// DataFlowGraph owns instructions, values, EBB argument lists, signatures,
// external function references, and the shared value-list pool (spec
// §4.B). It records each value's defining site and never frees an entity:
// removing an instruction from Layout orphans its data here, it does not
// erase it.
type DataFlowGraph struct {
	insts      PrimaryMap[Inst, instData]
	ebbs       PrimaryMap[Ebb, ebbData]
	values     PrimaryMap[Value, valueData]
	signatures PrimaryMap[SigRef, Signature]
	extFuncs   PrimaryMap[FuncRef, ExtFuncData]
	pool       ValueListPool
}

// MakeEbb creates a fresh EBB with an empty argument list. It is not yet
// placed in Layout.
func (dfg *DataFlowGraph) MakeEbb() Ebb {
	return dfg.ebbs.Push(ebbData{})
}

// EbbIsValid reports whether e was produced by this DFG.
func (dfg *DataFlowGraph) EbbIsValid(e Ebb) bool { return dfg.ebbs.IsValid(e) }

// ValueIsValid reports whether v was produced by this DFG.
func (dfg *DataFlowGraph) ValueIsValid(v Value) bool { return dfg.values.IsValid(v) }

// InstIsValid reports whether i was produced by this DFG.
func (dfg *DataFlowGraph) InstIsValid(i Inst) bool { return dfg.insts.IsValid(i) }

// SigIsValid reports whether s was produced by this DFG.
func (dfg *DataFlowGraph) SigIsValid(s SigRef) bool { return dfg.signatures.IsValid(s) }

// FuncRefIsValid reports whether f was produced by this DFG.
func (dfg *DataFlowGraph) FuncRefIsValid(f FuncRef) bool { return dfg.extFuncs.IsValid(f) }

// ValueListIsValid reports whether vl still falls within the shared pool.
func (dfg *DataFlowGraph) ValueListIsValid(vl ValueList) bool { return vl.IsValid(&dfg.pool) }

// ValueListView returns the live slice backing vl.
func (dfg *DataFlowGraph) ValueListView(vl ValueList) []Value { return dfg.pool.View(vl) }

// AppendEbbArg appends a formal argument of type ty to ebb and returns the
// fresh Value, tagged (ebb, index) per spec invariant P3.
func (dfg *DataFlowGraph) AppendEbbArg(ebb Ebb, ty Type) Value {
	b := dfg.ebbs.At(ebb)
	idx := b.params.Len()
	v := dfg.values.Push(valueData{def: ValueDef{Kind: DefArg, Ebb: ebb, Num: idx}, typ: ty})
	b.params = dfg.pool.Append(b.params, v)
	dfg.ebbs.Set(ebb, b)
	return v
}

// EbbArgs returns ebb's formal arguments in declaration order.
func (dfg *DataFlowGraph) EbbArgs(ebb Ebb) []Value {
	return dfg.pool.View(dfg.ebbs.At(ebb).params)
}

// MakeInst allocates a fresh instruction carrying data. No results are
// materialized yet (spec §4.B table: "fresh Inst, zero results
// materialised"); call MaterializeResults once the caller knows the
// result types, which for a call depends on the callee's signature.
//
// MakeInst does not check that data.Opcode.Format() agrees with
// data.Format: invariant I1 is the verifier's concern (spec §4.E.2 check
// 5), not a construction-time panic, so a caller can build a
// deliberately malformed instruction (as the verifier's own tests do)
// without the core aborting first.
func (dfg *DataFlowGraph) MakeInst(data InstructionData) Inst {
	return dfg.insts.Push(instData{data: data})
}

// MaterializeResults creates one Value per entry of types and attaches
// them to inst in order, satisfying invariants I2/I3. It must be called
// at most once per instruction (InstBuilder does this automatically).
func (dfg *DataFlowGraph) MaterializeResults(inst Inst, types []Type) []Value {
	id := dfg.insts.At(inst)
	if id.results.Len() != 0 {
		panic(errors.Errorf("ir: %s already has materialized results", inst))
	}
	if len(types) == 0 {
		dfg.insts.Set(inst, id)
		return nil
	}
	vs := make([]Value, len(types))
	var list ValueList
	for i, t := range types {
		v := dfg.values.Push(valueData{def: ValueDef{Kind: DefResult, Inst: inst, Num: i}, typ: t})
		vs[i] = v
		if i == 0 {
			list = dfg.pool.Make(v)
		} else {
			list = dfg.pool.Append(list, v)
		}
	}
	id.results = list
	dfg.insts.Set(inst, id)
	return vs
}

// InstData returns the payload of inst.
func (dfg *DataFlowGraph) InstData(inst Inst) InstructionData { return dfg.insts.At(inst).data }

// SetInstData overwrites inst's payload in place, keeping its existing
// result Values and its slot in Layout — this is the primitive beneath
// Replace (spec §4.B). Like MakeInst, it does not enforce invariant I1;
// the verifier does.
func (dfg *DataFlowGraph) SetInstData(inst Inst, data InstructionData) {
	id := dfg.insts.At(inst)
	id.data = data
	dfg.insts.Set(inst, id)
}

// FirstResult returns inst's first result value. Panics if inst has none.
func (dfg *DataFlowGraph) FirstResult(inst Inst) Value {
	id := dfg.insts.At(inst)
	if id.results.Len() == 0 {
		panic(errors.Errorf("ir: %s has no results", inst))
	}
	return dfg.pool.View(id.results)[0]
}

// InstResults returns every result value of inst, in declaration order.
func (dfg *DataFlowGraph) InstResults(inst Inst) []Value {
	return dfg.pool.View(dfg.insts.At(inst).results)
}

// ClearResults detaches inst's result Values from inst, leaving the
// orphaned Values addressable by whoever already holds them (spec §3.7:
// entities are never freed). This is the first half of the "collapse to
// canonical form" idiom: callers typically follow it with ChangeToAlias on
// the value that used to be first_result(inst).
func (dfg *DataFlowGraph) ClearResults(inst Inst) {
	id := dfg.insts.At(inst)
	id.results = ValueList{}
	dfg.insts.Set(inst, id)
}

// ValueType returns the type of v, resolving neither aliases nor anything
// else: it is a direct lookup of what was stored when v was created.
func (dfg *DataFlowGraph) ValueType(v Value) Type { return dfg.values.At(v).typ }

// ValueDef returns v's defining site: an EBB argument, an instruction
// result, or (if v has been aliased) the alias target currently stored for
// v (spec round-trip law L3). ValueDef itself does not follow the chain,
// but a ResolveAlias(v) call repoints v at the chain's end, after which
// ValueDef reports that end.
func (dfg *DataFlowGraph) ValueDef(v Value) ValueDef { return dfg.values.At(v).def }

// ChangeToAlias makes v a transparent alias of target: every public reader
// that resolves aliases will see target (or target's own eventual
// resolution) in v's place. It is a programming error to alias a value to
// itself, directly or through a chain (invariant P7).
func (dfg *DataFlowGraph) ChangeToAlias(v, target Value) {
	if v == target || dfg.ResolveAlias(target) == v {
		panic(errors.Errorf("ir: aliasing %s to %s would create a cycle", v, target))
	}
	vd := dfg.values.At(v)
	vd.def = ValueDef{Kind: DefAlias, Alias: target}
	dfg.values.Set(v, vd)
}

// ResolveAlias follows v's alias chain to its end and repoints v directly
// at that end, so a later call on v is O(1); the intermediate values of
// the chain are not updated. InstData, ValueListView and the printer
// return operands as stored, without resolving aliases; a caller that
// needs the resolved value calls ResolveAlias itself.
func (dfg *DataFlowGraph) ResolveAlias(v Value) Value {
	orig := v
	for {
		vd := dfg.values.At(v)
		if vd.def.Kind != DefAlias {
			break
		}
		v = vd.def.Alias
	}
	if v != orig {
		vd := dfg.values.At(orig)
		vd.def.Alias = v
		dfg.values.Set(orig, vd)
	}
	return v
}

// DeclareSignature registers sig and returns the SigRef other
// instructions will reference it by.
func (dfg *DataFlowGraph) DeclareSignature(sig Signature) SigRef {
	return dfg.signatures.Push(sig)
}

// Signature returns the registered signature for sig.
func (dfg *DataFlowGraph) Signature(sig SigRef) Signature { return dfg.signatures.At(sig) }

// DeclareExtFunc registers an external function reference.
func (dfg *DataFlowGraph) DeclareExtFunc(data ExtFuncData) FuncRef {
	return dfg.extFuncs.Push(data)
}

// ExtFunc returns the registered external function data for fn.
func (dfg *DataFlowGraph) ExtFunc(fn FuncRef) ExtFuncData { return dfg.extFuncs.At(fn) }

// CallSignature returns the SigRef a call-like instruction's results are
// drawn from, and whether inst is call-like at all.
func (dfg *DataFlowGraph) CallSignature(inst Inst) (SigRef, bool) {
	d := dfg.InstData(inst)
	switch d.Format {
	case FormatCall:
		return dfg.ExtFunc(d.FuncRef).Signature, true
	case FormatIndirectCall:
		return d.SigRef, true
	default:
		return SigRefInvalid, false
	}
}
