package ir

// Function composes the DFG, the Layout, and every side arena a pass or
// the verifier needs: jump tables, stack slots, global values, heaps,
// tables, the function's own signature, source locations, register
// allocator output, and encoder output (spec §4.D). It is the unit passed
// to every pass and to the verifier.
type Function struct {
	Name string

	DFG    DataFlowGraph
	Layout Layout

	Signature   Signature
	JumpTables  PrimaryMap[JumpTable, JumpTableData]
	StackSlots  StackSlots
	GlobalValues PrimaryMap[GlobalValue, GlobalValueData]
	Heaps       PrimaryMap[Heap, HeapData]
	Tables      PrimaryMap[Table, TableData]

	Srclocs   SecondaryMap[Inst, SourceLoc]
	Locations SecondaryMap[Value, ValueLoc]
	Encodings SecondaryMap[Inst, Encoding]
	Offsets   SecondaryMap[Ebb, CodeOffset]
}

// NewFunction returns an empty Function ready for a frontend to populate.
func NewFunction(name string, sig Signature) *Function {
	return &Function{
		Name:      name,
		Layout:    NewLayout(),
		Signature: sig,
		Srclocs:   NewSecondaryMap[Inst, SourceLoc](SourceLocUnknown),
		Locations: NewSecondaryMap[Value, ValueLoc](ValueLoc{}),
		Encodings: NewSecondaryMap[Inst, Encoding](Encoding{}),
		Offsets:   NewSecondaryMap[Ebb, CodeOffset](0),
	}
}

// EntryEbb returns the function's entry block, or EbbInvalid if no block
// has been placed yet.
func (f *Function) EntryEbb() Ebb { return f.Layout.FirstEbb() }

// SpecialParam returns the entry block's formal argument carrying the
// given purpose, if the function's Signature declares one at that
// position. This models Cranelift's ArgumentPurpose lookup: the Nth
// parameter of Signature corresponds to the Nth formal argument of the
// entry EBB.
func (f *Function) SpecialParam(purpose ArgumentPurpose) (Value, bool) {
	entry := f.EntryEbb()
	if !entry.Valid() {
		return ValueInvalid, false
	}
	args := f.DFG.EbbArgs(entry)
	for i, p := range f.Signature.Params {
		if p.Purpose == purpose && i < len(args) {
			return args[i], true
		}
	}
	return ValueInvalid, false
}

// DeclareGlobalValue registers a GlobalValueData and returns its handle.
func (f *Function) DeclareGlobalValue(d GlobalValueData) GlobalValue {
	return f.GlobalValues.Push(d)
}

// DeclareJumpTable registers a JumpTableData and returns its handle.
func (f *Function) DeclareJumpTable(d JumpTableData) JumpTable {
	return f.JumpTables.Push(d)
}
