package ir

// ValueList is a compact handle into a ValueListPool: an offset and a
// length. It is the arity-agnostic argument vector used by calls, jumps,
// branches and other variable-arity instructions, and is also how an
// instruction's materialized results are stored — both draw from the same
// shared pool (spec §3.3).
type ValueList struct {
	offset uint32
	length uint32
}

// ValueListPool backs every ValueList in a single DataFlowGraph.
type ValueListPool struct {
	data []Value
}

// Make copies vs into the pool and returns a handle to the copy.
func (p *ValueListPool) Make(vs ...Value) ValueList {
	off := uint32(len(p.data))
	p.data = append(p.data, vs...)
	return ValueList{offset: off, length: uint32(len(vs))}
}

// View returns the live slice backing vl. The slice aliases the pool's
// backing array, so callers must not retain it across a Make/Append call
// that could grow the pool.
func (p *ValueListPool) View(vl ValueList) []Value {
	return p.data[vl.offset : vl.offset+vl.length]
}

// Append adds v to the end of vl, returning the (possibly relocated)
// updated list. Appending to any list other than the most recently made
// one forces a copy to the end of the pool, since the pool only ever
// grows.
func (p *ValueListPool) Append(vl ValueList, v Value) ValueList {
	if vl.offset+vl.length == uint32(len(p.data)) {
		p.data = append(p.data, v)
		return ValueList{offset: vl.offset, length: vl.length + 1}
	}
	newOff := uint32(len(p.data))
	p.data = append(p.data, p.data[vl.offset:vl.offset+vl.length]...)
	p.data = append(p.data, v)
	return ValueList{offset: newOff, length: vl.length + 1}
}

// IsValid reports whether vl's (offset, length) falls within the pool's
// current extent (spec §3.3).
func (vl ValueList) IsValid(p *ValueListPool) bool {
	return uint64(vl.offset)+uint64(vl.length) <= uint64(len(p.data))
}

// Len returns the number of values in vl.
func (vl ValueList) Len() int { return int(vl.length) }
