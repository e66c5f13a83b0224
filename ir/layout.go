package ir

// Layout totally orders an EBB's instructions and a function's EBBs,
// using an intrusive doubly-linked list (spec §3.5/§4.C) rather than an
// index into a slice: inserting or removing an instruction does not shift
// any other instruction's position, and the per-Inst prev/next/containing-
// EBB links make inst_ebb O(1).
type Layout struct {
	insts SecondaryMap[Inst, instLayout]
	ebbs  SecondaryMap[Ebb, ebbLayout]

	firstEbb, lastEbb Ebb
}

type instLayout struct {
	ebb        Ebb
	prev, next Inst
	placed     bool
}

type ebbLayout struct {
	first, last Inst
	prev, next  Ebb
	placed      bool
}

// NewLayout returns an empty Layout.
func NewLayout() Layout {
	return Layout{
		insts:    NewSecondaryMap[Inst, instLayout](instLayout{ebb: EbbInvalid, prev: InstInvalid, next: InstInvalid}),
		ebbs:     NewSecondaryMap[Ebb, ebbLayout](ebbLayout{first: InstInvalid, last: InstInvalid, prev: EbbInvalid, next: EbbInvalid}),
		firstEbb: EbbInvalid,
		lastEbb:  EbbInvalid,
	}
}

// AppendEbb places ebb at the end of the function's EBB order.
func (l *Layout) AppendEbb(ebb Ebb) {
	el := l.ebbs.Get(ebb)
	el.placed = true
	el.prev = l.lastEbb
	el.next = EbbInvalid
	l.ebbs.Set(ebb, el)

	if l.lastEbb.Valid() {
		tail := l.ebbs.Get(l.lastEbb)
		tail.next = ebb
		l.ebbs.Set(l.lastEbb, tail)
	} else {
		l.firstEbb = ebb
	}
	l.lastEbb = ebb
}

// Ebbs returns every placed EBB in program order.
func (l *Layout) Ebbs() []Ebb {
	var out []Ebb
	for e := l.firstEbb; e.Valid(); {
		out = append(out, e)
		e = l.ebbs.Get(e).next
	}
	return out
}

// FirstEbb returns the function's entry EBB, or EbbInvalid if none placed.
func (l *Layout) FirstEbb() Ebb { return l.firstEbb }

// AppendInst places inst at the end of ebb's instruction order.
func (l *Layout) AppendInst(inst Inst, ebb Ebb) {
	el := l.ebbs.Get(ebb)
	il := instLayout{ebb: ebb, prev: el.last, next: InstInvalid, placed: true}
	l.insts.Set(inst, il)

	if el.last.Valid() {
		prev := l.insts.Get(el.last)
		prev.next = inst
		l.insts.Set(el.last, prev)
	} else {
		el.first = inst
	}
	el.last = inst
	l.ebbs.Set(ebb, el)
}

// InsertInstBefore places inst immediately before before, in before's EBB.
func (l *Layout) InsertInstBefore(inst, before Inst) {
	bl := l.insts.Get(before)
	ebb := bl.ebb
	prev := bl.prev

	il := instLayout{ebb: ebb, prev: prev, next: before, placed: true}
	l.insts.Set(inst, il)

	bl.prev = inst
	l.insts.Set(before, bl)

	if prev.Valid() {
		p := l.insts.Get(prev)
		p.next = inst
		l.insts.Set(prev, p)
	} else {
		el := l.ebbs.Get(ebb)
		el.first = inst
		l.ebbs.Set(ebb, el)
	}
}

// InsertInstAfter places inst immediately after after, in after's EBB.
func (l *Layout) InsertInstAfter(inst, after Inst) {
	al := l.insts.Get(after)
	ebb := al.ebb
	next := al.next

	il := instLayout{ebb: ebb, prev: after, next: next, placed: true}
	l.insts.Set(inst, il)

	al.next = inst
	l.insts.Set(after, al)

	if next.Valid() {
		n := l.insts.Get(next)
		n.prev = inst
		l.insts.Set(next, n)
	} else {
		el := l.ebbs.Get(ebb)
		el.last = inst
		l.ebbs.Set(ebb, el)
	}
}

// RemoveInst splices inst out of its EBB's order. inst's Layout position
// becomes invalid; it is not removed from the DFG (spec §3.7).
func (l *Layout) RemoveInst(inst Inst) {
	il := l.insts.Get(inst)
	if !il.placed {
		return
	}
	ebb := il.ebb

	if il.prev.Valid() {
		p := l.insts.Get(il.prev)
		p.next = il.next
		l.insts.Set(il.prev, p)
	} else {
		el := l.ebbs.Get(ebb)
		el.first = il.next
		l.ebbs.Set(ebb, el)
	}

	if il.next.Valid() {
		n := l.insts.Get(il.next)
		n.prev = il.prev
		l.insts.Set(il.next, n)
	} else {
		el := l.ebbs.Get(ebb)
		el.last = il.prev
		l.ebbs.Set(ebb, el)
	}

	l.insts.Set(inst, instLayout{ebb: EbbInvalid, prev: InstInvalid, next: InstInvalid})
}

// InstEbb returns the EBB that currently contains inst, or EbbInvalid if
// inst has been removed from (or never placed in) Layout.
func (l *Layout) InstEbb(inst Inst) Ebb {
	il := l.insts.Get(inst)
	if !il.placed {
		return EbbInvalid
	}
	return il.ebb
}

// FirstInst returns ebb's first instruction, or InstInvalid if empty.
func (l *Layout) FirstInst(ebb Ebb) Inst { return l.ebbs.Get(ebb).first }

// LastInst returns ebb's last instruction, or InstInvalid if empty.
func (l *Layout) LastInst(ebb Ebb) Inst { return l.ebbs.Get(ebb).last }

// NextInst returns the instruction after inst in its EBB, or InstInvalid
// at the end.
func (l *Layout) NextInst(inst Inst) Inst { return l.insts.Get(inst).next }

// PrevInst returns the instruction before inst in its EBB, or InstInvalid
// at the start.
func (l *Layout) PrevInst(inst Inst) Inst { return l.insts.Get(inst).prev }

// EbbInsts returns every instruction of ebb in program order.
func (l *Layout) EbbInsts(ebb Ebb) []Inst {
	var out []Inst
	for i := l.FirstInst(ebb); i.Valid(); i = l.NextInst(i) {
		out = append(out, i)
	}
	return out
}
