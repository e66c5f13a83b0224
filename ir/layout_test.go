package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuscode/cir/ir"
)

func TestLayoutProgramOrder(t *testing.T) {
	f := buildDiamond()

	ebbs := f.Layout.Ebbs()
	require.Len(t, ebbs, 4)
	for i, ebb := range ebbs {
		assert.Equal(t, ir.Ebb(i), ebb, "ebbs are appended in creation order")
	}
	assert.Equal(t, ebbs[0], f.EntryEbb())
}

func TestLayoutInsertBeforeKeepsOrder(t *testing.T) {
	f, entry, _ := buildStraightLine()
	insts := f.Layout.EbbInsts(entry)
	require.Len(t, insts, 3)

	nop := f.DFG.MakeInst(ir.NewNullary(ir.OpNop, ir.TypeVoid))
	f.DFG.MaterializeResults(nop, nil)
	f.Layout.InsertInstBefore(nop, insts[1])

	got := f.Layout.EbbInsts(entry)
	require.Len(t, got, 4)
	assert.Equal(t, []ir.Inst{insts[0], nop, insts[1], insts[2]}, got)
	assert.Equal(t, entry, f.Layout.InstEbb(nop))
}

func TestLayoutRemoveInstOrphansButDoesNotFree(t *testing.T) {
	f, entry, _ := buildStraightLine()
	insts := f.Layout.EbbInsts(entry)
	mid := insts[1]

	f.Layout.RemoveInst(mid)

	got := f.Layout.EbbInsts(entry)
	assert.Len(t, got, 2)
	assert.Equal(t, ir.EbbInvalid, f.Layout.InstEbb(mid), "removed instruction reports no containing ebb")
	assert.NotPanics(t, func() { f.DFG.InstData(mid) }, "dfg data survives removal from layout (spec §3.7)")
}

func TestLayoutInsertAfter(t *testing.T) {
	f, entry, _ := buildStraightLine()
	insts := f.Layout.EbbInsts(entry)

	nop := f.DFG.MakeInst(ir.NewNullary(ir.OpNop, ir.TypeVoid))
	f.DFG.MaterializeResults(nop, nil)
	f.Layout.InsertInstAfter(nop, insts[0])

	got := f.Layout.EbbInsts(entry)
	assert.Equal(t, []ir.Inst{insts[0], nop, insts[1], insts[2]}, got)
}
