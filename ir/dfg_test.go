package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuscode/cir/ir"
)

// TestValueDefRoundTrip exercises round-trip law L1 (spec §8): an EBB
// argument's ValueDef reports the EBB and index it was declared at, and an
// instruction result's ValueDef reports the instruction and index it was
// materialized at.
func TestValueDefRoundTrip(t *testing.T) {
	f, entry, arg := buildStraightLine()

	def := f.DFG.ValueDef(arg)
	require.Equal(t, ir.DefArg, def.Kind)
	assert.Equal(t, entry, def.Ebb)
	assert.Equal(t, 0, def.Num)

	insts := f.Layout.EbbInsts(entry)
	require.Len(t, insts, 3, "iconst, iadd, return")
	sum := f.DFG.FirstResult(insts[1])
	sdef := f.DFG.ValueDef(sum)
	assert.Equal(t, ir.DefResult, sdef.Kind)
	assert.Equal(t, insts[1], sdef.Inst)
}

// TestChangeToAliasResolves exercises round-trip law L3: after aliasing v
// to target, ResolveAlias(v) returns target (or target's own resolution).
func TestChangeToAliasResolves(t *testing.T) {
	f, _, _ := buildStraightLine()

	x := f.DFG.FirstResult(f.Layout.EbbInsts(f.EntryEbb())[0])
	c := makeFreeValue(f)
	f.DFG.ChangeToAlias(c, x)
	assert.Equal(t, x, f.DFG.ResolveAlias(c))
}

// TestChangeToAliasRejectsCycles exercises invariant P7: aliasing a value
// to itself, directly or through an existing chain, panics rather than
// silently building a cycle ResolveAlias would loop on forever.
func TestChangeToAliasRejectsCycles(t *testing.T) {
	f, _, _ := buildStraightLine()
	v := makeFreeValue(f)

	assert.Panics(t, func() { f.DFG.ChangeToAlias(v, v) })
}

func TestChangeToAliasRejectsIndirectCycles(t *testing.T) {
	f, _, _ := buildStraightLine()
	a := makeFreeValue(f)
	b := makeFreeValue(f)

	f.DFG.ChangeToAlias(a, b)
	assert.Panics(t, func() { f.DFG.ChangeToAlias(b, a) })
}

// makeFreeValue materializes an otherwise-unused Value by declaring a
// throwaway EBB and adding a formal argument to it, giving tests a Value
// handle that is not already aliased or wired into the fixture function.
func makeFreeValue(f *ir.Function) ir.Value {
	e := f.DFG.MakeEbb()
	return f.DFG.AppendEbbArg(e, ir.TypeI32)
}

func TestMaterializeResultsOnlyOnce(t *testing.T) {
	f, _, _ := buildStraightLine()
	inst := f.DFG.MakeInst(ir.NewNullary(ir.OpNop, ir.TypeVoid))
	f.DFG.MaterializeResults(inst, nil)
	assert.NotPanics(t, func() { f.DFG.MaterializeResults(inst, nil) },
		"materializing zero results twice is a no-op, not an error")

	inst2 := f.DFG.MakeInst(ir.NewUnaryImm(ir.OpIconst, ir.TypeI32, 7))
	f.DFG.MaterializeResults(inst2, []ir.Type{ir.TypeI32})
	assert.Panics(t, func() { f.DFG.MaterializeResults(inst2, []ir.Type{ir.TypeI32}) })
}

func TestValueListSharedPool(t *testing.T) {
	var pool ir.ValueListPool
	vl := pool.Make(ir.Value(1), ir.Value(2))
	assert.Equal(t, 2, vl.Len())
	assert.Equal(t, []ir.Value{1, 2}, pool.View(vl))

	vl2 := pool.Append(vl, ir.Value(3))
	assert.Equal(t, []ir.Value{1, 2, 3}, pool.View(vl2))
	assert.True(t, vl2.IsValid(&pool))
}
