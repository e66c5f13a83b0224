package ir_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nimbuscode/cir/ir"
)

func TestPrimaryMapHandlesAreStableAndSequential(t *testing.T) {
	var m ir.PrimaryMap[ir.Value, string]

	v0 := m.Push("a")
	v1 := m.Push("b")
	v2 := m.Push("c")

	assert.NotEqual(t, v0, v1)
	assert.NotEqual(t, v1, v2)
	assert.Equal(t, "a", m.At(v0))
	assert.Equal(t, "b", m.At(v1))
	assert.Equal(t, "c", m.At(v2))
	assert.Equal(t, 3, m.Len())

	m.Set(v1, "bb")
	assert.Equal(t, "bb", m.At(v1))
	assert.Equal(t, "a", m.At(v0), "Set must not disturb other entries")
}

func TestPrimaryMapIsValidRejectsUnallocatedHandles(t *testing.T) {
	var a, b ir.PrimaryMap[ir.Ebb, int]
	ea := a.Push(1)
	b.Push(2)

	require.True(t, a.IsValid(ea))
	assert.False(t, a.IsValid(ir.Ebb(99)), "a handle never pushed must be invalid")
}

func TestSecondaryMapDefaultsUnsetEntries(t *testing.T) {
	m := ir.NewSecondaryMap[ir.Inst, int](-1)

	assert.Equal(t, -1, m.Get(ir.Inst(0)), "never-set entry reads as the default")

	m.Set(ir.Inst(5), 42)
	assert.Equal(t, 42, m.Get(ir.Inst(5)))
	assert.Equal(t, -1, m.Get(ir.Inst(2)), "sparse entries between 0 and 5 stay default")
}

func TestHandleInvalidSentinelsAreNotValid(t *testing.T) {
	assert.False(t, ir.EbbInvalid.Valid())
	assert.False(t, ir.InstInvalid.Valid())
	assert.False(t, ir.ValueInvalid.Valid())
}
