package ir

// StackSlotKind classifies a stack frame slot.
type StackSlotKind uint8

const (
	StackSlotSpill StackSlotKind = iota
	StackSlotExplicit
	StackSlotIncomingArg
	StackSlotOutgoingArg
)

// StackSlotData describes one stack frame slot's size and role.
type StackSlotData struct {
	Kind StackSlotKind
	Size uint32
}

// StackSlots is the PrimaryMap of a function's stack slots, plus the
// aggregate size bookkeeping a frame layout pass needs.
type StackSlots struct {
	slots PrimaryMap[StackSlot, StackSlotData]
}

// Push creates a new stack slot and returns its handle.
func (s *StackSlots) Push(d StackSlotData) StackSlot { return s.slots.Push(d) }

// At returns the descriptor for slot.
func (s *StackSlots) At(slot StackSlot) StackSlotData { return s.slots.At(slot) }

// IsValid reports whether slot was produced by this arena.
func (s *StackSlots) IsValid(slot StackSlot) bool { return s.slots.IsValid(slot) }

// Len returns the number of stack slots allocated.
func (s *StackSlots) Len() int { return s.slots.Len() }

// FrameSize sums every slot's size. A real implementation would also
// account for alignment; this is a size accounting helper, not a layout
// algorithm, and frame layout is out of this spec's scope.
func (s *StackSlots) FrameSize() uint32 {
	var total uint32
	for _, k := range s.slots.Keys() {
		total += s.slots.At(k).Size
	}
	return total
}
