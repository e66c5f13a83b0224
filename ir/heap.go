package ir

// HeapData and TableData are minimal descriptors for the Heap/Table entity
// kinds that spec §3.1 names but spec §4.D never gives an arena on
// Function. They round out the entity model (SPEC_FULL §4, item 3) but no pass
// in this repository mutates them: heap/table lowering is explicitly out
// of scope (spec §1 Non-goals).
type HeapData struct {
	Base    GlobalValue
	MinSize uint64
}

type TableData struct {
	Base        GlobalValue
	MinElements uint64
}
