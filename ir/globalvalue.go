package ir

// GlobalValueKind discriminates the four GlobalValueData variants (spec
// §3.6). Go has no sum type, so the kind tag plus a single struct with the
// union of fields stands in for the Rust enum, the same trick
// InstructionData uses for instruction payloads.
type GlobalValueKind uint8

const (
	GlobalVMContext GlobalValueKind = iota
	GlobalIAddImm
	GlobalLoad
	GlobalSymbol
)

// GlobalValueData describes how to materialize a GlobalValue's address.
// The Base field of IAddImm and Load variants induces a dependency graph
// that legalization requires to be acyclic (invariant I5).
type GlobalValueData struct {
	Kind GlobalValueKind

	// IAddImm, Load
	Base       GlobalValue
	Offset     int64
	GlobalType Type

	// Symbol
	Name      string
	Colocated bool
}

func (d GlobalValueData) String() string {
	switch d.Kind {
	case GlobalVMContext:
		return "vmctx"
	case GlobalIAddImm:
		return "iadd_imm"
	case GlobalLoad:
		return "load"
	case GlobalSymbol:
		return "symbol " + d.Name
	default:
		return "invalid"
	}
}
