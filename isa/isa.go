// Package isa is the minimal TargetIsa collaborator spec §6 describes:
// the core only needs a pointer width from the target, plus an encode
// hook used by the (out-of-scope) instruction encoder.
package isa

import "github.com/nimbuscode/cir/ir"

// TargetIsa supplies the target-specific facts the core's legalization
// pass needs without depending on any particular ISA package.
type TargetIsa interface {
	// PointerType returns the address-width integer type for this target.
	PointerType() ir.Type

	// Encode is used by the (out of scope) binary emitter, not by this
	// repository's legalizer or verifier; it exists on the interface so a
	// TargetIsa implementation is a drop-in replacement for the real one.
	Encode(f *ir.Function, inst ir.Inst) (ir.Encoding, error)
}

// Generic64 is a minimal TargetIsa used by tests and cmd/cirfmt: a
// 64-bit-pointer target that never actually encodes anything.
type Generic64 struct{}

func (Generic64) PointerType() ir.Type { return ir.TypeI64 }

func (Generic64) Encode(*ir.Function, ir.Inst) (ir.Encoding, error) {
	return ir.Encoding{}, nil
}

// Generic32 is the 32-bit-pointer counterpart to Generic64.
type Generic32 struct{}

func (Generic32) PointerType() ir.Type { return ir.TypeI32 }

func (Generic32) Encode(*ir.Function, ir.Inst) (ir.Encoding, error) {
	return ir.Encoding{}, nil
}
