// Package verify implements the structural, type, and SSA well-formedness
// checks described in spec §4.E: a read-only pass over a Function that
// reports findings bound to specific entities.
package verify

import (
	"fmt"

	"github.com/nimbuscode/cir/ir"
)

// AnyEntity is the sum over every handle kind plus a "function" variant
// (spec §4.E), printed as the textual form of the offending handle (e.g.
// "inst42", "ebb3", "v17") per spec §6's error format.
type AnyEntity string

// EntityFunction is the AnyEntity used for a finding about the function
// as a whole, rather than about one specific entity within it.
const EntityFunction AnyEntity = "function"

func entityInst(i ir.Inst) AnyEntity   { return AnyEntity(i.String()) }
func entityEbb(e ir.Ebb) AnyEntity     { return AnyEntity(e.String()) }
func entityValue(v ir.Value) AnyEntity { return AnyEntity(v.String()) }

// Error is a single verifier finding.
type Error struct {
	Location AnyEntity
	Message  string
}

func (e Error) Error() string { return fmt.Sprintf("%s: %s", e.Location, e.Message) }

func errf(loc AnyEntity, format string, args ...any) error {
	return Error{Location: loc, Message: fmt.Sprintf(format, args...)}
}
