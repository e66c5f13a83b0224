package ir

import (
	"fmt"
	"strings"
)

// DisplayInst renders inst as human-readable text: `results = opcode args`.
// Together with Function.Format, which is built on it, it is the core's
// only textual form; there is no parser for this text (spec §1 Out of
// scope), and the verifier's error messages do not use it.
func (f *Function) DisplayInst(inst Inst) string {
	d := f.DFG.InstData(inst)
	var b strings.Builder
	if results := f.DFG.InstResults(inst); len(results) > 0 {
		for i, r := range results {
			if i > 0 {
				b.WriteString(", ")
			}
			b.WriteString(r.String())
		}
		b.WriteString(" = ")
	}
	b.WriteString(d.Opcode.String())
	writeArgs(&b, f, d)
	return b.String()
}

func writeArgs(b *strings.Builder, f *Function, d InstructionData) {
	switch d.Format {
	case FormatNullary:
	case FormatUnary:
		fmt.Fprintf(b, " %s", d.Arg0)
	case FormatUnaryImm:
		fmt.Fprintf(b, " %s %d", d.Ctrl, d.Imm)
	case FormatUnaryIeee32:
		fmt.Fprintf(b, " %s %d", d.Ctrl, d.Ieee32)
	case FormatUnaryIeee64:
		fmt.Fprintf(b, " %s %d", d.Ctrl, d.Ieee64)
	case FormatBinary:
		fmt.Fprintf(b, " %s, %s", d.Arg0, d.Arg1)
	case FormatBinaryImm:
		fmt.Fprintf(b, " %s, %d", d.Arg0, d.Imm)
	case FormatBinaryOverflow:
		fmt.Fprintf(b, " %s, %s", d.Arg0, d.Arg1)
	case FormatTernary:
		fmt.Fprintf(b, " %s, %s, %s", d.Arg0, d.Arg1, d.Arg2)
	case FormatMultiAry:
		fmt.Fprintf(b, " %s", f.DFG.ValueListView(d.Args))
	case FormatJump:
		fmt.Fprintf(b, " -> %s %s", d.Ebb, f.DFG.ValueListView(d.Args))
	case FormatBranch:
		fmt.Fprintf(b, " %s, %s %s", d.Arg0, d.Ebb, f.DFG.ValueListView(d.Args))
	case FormatBranchTable:
		fmt.Fprintf(b, " %s, %s", d.Arg0, d.JumpTable)
	case FormatCall:
		fmt.Fprintf(b, " %s %s", d.FuncRef, f.DFG.ValueListView(d.Args))
	case FormatIndirectCall:
		fmt.Fprintf(b, " %s, %s %s", d.SigRef, d.Arg0, f.DFG.ValueListView(d.Args))
	case FormatInsertLane:
		fmt.Fprintf(b, " %s, %s, %d", d.Arg0, d.Arg1, d.Lane)
	case FormatExtractLane:
		fmt.Fprintf(b, " %s, %d", d.Arg0, d.Lane)
	case FormatIntCompare:
		fmt.Fprintf(b, " %s %s, %s", d.IntCC, d.Arg0, d.Arg1)
	case FormatFloatCompare:
		fmt.Fprintf(b, " %s %s, %s", d.FloatCC, d.Arg0, d.Arg1)
	case FormatUnaryGlobalValue:
		fmt.Fprintf(b, " %s %s", d.Ctrl, d.Global)
	case FormatLoad:
		fmt.Fprintf(b, " %s %s%s, %d", d.Ctrl, d.Flags, d.Arg0, d.Offset)
	case FormatStore:
		fmt.Fprintf(b, " %s%s, %s, %d", d.Flags, d.Arg0, d.Arg1, d.Offset)
	case FormatStackLoad:
		fmt.Fprintf(b, " %s %s, %d", d.Ctrl, d.StackSlot, d.Offset)
	case FormatStackStore:
		fmt.Fprintf(b, " %s, %s, %d", d.Arg0, d.StackSlot, d.Offset)
	}
}

// Format renders the whole function as text, one EBB per paragraph, in
// layout order.
func (f *Function) Format() string {
	var b strings.Builder
	fmt.Fprintf(&b, "function %s {\n", f.Name)
	for _, ebb := range f.Layout.Ebbs() {
		fmt.Fprintf(&b, "%s(%s):\n", ebb, f.DFG.EbbArgs(ebb))
		for _, inst := range f.Layout.EbbInsts(ebb) {
			fmt.Fprintf(&b, "    %s\n", f.DisplayInst(inst))
		}
	}
	b.WriteString("}\n")
	return b.String()
}
