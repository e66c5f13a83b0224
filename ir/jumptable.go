package ir

// JumpTableData is a branch-table descriptor: an ordered list of EBB
// targets, indexed by a BranchTable instruction's integer operand. Every
// target takes no arguments (spec §4.E.4).
type JumpTableData struct {
	Targets []Ebb
}
