package mpt

const (
	// childrenCount is the number of slots a branch node carries, one per
	// possible next nibble plus the value slot.
	childrenCount = 17
	// lastChild is the index of the value slot. Values in this trie
	// variant live only at leaf endpoints, so the slot stays empty, it is
	// carried for layout compatibility and checked on every delete.
	lastChild = childrenCount - 1
)

// BranchNode represents an MPT's branch node.
type BranchNode struct {
	Children [childrenCount]Pointer
}

var _ Node = (*BranchNode)(nil)

// NewBranchNode returns a new branch node with all children empty.
func NewBranchNode() *BranchNode {
	return new(BranchNode)
}

// Type implements Node interface.
func (b *BranchNode) Type() NodeType { return BranchT }

// copy returns a field-by-field copy of the branch suitable for appending as
// a fresh record.
func (b *BranchNode) copy() *BranchNode {
	res := *b
	return &res
}

// splitPath splits the leading nibble off the path.
func splitPath(path []byte) (byte, []byte) {
	return path[0], path[1:]
}
