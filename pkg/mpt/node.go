// Package mpt implements a Merkle Patricia Trie over an append-only node
// arena. Nodes are addressed by integer Pointer handles and are never
// mutated once appended, every update produces new nodes and a new root
// pointer while prior versions stay readable.
package mpt

// NodeType represents node type.
type NodeType byte

// Node types definitions.
const (
	BranchT    NodeType = 0x00
	ExtensionT NodeType = 0x01
	LeafT      NodeType = 0x03
	EmptyT     NodeType = 0x04
)

// Pointer is an offset of a node record in the arena. Pointers are plain
// value copies, several nodes may reference the same child pointer.
type Pointer uint32

// EmptyPointer is the reserved sentinel for "no subtree here".
const EmptyPointer Pointer = 0

// Node represents common interface of all MPT nodes.
type Node interface {
	Type() NodeType
}

// String implements the stringer interface.
func (n NodeType) String() string {
	switch n {
	case BranchT:
		return "Branch"
	case ExtensionT:
		return "Extension"
	case LeafT:
		return "Leaf"
	case EmptyT:
		return "Empty"
	default:
		return "Unknown"
	}
}
