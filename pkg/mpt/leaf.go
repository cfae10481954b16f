package mpt

// MaxValueLength is a max length of a leaf node value.
const MaxValueLength = 65535

// LeafNode represents an MPT's leaf node, the remaining key suffix plus the
// stored value.
type LeafNode struct {
	path  []byte
	value []byte
}

var _ Node = (*LeafNode)(nil)

// NewLeafNode returns a leaf node with the specified path suffix and value.
// Note: the path must be mangled, i.e. must contain only bytes with high
// half = 0.
func NewLeafNode(path, value []byte) *LeafNode {
	return &LeafNode{
		path:  path,
		value: value,
	}
}

// Type implements Node interface.
func (n *LeafNode) Type() NodeType { return LeafT }

// Path returns the key suffix terminated by n. The result must not be
// modified.
func (n *LeafNode) Path() []byte { return n.path }

// Value returns the stored value. The result must not be modified.
func (n *LeafNode) Value() []byte { return n.value }
