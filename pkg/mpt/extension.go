package mpt

const (
	// MaxKeyLength is the max length of the key to put in the trie
	// before transforming to nibbles.
	MaxKeyLength = 64

	// maxPathLength is the max length of a node nibble path.
	maxPathLength = MaxKeyLength * 2
)

// ExtensionNode represents an MPT's extension node, a compressed run of
// nibbles with a single continuation child which is always a branch, paths
// are kept maximally merged.
type ExtensionNode struct {
	path []byte
	next Pointer
}

var _ Node = (*ExtensionNode)(nil)

// NewExtensionNode returns an extension node with the specified path and the
// next node. Note: the path must be mangled, i.e. must contain only bytes
// with high half = 0.
func NewExtensionNode(path []byte, next Pointer) *ExtensionNode {
	return &ExtensionNode{
		path: path,
		next: next,
	}
}

// Type implements Node interface.
func (e *ExtensionNode) Type() NodeType { return ExtensionT }

// Path returns the nibble run compressed by e. The result must not be
// modified.
func (e *ExtensionNode) Path() []byte { return e.path }

// Next returns the pointer of the continuation child.
func (e *ExtensionNode) Next() Pointer { return e.next }
