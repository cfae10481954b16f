package mpt

import (
	"fmt"

	"github.com/statelayer/statetrie/pkg/io"
	"github.com/statelayer/statetrie/pkg/util"
)

// wireNode is a decoded store record: node fields with children referenced
// by subtree digests instead of arena pointers. Zero digest means an empty
// child.
type wireNode struct {
	typ      NodeType
	path     []byte
	value    []byte
	children [childrenCount]util.Uint256
}

// decodeNode decodes a store record produced by Arena.EncodedNode.
func decodeNode(data []byte) (*wireNode, error) {
	r := io.NewBinReaderFromBuf(data)
	n := new(wireNode)
	n.typ = NodeType(r.ReadB())
	switch n.typ {
	case BranchT:
		for i := range n.children {
			n.children[i].DecodeBinary(r)
		}
	case ExtensionT:
		n.path = r.ReadVarBytes(maxPathLength)
		n.children[0].DecodeBinary(r)
	case LeafT:
		n.path = r.ReadVarBytes(maxPathLength)
		n.value = r.ReadVarBytes(MaxValueLength)
	default:
		return nil, fmt.Errorf("invalid node type: %x", byte(n.typ))
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return n, nil
}
