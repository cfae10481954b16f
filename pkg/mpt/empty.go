package mpt

// EmptyNode represents an empty node. It is the record behind EmptyPointer
// and is never appended to the arena itself.
type EmptyNode struct{}

var _ Node = EmptyNode{}

// Type implements Node interface.
func (e EmptyNode) Type() NodeType {
	return EmptyT
}
