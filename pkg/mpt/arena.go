package mpt

import (
	"fmt"

	"github.com/statelayer/statetrie/pkg/util"
)

// Arena is an append-only store of trie nodes addressed by Pointer handles.
// Offset 0 is reserved for the empty node sentinel. Records must not be
// modified after they were appended; an "update" allocates a new record and
// returns a new handle. Arena is not safe for concurrent use, it requires a
// single writer.
type Arena struct {
	nodes []Node

	// Subtree digests are memoized per record, which is sound because
	// records are immutable.
	hashes map[Pointer]util.Uint256
}

// NewArena returns a new arena with the empty sentinel preallocated.
func NewArena() *Arena {
	return &Arena{
		nodes:  []Node{EmptyNode{}},
		hashes: make(map[Pointer]util.Uint256),
	}
}

// Append adds a node record to the arena and returns its handle. The caller
// must not modify the node afterwards.
func (a *Arena) Append(n Node) Pointer {
	if n == nil || n.Type() == EmptyT {
		panic("can't append an empty node")
	}
	p := Pointer(len(a.nodes))
	a.nodes = append(a.nodes, n)
	updateArenaSizeMetric(len(a.nodes))
	return p
}

// At resolves a pointer to its node record. EmptyPointer resolves to
// EmptyNode. A pointer beyond the current arena size means a corrupted trie
// and results in a panic.
func (a *Arena) At(p Pointer) Node {
	if int(p) >= len(a.nodes) {
		panic(fmt.Sprintf("invalid node pointer: %d (arena size %d)", p, len(a.nodes)))
	}
	return a.nodes[p]
}

// Size returns the current arena size. It equals the pointer the next
// appended node will receive.
func (a *Arena) Size() Pointer {
	return Pointer(len(a.nodes))
}
