package mpt

import (
	"bytes"
	"errors"
	"fmt"

	"github.com/statelayer/statetrie/pkg/util"
)

// ErrNotFound is returned when the requested trie item is missing.
var ErrNotFound = errors.New("item not found")

// Trie is an MPT trie storing all key-value pairs. It is a view over an
// arena rooted at some pointer; several tries may share one arena and their
// common subtrees. Trie is not safe for concurrent use.
type Trie struct {
	arena *Arena
	root  Pointer
}

// NewTrie returns a new MPT trie rooted at the given pointer of the arena.
// EmptyPointer root means an empty trie.
func NewTrie(arena *Arena, root Pointer) *Trie {
	return &Trie{
		arena: arena,
		root:  root,
	}
}

// Arena returns the arena backing t.
func (t *Trie) Arena() *Arena {
	return t.arena
}

// Root returns the pointer of the current trie root.
func (t *Trie) Root() Pointer {
	return t.root
}

// StateRoot returns the root hash of t. An empty trie hashes to zero.
func (t *Trie) StateRoot() util.Uint256 {
	return t.arena.Hash(t.root)
}

// Get returns the value for the provided key in t.
func (t *Trie) Get(key []byte) ([]byte, error) {
	if len(key) > MaxKeyLength {
		return nil, errors.New("key is too big")
	}
	path := toNibbles(key)
	return t.getFromNode(t.root, path)
}

// getFromNode returns the value for the provided path in a subtrie rooted at
// curr.
func (t *Trie) getFromNode(curr Pointer, path []byte) ([]byte, error) {
	switch n := t.arena.At(curr).(type) {
	case EmptyNode:
		return nil, ErrNotFound
	case *LeafNode:
		if bytes.Equal(path, n.path) {
			return copySlice(n.value), nil
		}
		return nil, ErrNotFound
	case *ExtensionNode:
		if bytes.HasPrefix(path, n.path) {
			return t.getFromNode(n.next, path[len(n.path):])
		}
		return nil, ErrNotFound
	case *BranchNode:
		if len(path) == 0 {
			// Values never terminate at a branch in this variant.
			return nil, ErrNotFound
		}
		i, path := splitPath(path)
		return t.getFromNode(n.Children[i], path)
	default:
		panic(fmt.Sprintf("invalid MPT node type: %T", n))
	}
}

// Delete removes the key from the trie and reduces the trie to a minimal
// form by collapsing nodes on the way up after deleting recursively. It
// returns ErrNotFound (with the trie unchanged) when the key is missing.
func (t *Trie) Delete(key []byte) error {
	if len(key) > MaxKeyLength {
		return errors.New("key is too big")
	}
	path := toNibbles(key)
	r, err := t.deleteFromNode(t.root, path)
	if err != nil {
		return err
	}
	updateDeletesMetric()
	t.root = r
	return nil
}

// deleteFromNode is the recursive delete dispatcher: it determines the node
// kind behind curr and routes to the matching handler. It returns the
// pointer of the replacement subtree, EmptyPointer if the subtree vanished.
func (t *Trie) deleteFromNode(curr Pointer, path []byte) (Pointer, error) {
	switch n := t.arena.At(curr).(type) {
	case EmptyNode:
		return EmptyPointer, ErrNotFound
	case *LeafNode:
		if bytes.Equal(path, n.path) {
			return EmptyPointer, nil
		}
		return EmptyPointer, ErrNotFound
	case *ExtensionNode:
		return t.deleteFromExtension(n, path)
	case *BranchNode:
		return t.deleteFromBranch(n, path)
	default:
		panic(fmt.Sprintf("invalid MPT node type: %T", n))
	}
}

// deleteFromExtension removes the path from the subtrie under the extension
// node n. The replacement child may have collapsed into an extension or a
// leaf, in which case both nibble runs are merged to keep the path maximally
// compressed.
func (t *Trie) deleteFromExtension(n *ExtensionNode, path []byte) (Pointer, error) {
	if !bytes.HasPrefix(path, n.path) {
		return EmptyPointer, ErrNotFound
	}
	r, err := t.deleteFromNode(n.next, path[len(n.path):])
	if err != nil {
		return EmptyPointer, err
	}
	switch nxt := t.arena.At(r).(type) {
	case *BranchNode:
		return t.arena.Append(NewExtensionNode(n.path, r)), nil
	case *ExtensionNode:
		return t.arena.Append(NewExtensionNode(concat(n.path, nxt.path), nxt.next)), nil
	case *LeafNode:
		return t.arena.Append(NewLeafNode(concat(n.path, nxt.path), nxt.value)), nil
	case EmptyNode:
		return EmptyPointer, nil
	default:
		panic(fmt.Sprintf("invalid MPT node type: %T", nxt))
	}
}

// deleteFromBranch implements the branch case end to end: recurse into the
// correct child, rebuild or collapse the branch and produce the pointer to
// the new subtree root. Precondition and invariant violations mean a
// corrupted trie and are fatal.
func (t *Trie) deleteFromBranch(b *BranchNode, path []byte) (Pointer, error) {
	if len(path) == 0 {
		panic("no key nibbles left at a branch node")
	}
	if b.Children[lastChild] != EmptyPointer {
		panic("branch node carries a value")
	}
	i, path := splitPath(path)
	r, err := t.deleteFromNode(b.Children[i], path)
	if err != nil {
		return EmptyPointer, err
	}
	if r != EmptyPointer {
		// The subtree under i still exists, the branch structure is
		// unchanged.
		nb := b.copy()
		nb.Children[i] = r
		return t.arena.Append(nb), nil
	}

	// The whole subtree under i is gone, count the remaining children to
	// see whether the branch is still canonical. When the loop is done,
	// index holds the slot of the last seen non-empty child.
	var count, index int
	for j := 0; j < lastChild; j++ {
		if j != int(i) && b.Children[j] != EmptyPointer {
			count++
			index = j
		}
	}
	if count > 1 {
		nb := b.copy()
		nb.Children[i] = EmptyPointer
		return t.arena.Append(nb), nil
	}
	if count == 0 {
		// A branch has at least 2 children and only one was removed.
		panic("branch node left without children")
	}

	// A single child remains, the branch collapses around it. The slot
	// nibble becomes the leading nibble of the replacement node's path.
	updateCollapsesMetric()
	only := b.Children[index]
	switch c := t.arena.At(only).(type) {
	case *BranchNode:
		return t.arena.Append(NewExtensionNode([]byte{byte(index)}, only)), nil
	case *ExtensionNode:
		return t.arena.Append(NewExtensionNode(concat([]byte{byte(index)}, c.path), c.next)), nil
	case *LeafNode:
		return t.arena.Append(NewLeafNode(concat([]byte{byte(index)}, c.path), c.value)), nil
	default:
		panic(fmt.Sprintf("invalid MPT node type: %T", c))
	}
}

// Walk invokes f for every key-value pair of the trie in ascending key
// order until false is returned from f.
func (t *Trie) Walk(f func(key, value []byte) bool) {
	t.walk(t.root, nil, f)
}

func (t *Trie) walk(curr Pointer, path []byte, f func(key, value []byte) bool) bool {
	switch n := t.arena.At(curr).(type) {
	case EmptyNode:
		return true
	case *LeafNode:
		return f(fromNibbles(append(path, n.path...)), copySlice(n.value))
	case *ExtensionNode:
		return t.walk(n.next, append(path, n.path...), f)
	case *BranchNode:
		for i := 0; i < lastChild; i++ {
			if !t.walk(n.Children[i], append(path, byte(i)), f) {
				return false
			}
		}
		return true
	default:
		panic(fmt.Sprintf("invalid MPT node type: %T", n))
	}
}
