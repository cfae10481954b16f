package mpt

import (
	"fmt"
)

// Validate walks the trie and checks that it is in canonical form: every
// branch has at least 2 non-empty children and an empty value slot, every
// extension compresses a non-empty nibble run and continues with a branch,
// every path consists of valid nibbles. A non-nil error means the trie is
// corrupted.
func (t *Trie) Validate() error {
	return t.validate(t.root, 0)
}

func (t *Trie) validate(curr Pointer, depth int) error {
	if depth > maxPathLength {
		return fmt.Errorf("trie depth exceeds %d nibbles", maxPathLength)
	}
	switch n := t.arena.At(curr).(type) {
	case EmptyNode:
		return nil
	case *LeafNode:
		return validPath(n.path)
	case *ExtensionNode:
		if len(n.path) == 0 {
			return fmt.Errorf("extension node %d has an empty path", curr)
		}
		if err := validPath(n.path); err != nil {
			return err
		}
		if t.arena.At(n.next).Type() != BranchT {
			return fmt.Errorf("extension node %d continues with a %s node", curr, t.arena.At(n.next).Type())
		}
		return t.validate(n.next, depth+len(n.path))
	case *BranchNode:
		if n.Children[lastChild] != EmptyPointer {
			return fmt.Errorf("branch node %d carries a value", curr)
		}
		var count int
		for i := 0; i < lastChild; i++ {
			if n.Children[i] != EmptyPointer {
				count++
				if err := t.validate(n.Children[i], depth+1); err != nil {
					return err
				}
			}
		}
		if count < 2 {
			return fmt.Errorf("branch node %d has %d children", curr, count)
		}
		return nil
	default:
		return fmt.Errorf("invalid node type: %T", n)
	}
}

func validPath(path []byte) error {
	for _, b := range path {
		if b > 0x0F {
			return fmt.Errorf("invalid path nibble: %x", b)
		}
	}
	return nil
}
