package mpt

import (
	"fmt"

	lru "github.com/hashicorp/golang-lru"
	"github.com/statelayer/statetrie/pkg/storage"
	"github.com/statelayer/statetrie/pkg/util"
)

// nodeCacheSize is the number of store records kept decoded in memory.
const nodeCacheSize = 4096

// TrieStore moves tries between an arena and a storage.Store. Records are
// keyed by subtree digest, so subtrees shared between trie versions are
// stored and loaded once.
type TrieStore struct {
	store storage.Store
	cache *lru.Cache
}

// NewTrieStore returns a new TrieStore on top of the given store.
func NewTrieStore(store storage.Store) *TrieStore {
	cache, err := lru.New(nodeCacheSize)
	if err != nil {
		panic(err)
	}
	return &TrieStore{
		store: store,
		cache: cache,
	}
}

func makeStorageKey(h util.Uint256) []byte {
	return storage.AppendPrefix(storage.DataMPT, h.Bytes())
}

// Flush puts every node reachable from root to the storage. Subtrees whose
// digest is already present are skipped, an unchanged subtree of a prior
// version is never rewritten. It returns the number of records written.
func (s *TrieStore) Flush(a *Arena, root Pointer) (int, error) {
	return s.flush(a, root)
}

func (s *TrieStore) flush(a *Arena, p Pointer) (int, error) {
	if p == EmptyPointer {
		return 0, nil
	}
	h := a.Hash(p)
	if _, ok := s.cache.Get(h); ok {
		return 0, nil
	}
	if _, err := s.store.Get(makeStorageKey(h)); err == nil {
		return 0, nil
	}

	var count int
	switch n := a.At(p).(type) {
	case *BranchNode:
		for i := range n.Children {
			c, err := s.flush(a, n.Children[i])
			if err != nil {
				return count, err
			}
			count += c
		}
	case *ExtensionNode:
		c, err := s.flush(a, n.next)
		if err != nil {
			return count, err
		}
		count += c
	case *LeafNode:
	default:
		panic(fmt.Sprintf("can't flush node type: %T", n))
	}

	data := a.EncodedNode(p)
	if err := s.store.Put(makeStorageKey(h), data); err != nil {
		return count, err
	}
	s.cache.Add(h, data)
	updateFlushedNodesMetric(1)
	return count + 1, nil
}

// Load reconstructs the subtree with the given digest into the arena and
// returns its root pointer. Subtrees with equal digests resolve to the same
// pointer, structural sharing survives a store round-trip.
func (s *TrieStore) Load(a *Arena, root util.Uint256) (Pointer, error) {
	memo := make(map[util.Uint256]Pointer)
	return s.load(a, root, memo)
}

func (s *TrieStore) load(a *Arena, h util.Uint256, memo map[util.Uint256]Pointer) (Pointer, error) {
	if h == (util.Uint256{}) {
		return EmptyPointer, nil
	}
	if p, ok := memo[h]; ok {
		return p, nil
	}
	data, err := s.getBlob(h)
	if err != nil {
		return EmptyPointer, err
	}
	wn, err := decodeNode(data)
	if err != nil {
		return EmptyPointer, fmt.Errorf("node %s: %w", h, err)
	}

	var p Pointer
	switch wn.typ {
	case BranchT:
		b := NewBranchNode()
		for i := range wn.children {
			b.Children[i], err = s.load(a, wn.children[i], memo)
			if err != nil {
				return EmptyPointer, err
			}
		}
		p = a.Append(b)
	case ExtensionT:
		next, err := s.load(a, wn.children[0], memo)
		if err != nil {
			return EmptyPointer, err
		}
		p = a.Append(NewExtensionNode(wn.path, next))
	case LeafT:
		p = a.Append(NewLeafNode(wn.path, wn.value))
	}
	a.hashes[p] = h
	memo[h] = p
	return p, nil
}

func (s *TrieStore) getBlob(h util.Uint256) ([]byte, error) {
	if data, ok := s.cache.Get(h); ok {
		return data.([]byte), nil
	}
	data, err := s.store.Get(makeStorageKey(h))
	if err != nil {
		return nil, fmt.Errorf("node %s: %w", h, err)
	}
	s.cache.Add(h, data)
	return data, nil
}

// PutRoot saves a named root digest mapping, a stable entry point into the
// node records.
func (s *TrieStore) PutRoot(name string, h util.Uint256) error {
	return s.store.Put(storage.AppendPrefix(storage.DataMPTAux, []byte(name)), h.Bytes())
}

// GetRoot resolves a named root digest mapping stored by PutRoot.
func (s *TrieStore) GetRoot(name string) (util.Uint256, error) {
	data, err := s.store.Get(storage.AppendPrefix(storage.DataMPTAux, []byte(name)))
	if err != nil {
		return util.Uint256{}, err
	}
	return util.Uint256DecodeBytes(data)
}
