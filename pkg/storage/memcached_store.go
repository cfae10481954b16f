package storage

import (
	"sort"
	"strings"
	"sync"
)

// MemCachedStore is a wrapper around a persistent store that caches all
// changes being made for them to be later flushed in one batch.
type MemCachedStore struct {
	mut sync.RWMutex
	mem map[string][]byte
	del map[string]bool

	// Persistent Store.
	ps Store
}

// NewMemCachedStore creates a new MemCachedStore object.
func NewMemCachedStore(lower Store) *MemCachedStore {
	return &MemCachedStore{
		mem: make(map[string][]byte),
		del: make(map[string]bool),
		ps:  lower,
	}
}

// Get implements the Store interface.
func (s *MemCachedStore) Get(key []byte) ([]byte, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()
	k := string(key)
	if val, ok := s.mem[k]; ok {
		return val, nil
	}
	if s.del[k] {
		return nil, ErrKeyNotFound
	}
	return s.ps.Get(key)
}

// Put implements the Store interface. Never returns an error.
func (s *MemCachedStore) Put(key, value []byte) error {
	k := string(key)
	vcopy := make([]byte, len(value))
	copy(vcopy, value)
	s.mut.Lock()
	s.mem[k] = vcopy
	delete(s.del, k)
	s.mut.Unlock()
	return nil
}

// Delete implements the Store interface. Never returns an error.
func (s *MemCachedStore) Delete(key []byte) error {
	k := string(key)
	s.mut.Lock()
	delete(s.mem, k)
	s.del[k] = true
	s.mut.Unlock()
	return nil
}

// Seek implements the Store interface.
func (s *MemCachedStore) Seek(prefix []byte, f func(k, v []byte) bool) {
	s.mut.RLock()
	defer s.mut.RUnlock()

	sPrefix := string(prefix)
	keys := make([]string, 0)
	for k := range s.mem {
		if strings.HasPrefix(k, sPrefix) {
			keys = append(keys, k)
		}
	}
	s.ps.Seek(prefix, func(k, v []byte) bool {
		elem := string(k)
		// Cached and deleted pairs are reported from the memory layer.
		if _, cached := s.mem[elem]; !cached && !s.del[elem] {
			keys = append(keys, elem)
		}
		return true
	})
	sort.Strings(keys)

	for _, k := range keys {
		v, ok := s.mem[k]
		if !ok {
			var err error
			v, err = s.ps.Get([]byte(k))
			if err != nil {
				continue
			}
		}
		if !f([]byte(k), v) {
			break
		}
	}
}

// Persist flushes all the MemCachedStore contents into the (supposedly)
// persistent store ps. It returns the number of keys flushed.
func (s *MemCachedStore) Persist() (int, error) {
	s.mut.Lock()
	defer s.mut.Unlock()

	var keys int
	for k, v := range s.mem {
		if err := s.ps.Put([]byte(k), v); err != nil {
			return keys, err
		}
		keys++
	}
	for k := range s.del {
		if err := s.ps.Delete([]byte(k)); err != nil {
			return keys, err
		}
	}
	s.mem = make(map[string][]byte)
	s.del = make(map[string]bool)
	return keys, nil
}

// Close implements the Store interface, it closes both the memory layer and
// the persistent store.
func (s *MemCachedStore) Close() error {
	s.mut.Lock()
	s.mem = nil
	s.del = nil
	s.mut.Unlock()
	return s.ps.Close()
}
