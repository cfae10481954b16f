package storage

import (
	"sort"
	"strings"
	"sync"
)

// MemoryStore is an in-memory implementation of a Store, mainly
// used for testing. Do not use MemoryStore in production.
type MemoryStore struct {
	mut sync.RWMutex
	mem map[string][]byte
}

// NewMemoryStore creates a new MemoryStore object.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		mem: make(map[string][]byte),
	}
}

// Get implements the Store interface.
func (s *MemoryStore) Get(key []byte) ([]byte, error) {
	s.mut.RLock()
	defer s.mut.RUnlock()
	if val, ok := s.mem[string(key)]; ok {
		return val, nil
	}
	return nil, ErrKeyNotFound
}

// Put implements the Store interface. Never returns an error.
func (s *MemoryStore) Put(key, value []byte) error {
	newKey := string(key)
	vcopy := make([]byte, len(value))
	copy(vcopy, value)
	s.mut.Lock()
	s.mem[newKey] = vcopy
	s.mut.Unlock()
	return nil
}

// Delete implements the Store interface. Never returns an error.
func (s *MemoryStore) Delete(key []byte) error {
	s.mut.Lock()
	delete(s.mem, string(key))
	s.mut.Unlock()
	return nil
}

// Seek implements the Store interface.
func (s *MemoryStore) Seek(prefix []byte, f func(k, v []byte) bool) {
	s.mut.RLock()
	defer s.mut.RUnlock()
	s.seek(prefix, f)
}

// seek is an internal unlocked implementation of Seek. Key-value pairs are
// reported in ascending key order.
func (s *MemoryStore) seek(prefix []byte, f func(k, v []byte) bool) {
	sPrefix := string(prefix)
	keys := make([]string, 0)
	for k := range s.mem {
		if strings.HasPrefix(k, sPrefix) {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)
	for _, k := range keys {
		if !f([]byte(k), s.mem[k]) {
			break
		}
	}
}

// Close implements Store interface and clears up memory. Never returns an
// error.
func (s *MemoryStore) Close() error {
	s.mut.Lock()
	s.mem = nil
	s.mut.Unlock()
	return nil
}
