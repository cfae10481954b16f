package storage

import (
	"errors"
	"fmt"
)

// KeyPrefix constants.
const (
	// DataMPT is used for MPT node records identified by node hash.
	DataMPT KeyPrefix = 0x03
	// DataMPTAux is used to store additional MPT data like named
	// root-pointer mappings.
	DataMPTAux KeyPrefix = 0x04
)

// ErrKeyNotFound is an error returned by Store implementations
// when a certain key is not found.
var ErrKeyNotFound = errors.New("key not found")

type (
	// Store is the underlying KV backend for trie data, it's not intended
	// to be used directly, you wrap it with some memory cache layer most
	// of the time.
	Store interface {
		Get([]byte) ([]byte, error)
		Put(k, v []byte) error
		Delete(k []byte) error
		// Seek calls f for all KV pairs with the given key prefix, in
		// ascending key order, until false is returned from f.
		// Key and value slices should not be modified.
		Seek(prefix []byte, f func(k, v []byte) bool)
		Close() error
	}

	// KeyPrefix is a constant byte added as a prefix for each key
	// stored.
	KeyPrefix uint8
)

// Bytes returns the bytes representation of KeyPrefix.
func (k KeyPrefix) Bytes() []byte {
	return []byte{byte(k)}
}

// AppendPrefix appends byteslice b to the given KeyPrefix.
func AppendPrefix(k KeyPrefix, b []byte) []byte {
	dest := make([]byte, len(b)+1)
	dest[0] = byte(k)
	copy(dest[1:], b)
	return dest
}

// NewStore creates storage with preselected in configuration database type.
func NewStore(cfg DBConfiguration) (Store, error) {
	var store Store
	var err error
	switch cfg.Type {
	case "leveldb":
		store, err = NewLevelDBStore(cfg.LevelDBOptions)
	case "boltdb":
		store, err = NewBoltDBStore(cfg.BoltDBOptions)
	case "inmemory":
		store = NewMemoryStore()
	default:
		return nil, fmt.Errorf("unknown storage: %s", cfg.Type)
	}
	return store, err
}
