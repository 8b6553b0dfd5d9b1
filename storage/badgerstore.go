package storage

import (
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
)

// BadgerStore persists values in a badger database under "state:"-prefixed keys
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore opens or creates the database at path
func NewBadgerStore(path string) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}

	return &BadgerStore{db: db}, nil
}

func stateKey(name string) []byte {
	return []byte("state:" + name)
}

// Get returns the value stored under key, or ErrNotFound
func (s *BadgerStore) Get(key string) ([]byte, error) {
	var result []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(stateKey(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		return item.Value(func(val []byte) error {
			result = make([]byte, len(val))
			copy(result, val)
			return nil
		})
	})

	return result, err
}

// Set writes value under key in its own transaction
func (s *BadgerStore) Set(key string, value []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(stateKey(key), value)
	})
}

// Close releases the database
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
