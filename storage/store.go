package storage

import "errors"

// ErrNotFound is returned by Get when the key has never been written
var ErrNotFound = errors.New("key not found")

// Store is a persistent string-keyed byte store
type Store interface {
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	Close() error
}
