package storage

import (
	"context"
	"errors"

	badger "github.com/dgraph-io/badger/v4"
)

// MemoryStore is the session-scoped key-value store: an in-memory Badger
// instance that survives dashboard reloads but is gone on process restart.
type MemoryStore struct {
	db *badger.DB
}

func NewMemoryStore() (*MemoryStore, error) {
	opts := badger.DefaultOptions("").
		WithInMemory(true).
		WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &MemoryStore{db: db}, nil
}

func (s *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	found := false
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return nil
			}
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			value = string(val)
			return nil
		})
	})
	if err != nil {
		return "", false, err
	}
	return value, found, nil
}

func (s *MemoryStore) Set(ctx context.Context, key, value string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), []byte(value))
	})
}

func (s *MemoryStore) Close() error {
	return s.db.Close()
}
