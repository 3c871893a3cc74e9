package kvstore

import (
	"context"
	"errors"
)

// ErrKeyNotFound is returned when a key has never been written.
// Repositories treat it the same as a corrupt value: fall back to seed data.
var ErrKeyNotFound = errors.New("kvstore: key not found")

// Store is durable key-value storage for serialized collections. Each
// collection lives under a fixed key and is rewritten wholesale on every
// mutation; there is a single logical writer, so last-write-wins suffices.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
