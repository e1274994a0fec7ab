package ports

import "context"

// KVStore backs the "storage" capability: a flat key-value service that
// storage volumes partition with key prefixes.
type KVStore interface {
	// Get returns the value for key. A missing key returns errors.ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)

	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error

	// Delete removes key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Keys returns every key starting with prefix, sorted.
	Keys(ctx context.Context, prefix string) ([]string, error)
}
