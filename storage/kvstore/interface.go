// Package kvstore provides the key-value persistence layer backing the chunk
// and space stores.
package kvstore

import "context"

// DefaultCollection is the collection used when callers pass an empty name.
const DefaultCollection = "data"

// StoredValue is a JSON-shaped record: string keys to arbitrary values.
type StoredValue map[string]interface{}

// KVStore is the interface for key-value stores with collection support.
type KVStore interface {
	// Put stores a key-value pair in the specified collection.
	Put(ctx context.Context, key string, val StoredValue, collection string) error

	// Get retrieves a value by key from the specified collection.
	// Returns nil if the key does not exist.
	Get(ctx context.Context, key string, collection string) (StoredValue, error)

	// GetAll retrieves all key-value pairs from the specified collection.
	GetAll(ctx context.Context, collection string) (map[string]StoredValue, error)

	// Delete removes a key-value pair from the specified collection.
	// Returns true if the key was deleted, false if it did not exist.
	Delete(ctx context.Context, key string, collection string) (bool, error)
}

// PersistableKVStore extends KVStore with persistence to disk.
type PersistableKVStore interface {
	KVStore

	// Persist saves the store to the specified path.
	Persist(ctx context.Context, persistPath string) error
}
