package kvstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// storeData maps collection names to their key-value pairs.
type storeData map[string]map[string]StoredValue

// SimpleKVStore is a thread-safe in-memory key-value store. When created via
// FromPersistPath it writes through to disk on every mutation.
type SimpleKVStore struct {
	mu          sync.RWMutex
	data        storeData
	persistPath string
}

// NewSimpleKVStore creates an empty in-memory store.
func NewSimpleKVStore() *SimpleKVStore {
	return &SimpleKVStore{
		data: make(storeData),
	}
}

// FromPersistPath loads a SimpleKVStore from a JSON file, creating an empty
// write-through store when the file does not exist yet.
func FromPersistPath(persistPath string) (*SimpleKVStore, error) {
	store := NewSimpleKVStore()
	store.persistPath = persistPath

	if err := os.MkdirAll(filepath.Dir(persistPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	raw, err := os.ReadFile(persistPath)
	if os.IsNotExist(err) {
		return store, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &store.data); err != nil {
			return nil, fmt.Errorf("failed to decode store file %s: %w", persistPath, err)
		}
	}
	return store, nil
}

// Put stores a key-value pair in the specified collection.
func (s *SimpleKVStore) Put(ctx context.Context, key string, val StoredValue, collection string) error {
	if collection == "" {
		collection = DefaultCollection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[collection]; !exists {
		s.data[collection] = make(map[string]StoredValue)
	}
	s.data[collection][key] = copyStoredValue(val)

	if s.persistPath != "" {
		return s.persistLocked(s.persistPath)
	}
	return nil
}

// Get retrieves a value by key. Returns nil when the key does not exist.
func (s *SimpleKVStore) Get(ctx context.Context, key string, collection string) (StoredValue, error) {
	if collection == "" {
		collection = DefaultCollection
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	val, exists := s.data[collection][key]
	if !exists {
		return nil, nil
	}
	return copyStoredValue(val), nil
}

// GetAll retrieves all key-value pairs from the specified collection.
func (s *SimpleKVStore) GetAll(ctx context.Context, collection string) (map[string]StoredValue, error) {
	if collection == "" {
		collection = DefaultCollection
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make(map[string]StoredValue, len(s.data[collection]))
	for k, v := range s.data[collection] {
		result[k] = copyStoredValue(v)
	}
	return result, nil
}

// Delete removes a key-value pair. Returns true if the key existed.
func (s *SimpleKVStore) Delete(ctx context.Context, key string, collection string) (bool, error) {
	if collection == "" {
		collection = DefaultCollection
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[collection][key]; !exists {
		return false, nil
	}
	delete(s.data[collection], key)

	if s.persistPath != "" {
		if err := s.persistLocked(s.persistPath); err != nil {
			return true, err
		}
	}
	return true, nil
}

// Persist saves the store to the specified path.
func (s *SimpleKVStore) Persist(ctx context.Context, persistPath string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.persistLocked(persistPath)
}

func (s *SimpleKVStore) persistLocked(persistPath string) error {
	if err := os.MkdirAll(filepath.Dir(persistPath), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}
	raw, err := json.Marshal(s.data)
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}
	return os.WriteFile(persistPath, raw, 0644)
}

// copyStoredValue deep-copies a StoredValue so callers cannot mutate the
// store through returned maps.
func copyStoredValue(val StoredValue) StoredValue {
	if val == nil {
		return nil
	}
	raw, err := json.Marshal(val)
	if err == nil {
		var result StoredValue
		if err := json.Unmarshal(raw, &result); err == nil {
			return result
		}
	}
	result := make(StoredValue, len(val))
	for k, v := range val {
		result[k] = v
	}
	return result
}

var (
	_ KVStore            = (*SimpleKVStore)(nil)
	_ PersistableKVStore = (*SimpleKVStore)(nil)
)
