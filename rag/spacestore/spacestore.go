// Package spacestore manages the lifecycle of spaces: named document
// collections with an owner and a member list.
package spacestore

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aqua777/ragspace/errs"
	"github.com/aqua777/ragspace/rag/store"
	"github.com/aqua777/ragspace/schema"
	"github.com/aqua777/ragspace/storage/kvstore"
)

// SpaceCollection is the kvstore collection holding space records.
const SpaceCollection = "spaces"

// Registry stores spaces in a kvstore and owns the space-to-documents
// relationship: deleting a space cascades to its documents in the chunk
// store. Durability follows from the kvstore used.
type Registry struct {
	kv     kvstore.KVStore
	chunks store.ChunkStore
}

// NewRegistry creates a Registry over the given kvstore and chunk store.
func NewRegistry(kv kvstore.KVStore, chunks store.ChunkStore) *Registry {
	return &Registry{kv: kv, chunks: chunks}
}

// Create registers a new space owned by ownerID.
func (r *Registry) Create(ctx context.Context, name, ownerID string) (schema.Space, error) {
	if name == "" {
		return schema.Space{}, errs.Input("space name must not be empty")
	}
	if ownerID == "" {
		return schema.Space{}, errs.Input("space owner must not be empty")
	}

	space := schema.NewSpace(name, ownerID)
	if err := r.put(ctx, space); err != nil {
		return schema.Space{}, err
	}
	return space, nil
}

// Get returns a space by ID.
func (r *Registry) Get(ctx context.Context, spaceID string) (schema.Space, error) {
	val, err := r.kv.Get(ctx, spaceID, SpaceCollection)
	if err != nil {
		return schema.Space{}, fmt.Errorf("failed to get space %s: %w", spaceID, err)
	}
	if val == nil {
		return schema.Space{}, errs.NotFound("space %s not found", spaceID)
	}
	return decodeSpace(val)
}

// List returns all spaces the given user is a member of. An empty userID
// returns every space.
func (r *Registry) List(ctx context.Context, userID string) ([]schema.Space, error) {
	all, err := r.kv.GetAll(ctx, SpaceCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list spaces: %w", err)
	}

	var spaces []schema.Space
	for key, val := range all {
		space, err := decodeSpace(val)
		if err != nil {
			return nil, fmt.Errorf("corrupt space record %s: %w", key, err)
		}
		if userID == "" || space.HasMember(userID) {
			spaces = append(spaces, space)
		}
	}
	return spaces, nil
}

// AddMember grants a user access to the space. Idempotent.
func (r *Registry) AddMember(ctx context.Context, spaceID, userID string) error {
	if userID == "" {
		return errs.Input("member id must not be empty")
	}

	space, err := r.Get(ctx, spaceID)
	if err != nil {
		return err
	}
	if space.HasMember(userID) {
		return nil
	}
	space.Members = append(space.Members, userID)
	return r.put(ctx, space)
}

// Delete removes a space and cascades to every document it owns, hidden ones
// included.
func (r *Registry) Delete(ctx context.Context, spaceID string) error {
	if _, err := r.Get(ctx, spaceID); err != nil {
		return err
	}

	docs, err := r.chunks.FetchAllIncludingHidden(ctx, spaceID)
	if err != nil {
		return fmt.Errorf("failed to list documents of space %s: %w", spaceID, err)
	}
	for _, doc := range docs {
		if err := r.chunks.Delete(ctx, doc.ID); err != nil {
			return fmt.Errorf("failed to cascade delete document %s: %w", doc.ID, err)
		}
	}

	if _, err := r.kv.Delete(ctx, spaceID, SpaceCollection); err != nil {
		return fmt.Errorf("failed to delete space %s: %w", spaceID, err)
	}
	return nil
}

func (r *Registry) put(ctx context.Context, space schema.Space) error {
	val, err := encodeSpace(space)
	if err != nil {
		return err
	}
	if err := r.kv.Put(ctx, space.ID, val, SpaceCollection); err != nil {
		return fmt.Errorf("failed to store space %s: %w", space.ID, err)
	}
	return nil
}

func encodeSpace(space schema.Space) (kvstore.StoredValue, error) {
	raw, err := json.Marshal(space)
	if err != nil {
		return nil, fmt.Errorf("failed to encode space %s: %w", space.ID, err)
	}
	var val kvstore.StoredValue
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, fmt.Errorf("failed to encode space %s: %w", space.ID, err)
	}
	return val, nil
}

func decodeSpace(val kvstore.StoredValue) (schema.Space, error) {
	raw, err := json.Marshal(val)
	if err != nil {
		return schema.Space{}, err
	}
	var space schema.Space
	if err := json.Unmarshal(raw, &space); err != nil {
		return schema.Space{}, err
	}
	return space, nil
}
