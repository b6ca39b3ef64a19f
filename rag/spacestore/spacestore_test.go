package spacestore

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqua777/ragspace/errs"
	"github.com/aqua777/ragspace/rag/store"
	"github.com/aqua777/ragspace/storage/kvstore"
)

func newTestRegistry(t *testing.T) (*Registry, store.ChunkStore) {
	t.Helper()
	chunks := store.NewMemoryChunkStore()
	return NewRegistry(kvstore.NewSimpleKVStore(), chunks), chunks
}

func TestRegistry_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	space, err := reg.Create(ctx, "research", "alice")
	require.NoError(t, err)
	assert.NotEmpty(t, space.ID)
	assert.Equal(t, "research", space.Name)
	assert.Equal(t, "alice", space.OwnerID)
	assert.True(t, space.HasMember("alice"))

	got, err := reg.Get(ctx, space.ID)
	require.NoError(t, err)
	assert.Equal(t, space, got)
}

func TestRegistry_CreateValidation(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	_, err := reg.Create(ctx, "", "alice")
	assert.True(t, errs.IsInput(err))

	_, err = reg.Create(ctx, "research", "")
	assert.True(t, errs.IsInput(err))
}

func TestRegistry_GetMissing(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	_, err := reg.Get(ctx, "no-such-space")
	assert.True(t, errs.IsNotFound(err))
}

func TestRegistry_AddMember(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	space, err := reg.Create(ctx, "research", "alice")
	require.NoError(t, err)

	require.NoError(t, reg.AddMember(ctx, space.ID, "bob"))
	// Idempotent.
	require.NoError(t, reg.AddMember(ctx, space.ID, "bob"))

	got, err := reg.Get(ctx, space.ID)
	require.NoError(t, err)
	assert.True(t, got.HasMember("bob"))
	assert.Len(t, got.Members, 2)

	err = reg.AddMember(ctx, "no-such-space", "bob")
	assert.True(t, errs.IsNotFound(err))
}

func TestRegistry_List(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	s1, err := reg.Create(ctx, "one", "alice")
	require.NoError(t, err)
	_, err = reg.Create(ctx, "two", "bob")
	require.NoError(t, err)

	all, err := reg.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := reg.List(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, s1.ID, mine[0].ID)
}

func TestRegistry_DeleteCascades(t *testing.T) {
	ctx := context.Background()
	reg, chunks := newTestRegistry(t)

	space, err := reg.Create(ctx, "research", "alice")
	require.NoError(t, err)

	visible, err := chunks.Append(ctx, space.ID, "visible doc", []string{"a"}, [][]float64{{1}})
	require.NoError(t, err)
	hidden, err := chunks.Append(ctx, space.ID, "hidden doc", []string{"b"}, [][]float64{{1}})
	require.NoError(t, err)
	require.NoError(t, chunks.SetVisibility(ctx, hidden.ID, false))

	require.NoError(t, reg.Delete(ctx, space.ID))

	_, err = reg.Get(ctx, space.ID)
	assert.True(t, errs.IsNotFound(err))

	docs, err := chunks.FetchAllIncludingHidden(ctx, space.ID)
	require.NoError(t, err)
	assert.Empty(t, docs, "cascade must remove hidden documents too")

	err = chunks.Delete(ctx, visible.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestRegistry_DeleteMissing(t *testing.T) {
	ctx := context.Background()
	reg, _ := newTestRegistry(t)

	err := reg.Delete(ctx, "no-such-space")
	assert.True(t, errs.IsNotFound(err))
}
