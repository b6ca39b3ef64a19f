package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSpace(t *testing.T) {
	space := NewSpace("research", "alice")

	assert.NotEmpty(t, space.ID)
	assert.Equal(t, "research", space.Name)
	assert.Equal(t, "alice", space.OwnerID)
	assert.True(t, space.HasMember("alice"), "owner is always a member")
	assert.False(t, space.HasMember("bob"))
}

func TestNewDocument(t *testing.T) {
	chunks := []Chunk{
		{Text: "one", Embedding: []float64{1, 0}},
		{Text: "two", Embedding: []float64{0, 1}},
	}
	doc := NewDocument("space1", "title", chunks)

	assert.NotEmpty(t, doc.ID)
	assert.True(t, doc.Visible, "new documents are visible")
	assert.Equal(t, "space1", doc.SpaceID)

	assert.Equal(t, []string{"one", "two"}, doc.ChunkTexts())
	embeddings := doc.ChunkEmbeddings()
	require.Len(t, embeddings, 2)
	assert.Equal(t, []float64{0, 1}, embeddings[1])
}

func TestDocumentIDsAreUnique(t *testing.T) {
	a := NewDocument("space1", "a", nil)
	b := NewDocument("space1", "b", nil)
	assert.NotEqual(t, a.ID, b.ID)
}
