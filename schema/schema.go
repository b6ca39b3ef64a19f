// Package schema defines the core data types shared by the retrieval pipeline.
package schema

import (
	"github.com/google/uuid"
)

// Space is a named collection of documents with an owner and a member list.
// A space exclusively owns its documents: deleting the space deletes them.
type Space struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	OwnerID string   `json:"owner_id"`
	Members []string `json:"members,omitempty"`
}

// NewSpace creates a Space with a fresh ID. The owner is always a member.
func NewSpace(name, ownerID string) Space {
	return Space{
		ID:      uuid.New().String(),
		Name:    name,
		OwnerID: ownerID,
		Members: []string{ownerID},
	}
}

// HasMember reports whether the user is the owner or a member of the space.
func (s Space) HasMember(userID string) bool {
	if s.OwnerID == userID {
		return true
	}
	for _, m := range s.Members {
		if m == userID {
			return true
		}
	}
	return false
}

// Chunk is a bounded-length slice of a document's text paired with its
// embedding vector. The vector dimension is provider-defined and opaque to
// everything except the embedding model that produced it.
type Chunk struct {
	Text      string    `json:"text"`
	Embedding []float64 `json:"embedding"`
}

// Document is an ingested document: an ordered sequence of chunks belonging
// to exactly one space. Chunk texts and embeddings are index-aligned by
// construction; the chunk store enforces this at its boundary.
type Document struct {
	ID      string  `json:"id"`
	SpaceID string  `json:"space_id"`
	Title   string  `json:"title"`
	Visible bool    `json:"visible"`
	Chunks  []Chunk `json:"chunks"`
}

// NewDocument creates a visible Document with a fresh ID.
func NewDocument(spaceID, title string, chunks []Chunk) Document {
	return Document{
		ID:      uuid.New().String(),
		SpaceID: spaceID,
		Title:   title,
		Visible: true,
		Chunks:  chunks,
	}
}

// ChunkTexts returns the chunk texts in order.
func (d Document) ChunkTexts() []string {
	texts := make([]string, len(d.Chunks))
	for i, c := range d.Chunks {
		texts[i] = c.Text
	}
	return texts
}

// ChunkEmbeddings returns the chunk embedding vectors in order.
func (d Document) ChunkEmbeddings() [][]float64 {
	vectors := make([][]float64, len(d.Chunks))
	for i, c := range d.Chunks {
		vectors[i] = c.Embedding
	}
	return vectors
}

// ScoredChunk is one retrieval result: a chunk text with its cosine
// similarity to the query, plus the source position for stable ordering.
type ScoredChunk struct {
	Text       string  `json:"text"`
	Score      float64 `json:"score"`
	DocumentID string  `json:"document_id"`
	ChunkIndex int     `json:"chunk_index"`
}

// AnswerRequest is the input of the answering orchestrator.
// An empty Prompt selects the sample-question path.
type AnswerRequest struct {
	SpaceID string `json:"space_id"`
	Prompt  string `json:"prompt"`
}

// AnswerResponse is a grounded answer plus the context it was grounded on.
// ContextSummary is empty when retrieval produced no usable context. For an
// empty prompt, SampleQuestions is populated instead of Response.
type AnswerResponse struct {
	Response        string   `json:"response,omitempty"`
	ContextSummary  string   `json:"context_summary,omitempty"`
	SampleQuestions []string `json:"sample_questions,omitempty"`
}
