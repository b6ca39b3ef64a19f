// Package store persists chunked documents per space and enforces the
// text/embedding alignment invariant at its boundary.
package store

import (
	"context"

	"github.com/aqua777/ragspace/errs"
	"github.com/aqua777/ragspace/schema"
)

// ChunkStore is the persistence boundary for chunked documents. Append and
// Delete are atomic: a document is stored with all of its chunks or not at
// all.
type ChunkStore interface {
	// Append stores a new document built from index-aligned chunk texts and
	// embedding vectors. Mismatched or empty sequences are rejected with an
	// InputError and nothing is written.
	Append(ctx context.Context, spaceID, title string, texts []string, vectors [][]float64) (schema.Document, error)

	// FetchAll returns the visible documents of a space in insertion order.
	// Hidden documents do not participate in retrieval.
	FetchAll(ctx context.Context, spaceID string) ([]schema.Document, error)

	// FetchAllIncludingHidden returns every document of a space, hidden ones
	// included, in insertion order.
	FetchAllIncludingHidden(ctx context.Context, spaceID string) ([]schema.Document, error)

	// Delete removes a document and all of its chunks.
	// Returns a NotFoundError when the document does not exist.
	Delete(ctx context.Context, documentID string) error

	// SetVisibility toggles whether a document participates in retrieval.
	// Idempotent; returns a NotFoundError when the document does not exist.
	SetVisibility(ctx context.Context, documentID string, visible bool) error
}

// buildChunks validates the alignment invariant and zips texts with vectors.
func buildChunks(texts []string, vectors [][]float64) ([]schema.Chunk, error) {
	if len(texts) == 0 {
		return nil, errs.Input("cannot append a document with no chunks")
	}
	if len(texts) != len(vectors) {
		return nil, errs.Input("chunk texts and embeddings must align: %d texts, %d vectors", len(texts), len(vectors))
	}

	chunks := make([]schema.Chunk, len(texts))
	for i := range texts {
		chunks[i] = schema.Chunk{Text: texts[i], Embedding: vectors[i]}
	}
	return chunks, nil
}
