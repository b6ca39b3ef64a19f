// Package index builds ephemeral similarity indexes over a space's chunks
// and answers top-k nearest-neighbour queries against them.
package index

import (
	"context"

	"github.com/aqua777/ragspace/schema"
)

// Index answers top-k similarity queries over the chunk corpus it was built
// from. An index is a snapshot: it never observes store mutations made after
// Build.
type Index interface {
	// Search returns the k chunks most similar to the query vector, scored by
	// cosine similarity, in descending score order. Ties keep the corpus
	// (document, chunk) order. k larger than the corpus is clamped; k <= 0 or
	// an empty corpus yields an empty result.
	Search(ctx context.Context, queryVector []float64, k int) ([]schema.ScoredChunk, error)
}

// Builder constructs an Index from a set of documents. The orchestrator
// rebuilds the index on every query so retrieval always reflects the current
// corpus.
type Builder interface {
	Build(ctx context.Context, docs []schema.Document) (Index, error)
}
