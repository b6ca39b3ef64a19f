package index

import (
	"context"
	"sort"

	"github.com/aqua777/ragspace/embedding"
	"github.com/aqua777/ragspace/errs"
	"github.com/aqua777/ragspace/schema"
)

// BruteForceBuilder builds indexes that score every chunk against the query.
// O(N*D) per search, which is the right trade-off while corpora are rebuilt
// per query anyway.
type BruteForceBuilder struct{}

// NewBruteForceBuilder creates a BruteForceBuilder.
func NewBruteForceBuilder() *BruteForceBuilder {
	return &BruteForceBuilder{}
}

func (b *BruteForceBuilder) Build(ctx context.Context, docs []schema.Document) (Index, error) {
	var entries []indexEntry
	for _, doc := range docs {
		for i, chunk := range doc.Chunks {
			entries = append(entries, indexEntry{
				text:       chunk.Text,
				embedding:  chunk.Embedding,
				documentID: doc.ID,
				chunkIndex: i,
			})
		}
	}
	return &bruteForceIndex{entries: entries}, nil
}

type indexEntry struct {
	text       string
	embedding  []float64
	documentID string
	chunkIndex int
}

type bruteForceIndex struct {
	entries []indexEntry
}

func (idx *bruteForceIndex) Search(ctx context.Context, queryVector []float64, k int) ([]schema.ScoredChunk, error) {
	if k <= 0 || len(idx.entries) == 0 {
		return nil, nil
	}
	if k > len(idx.entries) {
		k = len(idx.entries)
	}

	scored := make([]schema.ScoredChunk, len(idx.entries))
	for i, entry := range idx.entries {
		score, err := embedding.CosineSimilarity(queryVector, entry.embedding)
		if err != nil {
			return nil, errs.Input("cannot score chunk %d of document %s: %v", entry.chunkIndex, entry.documentID, err)
		}
		scored[i] = schema.ScoredChunk{
			Text:       entry.text,
			Score:      score,
			DocumentID: entry.documentID,
			ChunkIndex: entry.chunkIndex,
		}
	}

	// Stable sort keeps corpus order for equal scores.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})
	return scored[:k], nil
}

var (
	_ Builder = (*BruteForceBuilder)(nil)
	_ Index   = (*bruteForceIndex)(nil)
)
