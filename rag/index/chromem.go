package index

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"strconv"

	"github.com/philippgille/chromem-go"

	"github.com/aqua777/ragspace/schema"
)

// ChromemBuilder builds indexes backed by an in-memory chromem-go collection.
// It implements the same contract as the brute-force index, so the two are
// interchangeable behind the Builder interface.
type ChromemBuilder struct{}

// NewChromemBuilder creates a ChromemBuilder.
func NewChromemBuilder() *ChromemBuilder {
	return &ChromemBuilder{}
}

func (b *ChromemBuilder) Build(ctx context.Context, docs []schema.Document) (Index, error) {
	db := chromem.NewDB()
	// nil embedding function: vectors are computed upstream and passed in.
	collection, err := db.GetOrCreateCollection("chunks", nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create chromem collection: %w", err)
	}

	var chromemDocs []chromem.Document
	for _, doc := range docs {
		for i, chunk := range doc.Chunks {
			embedding32 := make([]float32, len(chunk.Embedding))
			for j, v := range chunk.Embedding {
				embedding32[j] = float32(v)
			}
			chromemDocs = append(chromemDocs, chromem.Document{
				ID:      doc.ID + "#" + strconv.Itoa(i),
				Content: chunk.Text,
				Metadata: map[string]string{
					"document_id": doc.ID,
					"chunk_index": strconv.Itoa(i),
					"ordinal":     strconv.Itoa(len(chromemDocs)),
				},
				Embedding: embedding32,
			})
		}
	}

	if len(chromemDocs) > 0 {
		if err := collection.AddDocuments(ctx, chromemDocs, runtime.NumCPU()); err != nil {
			return nil, fmt.Errorf("failed to add documents to chromem collection: %w", err)
		}
	}

	return &chromemIndex{collection: collection, size: len(chromemDocs)}, nil
}

type chromemIndex struct {
	collection *chromem.Collection
	size       int
}

func (idx *chromemIndex) Search(ctx context.Context, queryVector []float64, k int) ([]schema.ScoredChunk, error) {
	if k <= 0 || idx.size == 0 {
		return nil, nil
	}
	if k > idx.size {
		k = idx.size
	}

	query32 := make([]float32, len(queryVector))
	for i, v := range queryVector {
		query32[i] = float32(v)
	}

	// Query everything: taking only k from chromem would let its unspecified
	// tie order decide which equal-score chunks survive the cut.
	res, err := idx.collection.QueryEmbedding(ctx, query32, idx.size, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to query chromem collection: %w", err)
	}

	type rankedChunk struct {
		chunk   schema.ScoredChunk
		ordinal int
	}
	ranked := make([]rankedChunk, len(res))
	for i, doc := range res {
		chunkIndex, err := strconv.Atoi(doc.Metadata["chunk_index"])
		if err != nil {
			return nil, fmt.Errorf("corrupt chunk index on chromem document %s: %w", doc.ID, err)
		}
		ordinal, err := strconv.Atoi(doc.Metadata["ordinal"])
		if err != nil {
			return nil, fmt.Errorf("corrupt ordinal on chromem document %s: %w", doc.ID, err)
		}
		score := float64(doc.Similarity)
		// chromem divides by the norms, so a zero-norm vector comes back NaN.
		if math.IsNaN(score) {
			score = 0
		}
		ranked[i] = rankedChunk{
			chunk: schema.ScoredChunk{
				Text:       doc.Content,
				Score:      score,
				DocumentID: doc.Metadata["document_id"],
				ChunkIndex: chunkIndex,
			},
			ordinal: ordinal,
		}
	}

	// Re-rank: descending score, equal scores in corpus order.
	sort.Slice(ranked, func(i, j int) bool {
		if ranked[i].chunk.Score != ranked[j].chunk.Score {
			return ranked[i].chunk.Score > ranked[j].chunk.Score
		}
		return ranked[i].ordinal < ranked[j].ordinal
	})

	results := make([]schema.ScoredChunk, k)
	for i := range results {
		results[i] = ranked[i].chunk
	}
	return results, nil
}

var (
	_ Builder = (*ChromemBuilder)(nil)
	_ Index   = (*chromemIndex)(nil)
)
