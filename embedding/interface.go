package embedding

import "context"

// EmbeddingModel is the interface for generating text embeddings.
// This is the basic interface that all embedding implementations must satisfy.
type EmbeddingModel interface {
	// GetTextEmbedding generates an embedding for a given text.
	GetTextEmbedding(ctx context.Context, text string) ([]float64, error)
	// GetQueryEmbedding generates an embedding for a given query.
	// This is often the same as GetTextEmbedding, but some models treat them differently.
	GetQueryEmbedding(ctx context.Context, query string) ([]float64, error)
}

// EmbeddingModelWithBatch extends EmbeddingModel with batch processing.
// The batch form exists to bound call overhead; it must be semantics-equivalent
// to calling GetTextEmbedding per item, with no cross-item interaction.
type EmbeddingModelWithBatch interface {
	EmbeddingModel
	// GetTextEmbeddingsBatch generates embeddings for multiple texts.
	GetTextEmbeddingsBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// EmbedAll embeds every text with model, using the batch form when available.
func EmbedAll(ctx context.Context, model EmbeddingModel, texts []string) ([][]float64, error) {
	if batcher, ok := model.(EmbeddingModelWithBatch); ok {
		return batcher.GetTextEmbeddingsBatch(ctx, texts)
	}

	vectors := make([][]float64, len(texts))
	for i, text := range texts {
		vec, err := model.GetTextEmbedding(ctx, text)
		if err != nil {
			return nil, err
		}
		vectors[i] = vec
	}
	return vectors, nil
}
