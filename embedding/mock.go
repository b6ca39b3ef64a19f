package embedding

import "context"

// MockEmbeddingModel is a mock implementation of the EmbeddingModel interface.
// ByText maps exact input text to a vector; Embedding is the fallback.
type MockEmbeddingModel struct {
	Embedding []float64
	ByText    map[string][]float64
	Err       error
}

func (m *MockEmbeddingModel) GetTextEmbedding(ctx context.Context, text string) ([]float64, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if vec, ok := m.ByText[text]; ok {
		return vec, nil
	}
	return m.Embedding, nil
}

func (m *MockEmbeddingModel) GetQueryEmbedding(ctx context.Context, query string) ([]float64, error) {
	return m.GetTextEmbedding(ctx, query)
}
