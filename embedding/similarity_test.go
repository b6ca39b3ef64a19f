package embedding

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCosineSimilarity(t *testing.T) {
	tests := []struct {
		name     string
		a, b     []float64
		expected float64
		wantErr  bool
	}{
		{
			name:     "identical vectors",
			a:        []float64{0.3, 0.4, 0.5},
			b:        []float64{0.3, 0.4, 0.5},
			expected: 1.0,
		},
		{
			name:     "orthogonal vectors",
			a:        []float64{1, 0},
			b:        []float64{0, 1},
			expected: 0.0,
		},
		{
			name:     "opposite vectors",
			a:        []float64{1, 1},
			b:        []float64{-1, -1},
			expected: -1.0,
		},
		{
			name:     "zero vector yields zero, not NaN",
			a:        []float64{0.5, 0.5},
			b:        []float64{0, 0},
			expected: 0.0,
		},
		{
			name:    "mismatched lengths",
			a:       []float64{1, 2},
			b:       []float64{1, 2, 3},
			wantErr: true,
		},
		{
			name:    "empty vectors",
			a:       []float64{},
			b:       []float64{},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sim, err := CosineSimilarity(tt.a, tt.b)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.expected, sim, 1e-9)
		})
	}
}

func TestCheckDimensions(t *testing.T) {
	vectors := [][]float64{{1, 2, 3}, {4, 5, 6}}
	assert.NoError(t, CheckDimensions(vectors, 3))

	vectors = append(vectors, []float64{1, 2})
	assert.Error(t, CheckDimensions(vectors, 3))
}

func TestEmbedAll_FallsBackToPerItem(t *testing.T) {
	ctx := context.Background()
	model := &MockEmbeddingModel{
		Embedding: []float64{0.1, 0.2},
		ByText: map[string][]float64{
			"hello": {1, 0},
		},
	}

	vectors, err := EmbedAll(ctx, model, []string{"hello", "world"})
	require.NoError(t, err)
	require.Len(t, vectors, 2)
	assert.Equal(t, []float64{1, 0}, vectors[0])
	assert.Equal(t, []float64{0.1, 0.2}, vectors[1])
}
