package embedding

import (
	"context"
	"log/slog"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/aqua777/ragspace/errs"
)

type OpenAIEmbedding struct {
	client *openai.Client
	model  openai.EmbeddingModel
	logger *slog.Logger
}

func NewOpenAIEmbedding(apiKey string, modelName string) *OpenAIEmbedding {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}

	var model openai.EmbeddingModel
	if modelName == "" {
		model = openai.SmallEmbedding3
	} else {
		model = openai.EmbeddingModel(modelName)
	}

	client := openai.NewClient(apiKey)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return &OpenAIEmbedding{
		client: client,
		model:  model,
		logger: logger,
	}
}

func NewOpenAIEmbeddingWithClient(client *openai.Client, modelName string) *OpenAIEmbedding {
	var model openai.EmbeddingModel
	if modelName == "" {
		model = openai.SmallEmbedding3
	} else {
		model = openai.EmbeddingModel(modelName)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	return &OpenAIEmbedding{
		client: client,
		model:  model,
		logger: logger,
	}
}

func (o *OpenAIEmbedding) GetTextEmbedding(ctx context.Context, text string) ([]float64, error) {
	vectors, err := o.getEmbeddings(ctx, []string{text}, "text")
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

func (o *OpenAIEmbedding) GetQueryEmbedding(ctx context.Context, query string) ([]float64, error) {
	vectors, err := o.getEmbeddings(ctx, []string{query}, "query")
	if err != nil {
		return nil, err
	}
	return vectors[0], nil
}

// GetTextEmbeddingsBatch embeds all texts in a single request.
func (o *OpenAIEmbedding) GetTextEmbeddingsBatch(ctx context.Context, texts []string) ([][]float64, error) {
	return o.getEmbeddings(ctx, texts, "batch")
}

func (o *OpenAIEmbedding) getEmbeddings(ctx context.Context, inputs []string, typeLabel string) ([][]float64, error) {
	resp, err := o.client.CreateEmbeddings(
		ctx,
		openai.EmbeddingRequest{
			Input: inputs,
			Model: o.model,
		},
	)

	if err != nil {
		o.logger.Error("GetEmbedding failed", "type", typeLabel, "error", err)
		return nil, errs.Provider(err, "openai embedding failed")
	}

	if len(resp.Data) != len(inputs) {
		return nil, errs.Provider(nil, "openai returned %d embeddings for %d inputs", len(resp.Data), len(inputs))
	}

	// Convert float32 to float64
	vectors := make([][]float64, len(resp.Data))
	for i, item := range resp.Data {
		vec := make([]float64, len(item.Embedding))
		for j, v := range item.Embedding {
			vec[j] = float64(v)
		}
		vectors[i] = vec
	}

	return vectors, nil
}

var (
	_ EmbeddingModel          = (*OpenAIEmbedding)(nil)
	_ EmbeddingModelWithBatch = (*OpenAIEmbedding)(nil)
)
