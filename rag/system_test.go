package rag

import (
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aqua777/ragspace/embedding"
	"github.com/aqua777/ragspace/errs"
	"github.com/aqua777/ragspace/llm"
	"github.com/aqua777/ragspace/schema"
	"github.com/aqua777/ragspace/textsplitter"
)

const (
	parisText  = "Paris is the capital of France."
	berlinText = "Berlin is the capital of Germany."
)

func newTestSystem(t *testing.T, embed embedding.EmbeddingModel, model llm.LLM) *System {
	t.Helper()
	sys, err := NewSystem(Config{})
	require.NoError(t, err)
	return sys.WithEmbedding(embed).WithLLM(model)
}

func geographyEmbedder() *embedding.MockEmbeddingModel {
	return &embedding.MockEmbeddingModel{
		Embedding: []float64{0.1, 0.1},
		ByText: map[string][]float64{
			parisText:                         {1, 0},
			berlinText:                        {0, 1},
			"What is the capital of France?":  {1, 0},
			"What is the capital of Germany?": {0, 1},
		},
	}
}

func TestAnswer_GroundedOnBestChunk(t *testing.T) {
	ctx := context.Background()
	mockLLM := llm.NewMockLLM("The capital of France is Paris.")
	sys := newTestSystem(t, geographyEmbedder(), mockLLM)

	_, err := sys.Ingest(ctx, "space1", "france", parisText)
	require.NoError(t, err)
	_, err = sys.Ingest(ctx, "space1", "germany", berlinText)
	require.NoError(t, err)

	resp, err := sys.Answer(ctx, schema.AnswerRequest{
		SpaceID: "space1",
		Prompt:  "What is the capital of France?",
	})
	require.NoError(t, err)

	assert.Equal(t, "The capital of France is Paris.", resp.Response)
	assert.True(t, strings.HasPrefix(resp.ContextSummary, "Content: "+parisText),
		"best-matching chunk must rank first in the context")

	require.Len(t, mockLLM.LastMessages, 2)
	assert.Equal(t, llm.MessageRoleSystem, mockLLM.LastMessages[0].Role)
	assert.Equal(t, llm.MessageRoleUser, mockLLM.LastMessages[1].Role)
	assert.True(t, strings.HasPrefix(mockLLM.LastMessages[1].Content, "Context:\n"))
	assert.Contains(t, mockLLM.LastMessages[1].Content, "Question: What is the capital of France?")
}

func TestAnswer_EmptySpace(t *testing.T) {
	ctx := context.Background()
	sys := newTestSystem(t, geographyEmbedder(), llm.NewMockLLM("unused"))

	_, err := sys.Answer(ctx, schema.AnswerRequest{SpaceID: "empty", Prompt: "anything"})
	assert.True(t, errs.IsNotFound(err))
}

func TestAnswer_MissingSpaceID(t *testing.T) {
	ctx := context.Background()
	sys := newTestSystem(t, geographyEmbedder(), llm.NewMockLLM("unused"))

	_, err := sys.Answer(ctx, schema.AnswerRequest{Prompt: "anything"})
	assert.True(t, errs.IsInput(err))
}

func TestAnswer_SampleQuestions(t *testing.T) {
	ctx := context.Background()
	mockLLM := llm.NewMockLLM("1. What is the capital of France?\n\n2) Which country is Paris in?\n- Where is the Seine?\nWhat about a fourth?")
	sys := newTestSystem(t, geographyEmbedder(), mockLLM)

	_, err := sys.Ingest(ctx, "space1", "france", parisText)
	require.NoError(t, err)

	resp, err := sys.Answer(ctx, schema.AnswerRequest{SpaceID: "space1", Prompt: "  "})
	require.NoError(t, err)

	require.Len(t, resp.SampleQuestions, 3)
	enumerated := regexp.MustCompile(`^\d+[.)]`)
	for _, q := range resp.SampleQuestions {
		assert.False(t, enumerated.MatchString(q), "question still enumerated: %q", q)
		assert.NotEmpty(t, q)
	}
	assert.Equal(t, "What is the capital of France?", resp.SampleQuestions[0])
	assert.Empty(t, resp.Response)

	// The corpus went into the instruction.
	assert.Contains(t, mockLLM.LastPrompt, parisText)
}

func TestAnswer_SampleQuestionsFewerThanThree(t *testing.T) {
	ctx := context.Background()
	mockLLM := llm.NewMockLLM("Only one usable question?\n\n\n")
	sys := newTestSystem(t, geographyEmbedder(), mockLLM)

	_, err := sys.Ingest(ctx, "space1", "france", parisText)
	require.NoError(t, err)

	resp, err := sys.Answer(ctx, schema.AnswerRequest{SpaceID: "space1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Only one usable question?"}, resp.SampleQuestions)
}

func TestAnswer_HiddenDocumentsExcluded(t *testing.T) {
	ctx := context.Background()
	sys := newTestSystem(t, geographyEmbedder(), llm.NewMockLLM("unused"))

	doc, err := sys.Ingest(ctx, "space1", "france", parisText)
	require.NoError(t, err)
	require.NoError(t, sys.SetDocumentVisibility(ctx, doc.ID, false))

	_, err = sys.Answer(ctx, schema.AnswerRequest{SpaceID: "space1", Prompt: "anything"})
	assert.True(t, errs.IsNotFound(err), "a space with only hidden documents has no corpus")

	require.NoError(t, sys.SetDocumentVisibility(ctx, doc.ID, true))
	_, err = sys.Answer(ctx, schema.AnswerRequest{SpaceID: "space1", Prompt: "What is the capital of France?"})
	assert.NoError(t, err)
}

func TestIngest_EmptyText(t *testing.T) {
	ctx := context.Background()
	sys := newTestSystem(t, geographyEmbedder(), llm.NewMockLLM("unused"))

	_, err := sys.Ingest(ctx, "space1", "blank", "   \n ")
	assert.True(t, errs.IsInput(err))
}

func TestIngest_MissingSpaceID(t *testing.T) {
	ctx := context.Background()
	sys := newTestSystem(t, geographyEmbedder(), llm.NewMockLLM("unused"))

	_, err := sys.Ingest(ctx, "", "title", parisText)
	assert.True(t, errs.IsInput(err))
}

func TestIngest_EmbeddingFailureWritesNothing(t *testing.T) {
	ctx := context.Background()
	failing := &embedding.MockEmbeddingModel{Err: errs.Provider(nil, "embedding backend down")}
	sys := newTestSystem(t, failing, llm.NewMockLLM("unused"))

	_, err := sys.Ingest(ctx, "space1", "france", parisText)
	require.Error(t, err)
	assert.True(t, errs.IsProvider(err))

	docs, err := sys.Chunks.FetchAllIncludingHidden(ctx, "space1")
	require.NoError(t, err)
	assert.Empty(t, docs, "a failed ingest must not leave partial state")
}

func TestSummarize(t *testing.T) {
	ctx := context.Background()
	mockLLM := llm.NewMockLLM("  A summary of France.\n")
	sys := newTestSystem(t, geographyEmbedder(), mockLLM)

	_, err := sys.Ingest(ctx, "space1", "france", parisText)
	require.NoError(t, err)

	summary, err := sys.Summarize(ctx, "space1")
	require.NoError(t, err)
	assert.Equal(t, "A summary of France.", summary)
	assert.Contains(t, mockLLM.LastPrompt, parisText)
}

func TestSummarize_EmptySpace(t *testing.T) {
	ctx := context.Background()
	sys := newTestSystem(t, geographyEmbedder(), llm.NewMockLLM("unused"))

	_, err := sys.Summarize(ctx, "empty")
	assert.True(t, errs.IsNotFound(err))
}

func TestGenerateQuiz(t *testing.T) {
	ctx := context.Background()
	mockLLM := llm.NewMockLLM("Q1: ...")
	sys := newTestSystem(t, geographyEmbedder(), mockLLM)

	_, err := sys.Ingest(ctx, "space1", "france", parisText)
	require.NoError(t, err)

	quiz, err := sys.GenerateQuiz(ctx, "space1", 2)
	require.NoError(t, err)
	assert.Equal(t, "Q1: ...", quiz)
	assert.Contains(t, mockLLM.LastPrompt, "2 multiple-choice questions")
}

func TestDeleteDocument(t *testing.T) {
	ctx := context.Background()
	sys := newTestSystem(t, geographyEmbedder(), llm.NewMockLLM("unused"))

	doc, err := sys.Ingest(ctx, "space1", "france", parisText)
	require.NoError(t, err)

	require.NoError(t, sys.DeleteDocument(ctx, doc.ID))
	err = sys.DeleteDocument(ctx, doc.ID)
	assert.True(t, errs.IsNotFound(err))
}

func TestParseQuestionLines(t *testing.T) {
	tests := []struct {
		name     string
		raw      string
		expected []string
	}{
		{
			name:     "numbered with dot",
			raw:      "1. First?\n2. Second?",
			expected: []string{"First?", "Second?"},
		},
		{
			name:     "numbered with paren",
			raw:      "1) First?\n2) Second?",
			expected: []string{"First?", "Second?"},
		},
		{
			name:     "bullets",
			raw:      "- First?\n* Second?",
			expected: []string{"First?", "Second?"},
		},
		{
			name:     "blank lines dropped",
			raw:      "\nFirst?\n\n\nSecond?\n",
			expected: []string{"First?", "Second?"},
		},
		{
			name:     "capped at max",
			raw:      "One?\nTwo?\nThree?\nFour?",
			expected: []string{"One?", "Two?", "Three?"},
		},
		{
			name:     "empty output",
			raw:      "\n\n",
			expected: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, parseQuestionLines(tt.raw, 3))
		})
	}
}

func TestNewSystem_ChunkOverlapSentinel(t *testing.T) {
	// Zero means unset and takes the default.
	sys, err := NewSystem(Config{})
	require.NoError(t, err)
	assert.Equal(t, textsplitter.DefaultChunkOverlap, sys.Splitter.ChunkOverlap)

	// Negative is the explicit request for no overlap.
	sys, err = NewSystem(Config{ChunkOverlap: -1})
	require.NoError(t, err)
	assert.Equal(t, 0, sys.Splitter.ChunkOverlap)

	sys, err = NewSystem(Config{ChunkOverlap: 50})
	require.NoError(t, err)
	assert.Equal(t, 50, sys.Splitter.ChunkOverlap)
}
