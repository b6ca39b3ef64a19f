// Package rag wires the retrieval pipeline together: chunking, embedding,
// storage, per-query similarity search, and the answering flows on top.
package rag

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	"github.com/aqua777/ragspace/embedding"
	"github.com/aqua777/ragspace/errs"
	"github.com/aqua777/ragspace/llm"
	"github.com/aqua777/ragspace/prompts"
	"github.com/aqua777/ragspace/rag/index"
	"github.com/aqua777/ragspace/rag/reader"
	"github.com/aqua777/ragspace/rag/spacestore"
	"github.com/aqua777/ragspace/rag/store"
	"github.com/aqua777/ragspace/schema"
	"github.com/aqua777/ragspace/storage/kvstore"
	"github.com/aqua777/ragspace/textsplitter"
)

// DefaultSampleQuestions is how many sample questions an empty prompt yields.
const DefaultSampleQuestions = 3

// Config holds configuration for the System.
type Config struct {
	OpenAIKey      string
	OpenAIBaseURL  string // optional, for OpenAI-compatible APIs
	LLMModel       string
	EmbeddingModel string
	ChunkSize      int
	ChunkOverlap   int // 0 selects the default; negative requests no overlap
	TopK           int
	PersistPath    string // path to persist stores; empty for in-memory
}

// System encapsulates the retrieval pipeline.
type System struct {
	Config     Config
	EmbedModel embedding.EmbeddingModel
	LLM        llm.LLM
	Chunks     store.ChunkStore
	Spaces     *spacestore.Registry
	Builder    index.Builder
	Splitter   *textsplitter.Splitter

	logger *slog.Logger
}

// NewSystem creates a System with the provided configuration. Model clients
// default to OpenAI when an API key is configured; use WithEmbedding/WithLLM
// to inject others.
func NewSystem(config Config) (*System, error) {
	if config.LLMModel == "" {
		config.LLMModel = "gpt-3.5-turbo"
	}
	if config.EmbeddingModel == "" {
		config.EmbeddingModel = "text-embedding-3-small"
	}
	if config.ChunkSize <= 0 {
		config.ChunkSize = textsplitter.DefaultChunkSize
	}
	if config.ChunkOverlap == 0 {
		config.ChunkOverlap = textsplitter.DefaultChunkOverlap
	} else if config.ChunkOverlap < 0 {
		config.ChunkOverlap = 0
	}
	if config.TopK <= 0 {
		config.TopK = 3
	}

	splitter, err := textsplitter.NewSplitter(config.ChunkSize, config.ChunkOverlap)
	if err != nil {
		return nil, err
	}

	var (
		kv     kvstore.KVStore
		chunks store.ChunkStore
	)
	if config.PersistPath != "" {
		persisted, err := kvstore.FromPersistPath(filepath.Join(config.PersistPath, "ragspace.json"))
		if err != nil {
			return nil, fmt.Errorf("failed to open persistent store: %w", err)
		}
		kv = persisted
		chunks, err = store.NewKVChunkStore(context.Background(), kv)
		if err != nil {
			return nil, fmt.Errorf("failed to open chunk store: %w", err)
		}
	} else {
		kv = kvstore.NewSimpleKVStore()
		chunks = store.NewMemoryChunkStore()
	}

	sys := &System{
		Config:   config,
		Chunks:   chunks,
		Spaces:   spacestore.NewRegistry(kv, chunks),
		Builder:  index.NewBruteForceBuilder(),
		Splitter: splitter,
		logger:   slog.New(slog.NewJSONHandler(os.Stderr, nil)),
	}

	if config.OpenAIKey != "" {
		sys.EmbedModel = embedding.NewOpenAIEmbedding(config.OpenAIKey, config.EmbeddingModel)
		sys.LLM = llm.NewOpenAILLM(config.OpenAIBaseURL, config.LLMModel, config.OpenAIKey)
	}
	return sys, nil
}

// WithEmbedding injects a custom embedding model. Call before use.
func (s *System) WithEmbedding(embedModel embedding.EmbeddingModel) *System {
	s.EmbedModel = embedModel
	return s
}

// WithLLM injects a custom LLM. Call before use.
func (s *System) WithLLM(llmModel llm.LLM) *System {
	s.LLM = llmModel
	return s
}

// WithIndexBuilder swaps the similarity index backend.
func (s *System) WithIndexBuilder(builder index.Builder) *System {
	s.Builder = builder
	return s
}

func (s *System) bootstrap() error {
	if s.EmbedModel == nil {
		return fmt.Errorf("embedding model is not initialized: provide OpenAIKey in config or use WithEmbedding()")
	}
	if s.LLM == nil {
		return fmt.Errorf("LLM is not initialized: provide OpenAIKey in config or use WithLLM()")
	}
	return nil
}

// Ingest chunks and embeds raw text and appends the result to the space as a
// new document.
func (s *System) Ingest(ctx context.Context, spaceID, title, text string) (schema.Document, error) {
	if err := s.bootstrap(); err != nil {
		return schema.Document{}, err
	}
	if spaceID == "" {
		return schema.Document{}, errs.Input("space id must not be empty")
	}

	texts, err := s.Splitter.SplitText(text)
	if err != nil {
		return schema.Document{}, err
	}

	vectors, err := embedding.EmbedAll(ctx, s.EmbedModel, texts)
	if err != nil {
		return schema.Document{}, err
	}
	if len(vectors) > 0 {
		if err := embedding.CheckDimensions(vectors, len(vectors[0])); err != nil {
			return schema.Document{}, errs.Provider(err, "embedding model returned inconsistent vectors")
		}
	}

	doc, err := s.Chunks.Append(ctx, spaceID, title, texts, vectors)
	if err != nil {
		return schema.Document{}, err
	}

	s.logger.Info("document ingested",
		"space_id", spaceID,
		"document_id", doc.ID,
		"title", title,
		"chunks", len(doc.Chunks))
	return doc, nil
}

// IngestFile extracts text from a file (PDF, txt, md) and ingests it. The
// file name is used as the title when none is given.
func (s *System) IngestFile(ctx context.Context, spaceID, title, path string) (schema.Document, error) {
	r, err := reader.ForFile(path)
	if err != nil {
		return schema.Document{}, err
	}
	text, err := r.ExtractText(path)
	if err != nil {
		return schema.Document{}, err
	}
	if title == "" {
		title = filepath.Base(path)
	}
	return s.Ingest(ctx, spaceID, title, text)
}

// Answer runs the answering flow for a space. A non-empty prompt produces a
// grounded answer; an empty prompt produces up to three sample questions the
// corpus can answer. A space with no visible documents yields a
// NotFoundError.
func (s *System) Answer(ctx context.Context, req schema.AnswerRequest) (schema.AnswerResponse, error) {
	if err := s.bootstrap(); err != nil {
		return schema.AnswerResponse{}, err
	}
	if req.SpaceID == "" {
		return schema.AnswerResponse{}, errs.Input("space id must not be empty")
	}

	docs, err := s.Chunks.FetchAll(ctx, req.SpaceID)
	if err != nil {
		return schema.AnswerResponse{}, err
	}
	if len(docs) == 0 {
		return schema.AnswerResponse{}, errs.NotFound("no corpus for space %s", req.SpaceID)
	}

	if strings.TrimSpace(req.Prompt) == "" {
		questions, err := s.sampleQuestions(ctx, docs)
		if err != nil {
			return schema.AnswerResponse{}, err
		}
		return schema.AnswerResponse{SampleQuestions: questions}, nil
	}
	return s.groundedAnswer(ctx, docs, req.Prompt)
}

func (s *System) groundedAnswer(ctx context.Context, docs []schema.Document, prompt string) (schema.AnswerResponse, error) {
	queryVector, err := s.EmbedModel.GetQueryEmbedding(ctx, prompt)
	if err != nil {
		return schema.AnswerResponse{}, err
	}

	idx, err := s.Builder.Build(ctx, docs)
	if err != nil {
		return schema.AnswerResponse{}, err
	}
	results, err := idx.Search(ctx, queryVector, s.Config.TopK)
	if err != nil {
		return schema.AnswerResponse{}, err
	}

	texts := make([]string, len(results))
	for i, r := range results {
		texts[i] = r.Text
	}
	contextStr := prompts.BuildContext(texts)

	messages := []llm.ChatMessage{
		llm.NewSystemMessage(prompts.DefaultSystemPromptTmpl),
		llm.NewUserMessage(prompts.BuildGroundedUserMessage(contextStr, prompt)),
	}
	response, err := s.LLM.Chat(ctx, messages)
	if err != nil {
		return schema.AnswerResponse{}, err
	}

	s.logger.Info("grounded answer produced",
		"retrieved_chunks", len(results),
		"context_bytes", len(contextStr))
	return schema.AnswerResponse{
		Response:       strings.TrimSpace(response),
		ContextSummary: contextStr,
	}, nil
}

func (s *System) sampleQuestions(ctx context.Context, docs []schema.Document) ([]string, error) {
	raw, err := s.corpusCall(ctx, docs, prompts.DefaultSampleQuestionsTmpl, DefaultSampleQuestions)
	if err != nil {
		return nil, err
	}
	questions := parseQuestionLines(raw, DefaultSampleQuestions)

	s.logger.Info("sample questions generated", "count", len(questions))
	return questions, nil
}

// Summarize produces a summary of all visible documents in the space.
func (s *System) Summarize(ctx context.Context, spaceID string) (string, error) {
	docs, err := s.corpus(ctx, spaceID)
	if err != nil {
		return "", err
	}
	raw, err := s.corpusCall(ctx, docs, prompts.DefaultSummaryPromptTmpl, 0)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// GenerateQuiz produces a quiz of n multiple-choice questions over all
// visible documents in the space.
func (s *System) GenerateQuiz(ctx context.Context, spaceID string, n int) (string, error) {
	if n <= 0 {
		n = 5
	}
	docs, err := s.corpus(ctx, spaceID)
	if err != nil {
		return "", err
	}
	raw, err := s.corpusCall(ctx, docs, prompts.DefaultQuizPromptTmpl, n)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(raw), nil
}

// DeleteDocument removes a document and its chunks.
func (s *System) DeleteDocument(ctx context.Context, documentID string) error {
	return s.Chunks.Delete(ctx, documentID)
}

// SetDocumentVisibility toggles a document's participation in retrieval.
func (s *System) SetDocumentVisibility(ctx context.Context, documentID string, visible bool) error {
	return s.Chunks.SetVisibility(ctx, documentID, visible)
}

func (s *System) corpus(ctx context.Context, spaceID string) ([]schema.Document, error) {
	if err := s.bootstrap(); err != nil {
		return nil, err
	}
	if spaceID == "" {
		return nil, errs.Input("space id must not be empty")
	}
	docs, err := s.Chunks.FetchAll(ctx, spaceID)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, errs.NotFound("no corpus for space %s", spaceID)
	}
	return docs, nil
}

// corpusCall fills a whole-corpus template with the concatenated visible
// document text and makes a single completion call.
func (s *System) corpusCall(ctx context.Context, docs []schema.Document, template string, numQuestions int) (string, error) {
	var parts []string
	for _, doc := range docs {
		parts = append(parts, doc.ChunkTexts()...)
	}

	prompt := prompts.FormatString(template, map[string]string{
		"context_str":   strings.Join(parts, "\n\n"),
		"num_questions": strconv.Itoa(numQuestions),
	})
	return s.LLM.Complete(ctx, prompt)
}

// enumerationPrefix matches leading list decoration: "1. ", "2) ", "- ", "* ".
var enumerationPrefix = regexp.MustCompile(`^(\d+[.)]\s*|[-*]\s+)`)

// parseQuestionLines turns raw model output into at most max clean question
// lines. Fewer usable lines mean fewer questions; the result is never padded.
func parseQuestionLines(raw string, max int) []string {
	var questions []string
	for _, line := range strings.Split(raw, "\n") {
		line = strings.TrimSpace(line)
		line = enumerationPrefix.ReplaceAllString(line, "")
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		questions = append(questions, line)
		if len(questions) == max {
			break
		}
	}
	return questions
}
