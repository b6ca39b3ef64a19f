package store

import (
	"context"
	"sync"

	"github.com/aqua777/ragspace/errs"
	"github.com/aqua777/ragspace/schema"
)

// MemoryChunkStore is a thread-safe in-memory ChunkStore. Documents are kept
// in insertion order per space so retrieval ties break deterministically.
type MemoryChunkStore struct {
	mu    sync.RWMutex
	docs  map[string]schema.Document
	order map[string][]string // spaceID -> document IDs in insertion order
}

// NewMemoryChunkStore creates an empty MemoryChunkStore.
func NewMemoryChunkStore() *MemoryChunkStore {
	return &MemoryChunkStore{
		docs:  make(map[string]schema.Document),
		order: make(map[string][]string),
	}
}

func (s *MemoryChunkStore) Append(ctx context.Context, spaceID, title string, texts []string, vectors [][]float64) (schema.Document, error) {
	chunks, err := buildChunks(texts, vectors)
	if err != nil {
		return schema.Document{}, err
	}

	doc := schema.NewDocument(spaceID, title, chunks)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[doc.ID] = doc
	s.order[spaceID] = append(s.order[spaceID], doc.ID)
	return copyDocument(doc), nil
}

func (s *MemoryChunkStore) FetchAll(ctx context.Context, spaceID string) ([]schema.Document, error) {
	return s.fetch(spaceID, false)
}

func (s *MemoryChunkStore) FetchAllIncludingHidden(ctx context.Context, spaceID string) ([]schema.Document, error) {
	return s.fetch(spaceID, true)
}

func (s *MemoryChunkStore) fetch(spaceID string, includeHidden bool) ([]schema.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []schema.Document
	for _, id := range s.order[spaceID] {
		doc, ok := s.docs[id]
		if !ok {
			continue
		}
		if !doc.Visible && !includeHidden {
			continue
		}
		result = append(result, copyDocument(doc))
	}
	return result, nil
}

func (s *MemoryChunkStore) Delete(ctx context.Context, documentID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[documentID]
	if !ok {
		return errs.NotFound("document %s not found", documentID)
	}
	delete(s.docs, documentID)

	ids := s.order[doc.SpaceID]
	for i, id := range ids {
		if id == documentID {
			s.order[doc.SpaceID] = append(ids[:i], ids[i+1:]...)
			break
		}
	}
	return nil
}

func (s *MemoryChunkStore) SetVisibility(ctx context.Context, documentID string, visible bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, ok := s.docs[documentID]
	if !ok {
		return errs.NotFound("document %s not found", documentID)
	}
	doc.Visible = visible
	s.docs[documentID] = doc
	return nil
}

// copyDocument returns a document whose chunk slice is detached from the
// store's copy. Embedding vectors are shared; callers treat them as
// read-only.
func copyDocument(doc schema.Document) schema.Document {
	chunks := make([]schema.Chunk, len(doc.Chunks))
	copy(chunks, doc.Chunks)
	doc.Chunks = chunks
	return doc
}

var _ ChunkStore = (*MemoryChunkStore)(nil)
