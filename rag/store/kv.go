package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"github.com/aqua777/ragspace/errs"
	"github.com/aqua777/ragspace/schema"
	"github.com/aqua777/ragspace/storage/kvstore"
)

// DocumentCollection is the kvstore collection holding document records.
const DocumentCollection = "documents"

// docRecord is the stored shape of a document. Seq preserves insertion order
// across reloads, since the underlying kvstore has no ordering of its own.
type docRecord struct {
	ID      string         `json:"id"`
	SpaceID string         `json:"space_id"`
	Title   string         `json:"title"`
	Visible bool           `json:"visible"`
	Seq     int64          `json:"seq"`
	Chunks  []schema.Chunk `json:"chunks"`
}

// KVChunkStore is a ChunkStore backed by a key-value store, giving the chunk
// corpus durability when the kvstore persists to disk.
type KVChunkStore struct {
	kv kvstore.KVStore

	mu      sync.Mutex
	nextSeq int64
}

// NewKVChunkStore creates a KVChunkStore over the given kvstore, resuming the
// insertion sequence from any records already present.
func NewKVChunkStore(ctx context.Context, kv kvstore.KVStore) (*KVChunkStore, error) {
	records, err := loadRecords(ctx, kv)
	if err != nil {
		return nil, err
	}

	var nextSeq int64
	for _, rec := range records {
		if rec.Seq >= nextSeq {
			nextSeq = rec.Seq + 1
		}
	}
	return &KVChunkStore{kv: kv, nextSeq: nextSeq}, nil
}

func (s *KVChunkStore) Append(ctx context.Context, spaceID, title string, texts []string, vectors [][]float64) (schema.Document, error) {
	chunks, err := buildChunks(texts, vectors)
	if err != nil {
		return schema.Document{}, err
	}

	doc := schema.NewDocument(spaceID, title, chunks)

	s.mu.Lock()
	seq := s.nextSeq
	s.nextSeq++
	s.mu.Unlock()

	rec := docRecord{
		ID:      doc.ID,
		SpaceID: doc.SpaceID,
		Title:   doc.Title,
		Visible: doc.Visible,
		Seq:     seq,
		Chunks:  doc.Chunks,
	}
	if err := s.putRecord(ctx, rec); err != nil {
		return schema.Document{}, err
	}
	return doc, nil
}

func (s *KVChunkStore) FetchAll(ctx context.Context, spaceID string) ([]schema.Document, error) {
	return s.fetch(ctx, spaceID, false)
}

func (s *KVChunkStore) FetchAllIncludingHidden(ctx context.Context, spaceID string) ([]schema.Document, error) {
	return s.fetch(ctx, spaceID, true)
}

func (s *KVChunkStore) fetch(ctx context.Context, spaceID string, includeHidden bool) ([]schema.Document, error) {
	records, err := loadRecords(ctx, s.kv)
	if err != nil {
		return nil, err
	}

	var matched []docRecord
	for _, rec := range records {
		if rec.SpaceID != spaceID {
			continue
		}
		if !rec.Visible && !includeHidden {
			continue
		}
		matched = append(matched, rec)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Seq < matched[j].Seq })

	docs := make([]schema.Document, 0, len(matched))
	for _, rec := range matched {
		docs = append(docs, rec.document())
	}
	return docs, nil
}

func (s *KVChunkStore) Delete(ctx context.Context, documentID string) error {
	deleted, err := s.kv.Delete(ctx, documentID, DocumentCollection)
	if err != nil {
		return fmt.Errorf("failed to delete document %s: %w", documentID, err)
	}
	if !deleted {
		return errs.NotFound("document %s not found", documentID)
	}
	return nil
}

func (s *KVChunkStore) SetVisibility(ctx context.Context, documentID string, visible bool) error {
	rec, err := s.getRecord(ctx, documentID)
	if err != nil {
		return err
	}
	rec.Visible = visible
	return s.putRecord(ctx, rec)
}

func (s *KVChunkStore) getRecord(ctx context.Context, documentID string) (docRecord, error) {
	val, err := s.kv.Get(ctx, documentID, DocumentCollection)
	if err != nil {
		return docRecord{}, fmt.Errorf("failed to get document %s: %w", documentID, err)
	}
	if val == nil {
		return docRecord{}, errs.NotFound("document %s not found", documentID)
	}
	return decodeRecord(val)
}

func (s *KVChunkStore) putRecord(ctx context.Context, rec docRecord) error {
	val, err := encodeRecord(rec)
	if err != nil {
		return err
	}
	if err := s.kv.Put(ctx, rec.ID, val, DocumentCollection); err != nil {
		return fmt.Errorf("failed to store document %s: %w", rec.ID, err)
	}
	return nil
}

func (r docRecord) document() schema.Document {
	return schema.Document{
		ID:      r.ID,
		SpaceID: r.SpaceID,
		Title:   r.Title,
		Visible: r.Visible,
		Chunks:  r.Chunks,
	}
}

func loadRecords(ctx context.Context, kv kvstore.KVStore) ([]docRecord, error) {
	all, err := kv.GetAll(ctx, DocumentCollection)
	if err != nil {
		return nil, fmt.Errorf("failed to list documents: %w", err)
	}

	records := make([]docRecord, 0, len(all))
	for key, val := range all {
		rec, err := decodeRecord(val)
		if err != nil {
			return nil, fmt.Errorf("corrupt document record %s: %w", key, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func encodeRecord(rec docRecord) (kvstore.StoredValue, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("failed to encode document %s: %w", rec.ID, err)
	}
	var val kvstore.StoredValue
	if err := json.Unmarshal(raw, &val); err != nil {
		return nil, fmt.Errorf("failed to encode document %s: %w", rec.ID, err)
	}
	return val, nil
}

func decodeRecord(val kvstore.StoredValue) (docRecord, error) {
	raw, err := json.Marshal(val)
	if err != nil {
		return docRecord{}, err
	}
	var rec docRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return docRecord{}, err
	}
	return rec, nil
}

var _ ChunkStore = (*KVChunkStore)(nil)
