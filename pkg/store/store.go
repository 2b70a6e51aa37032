// Package store persists computed layouts for the tidytree API server.
//
// A [Record] pairs the input tree document with its computed layout and
// run statistics under a generated ID, so clients can fetch or re-render
// a layout without resubmitting the document. Two backends implement the
// [Store] interface: [MemoryStore] for tests and single-process use, and
// [MongoStore] for deployments.
package store

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/sibaiper/tidy-tree/pkg/pipeline"
	"github.com/sibaiper/tidy-tree/pkg/treefile"
)

// ErrRecordNotFound is returned when no record exists for an ID.
var ErrRecordNotFound = errors.New("record not found")

// DefaultListLimit bounds List results when the caller passes 0.
const DefaultListLimit = 50

// Record is one stored layout run.
type Record struct {
	ID        string             `json:"id" bson:"_id"`
	Name      string             `json:"name,omitempty" bson:"name,omitempty"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
	Tree      treefile.Doc       `json:"tree" bson:"tree"`
	Layout    treefile.LayoutDoc `json:"layout" bson:"layout"`
	Stats     pipeline.Stats     `json:"stats" bson:"stats"`
	CacheInfo pipeline.CacheInfo `json:"cache_info" bson:"cache_info"`
}

// NewRecord builds a record from a pipeline result with a fresh ID.
func NewRecord(result *pipeline.Result) *Record {
	return &Record{
		ID:        uuid.NewString(),
		Name:      result.Doc.Name,
		CreatedAt: time.Now().UTC(),
		Tree:      result.Doc,
		Layout:    result.Layout,
		Stats:     result.Stats,
		CacheInfo: result.CacheInfo,
	}
}

// Store is the persistence interface for layout records.
type Store interface {
	// Put inserts or replaces a record.
	Put(ctx context.Context, rec *Record) error

	// Get retrieves a record by ID. Returns ErrRecordNotFound when absent.
	Get(ctx context.Context, id string) (*Record, error)

	// List returns up to limit records, newest first.
	List(ctx context.Context, limit int) ([]*Record, error)

	// Delete removes a record. Returns ErrRecordNotFound when absent.
	Delete(ctx context.Context, id string) error

	// Close releases backend resources.
	Close(ctx context.Context) error
}

// MemoryStore keeps records in a map guarded by an RWMutex.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record)}
}

// Put implements Store.
func (s *MemoryStore) Put(ctx context.Context, rec *Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *rec
	s.records[rec.ID] = &cp
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get(ctx context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.records[id]
	if !ok {
		return nil, ErrRecordNotFound
	}
	cp := *rec
	return &cp, nil
}

// List implements Store.
func (s *MemoryStore) List(ctx context.Context, limit int) ([]*Record, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	s.mu.RLock()
	out := make([]*Record, 0, len(s.records))
	for _, rec := range s.records {
		cp := *rec
		out = append(out, &cp)
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Delete implements Store.
func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return ErrRecordNotFound
	}
	delete(s.records, id)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close(ctx context.Context) error { return nil }

var _ Store = (*MemoryStore)(nil)
