package store

import (
	"cmp"
	"context"
	"slices"
	"sync"
	"time"

	"github.com/matzehuels/autogrid/pkg/board"
	"github.com/matzehuels/autogrid/pkg/errors"
)

// MemoryStore keeps records in a map.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]*Record
	now     func() time.Time
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: make(map[string]*Record), now: time.Now}
}

func (s *MemoryStore) Get(_ context.Context, id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return nil, errors.New(errors.ErrCodeNotFound, "board %q not found", id)
	}
	return copyRecord(r), nil
}

func (s *MemoryStore) Put(_ context.Context, b *board.Board) (*Record, error) {
	b = cloneBoard(b)
	if b.ID == "" {
		b.ID = board.NewID()
	}
	if err := b.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now()
	r := &Record{ID: b.ID, Board: b, CreatedAt: now, UpdatedAt: now}
	if old, ok := s.records[b.ID]; ok {
		r.CreatedAt = old.CreatedAt
	}
	s.records[b.ID] = r
	return copyRecord(r), nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.records[id]; !ok {
		return errors.New(errors.ErrCodeNotFound, "board %q not found", id)
	}
	delete(s.records, id)
	return nil
}

func (s *MemoryStore) List(_ context.Context, limit int) ([]*Record, error) {
	s.mu.RLock()
	out := make([]*Record, 0, len(s.records))
	for _, r := range s.records {
		out = append(out, copyRecord(r))
	}
	s.mu.RUnlock()

	slices.SortFunc(out, func(a, b *Record) int {
		if c := b.UpdatedAt.Compare(a.UpdatedAt); c != 0 {
			return c
		}
		return cmp.Compare(a.ID, b.ID)
	})
	if n := listLimit(limit); len(out) > n {
		out = out[:n]
	}
	return out, nil
}

func (s *MemoryStore) Close(context.Context) error { return nil }

func copyRecord(r *Record) *Record {
	c := *r
	c.Board = cloneBoard(r.Board)
	return &c
}

var _ Store = (*MemoryStore)(nil)
