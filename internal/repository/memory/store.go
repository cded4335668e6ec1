// Package memory keeps prompts in process memory.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/kailas-cloud/promptsearch/internal/domain"
	domprompt "github.com/kailas-cloud/promptsearch/internal/domain/prompt"
)

// Store is a concurrency-safe in-memory prompt store.
type Store struct {
	mu      sync.RWMutex
	records map[string]domprompt.Record
}

// New creates an empty store.
func New() *Store {
	return &Store{records: make(map[string]domprompt.Record)}
}

// Fetch lists up to limit records matching f, ordered by created_at then id.
func (s *Store) Fetch(ctx context.Context, f domprompt.Filter, limit int) ([]domprompt.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := make([]domprompt.Record, 0, len(s.records))
	for _, r := range s.records {
		if f.Matches(&r) {
			out = append(out, r)
		}
	}
	s.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt() != out[j].CreatedAt() {
			return out[i].CreatedAt() < out[j].CreatedAt()
		}
		return out[i].ID() < out[j].ID()
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Put upserts records.
func (s *Store) Put(ctx context.Context, records ...domprompt.Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		s.records[r.ID()] = r
	}
	return nil
}

// Get returns a prompt by ID.
func (s *Store) Get(_ context.Context, id string) (domprompt.Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.records[id]
	if !ok {
		return domprompt.Record{}, domain.ErrPromptNotFound
	}
	return r, nil
}

// Delete removes a prompt.
func (s *Store) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.records, id)
	return nil
}

// Len returns the number of stored prompts.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Ping reports whether the store can serve requests; it always can unless ctx is done.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}
