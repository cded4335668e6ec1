package valkey

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/kailas-cloud/promptsearch/internal/db"
	dbRedis "github.com/kailas-cloud/promptsearch/internal/db/redis"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store implements db.Store for Valkey with valkey-search. Hash, index and
// connectivity commands are shared with Redis; listing differs because
// valkey-search has no filter-only FT.SEARCH with SORTBY.
type Store struct {
	*dbRedis.Store
}

// NewStore creates a Valkey store via rueidis.
func NewStore(cfg dbRedis.Config) (*Store, error) {
	s, err := dbRedis.NewStore(cfg)
	if err != nil {
		return nil, err
	}
	return &Store{Store: s}, nil
}

// CreateIndex creates the index without SORTABLE, which valkey-search rejects.
func (s *Store) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	trimmed := *def
	trimmed.Fields = make([]db.IndexField, 0, len(def.Fields))
	for _, f := range def.Fields {
		f.Sortable = false
		trimmed.Fields = append(trimmed.Fields, f)
	}
	return s.Store.CreateIndex(ctx, &trimmed)
}

// SearchList scans the key prefix, filters by tags and orders by SortBy, then key.
func (s *Store) SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error) {
	if q.KeyPrefix == "" {
		return nil, errors.New("key prefix is required")
	}
	if q.Limit <= 0 {
		return nil, errors.New("limit must be positive")
	}

	keys, err := s.Scan(ctx, q.KeyPrefix+"*")
	if err != nil {
		return nil, err
	}
	if len(keys) == 0 {
		return &db.SearchResult{}, nil
	}

	hashes, err := s.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, err
	}

	entries := make([]db.SearchEntry, 0, len(keys))
	for i, h := range hashes {
		// Deleted between SCAN and HGETALL.
		if len(h) == 0 {
			continue
		}
		if !matchesTags(h, q.Tags) {
			continue
		}
		entries = append(entries, db.SearchEntry{Key: keys[i], Fields: h})
	}

	if err := sortEntries(entries, q.SortBy); err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: err}
	}

	total := len(entries)
	return &db.SearchResult{Total: total, Entries: entries[:min(q.Limit, total)]}, nil
}

func matchesTags(h map[string]string, tags []db.TagCondition) bool {
	for _, t := range tags {
		if h[t.Field] != t.Value {
			return false
		}
	}
	return true
}

func sortEntries(entries []db.SearchEntry, sortBy string) error {
	if sortBy == "" {
		sort.Slice(entries, func(i, j int) bool { return entries[i].Key < entries[j].Key })
		return nil
	}

	vals := make(map[string]float64, len(entries))
	for _, e := range entries {
		raw, ok := e.Fields[sortBy]
		if !ok {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return fmt.Errorf("key %s: %s is not numeric: %w", e.Key, sortBy, err)
		}
		vals[e.Key] = v
	}

	sort.Slice(entries, func(i, j int) bool {
		a, b := vals[entries[i].Key], vals[entries[j].Key]
		if a != b {
			return a < b
		}
		return entries[i].Key < entries[j].Key
	})
	return nil
}
