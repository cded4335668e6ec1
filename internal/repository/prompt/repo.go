package prompt

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/kailas-cloud/promptsearch/internal/db"
	"github.com/kailas-cloud/promptsearch/internal/domain"
	domprompt "github.com/kailas-cloud/promptsearch/internal/domain/prompt"
)

// store is the consumer interface for prompts (ISP).
type store interface {
	HSetMulti(ctx context.Context, items []db.HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchList(ctx context.Context, q *db.ListQuery) (*db.SearchResult, error)
}

// Repo stores prompts as hashes and lists them through an FT index.
// Implements usecase/search.RecordStore and usecase/prompt.Repository.
type Repo struct {
	store  store
	prefix string
}

// New creates a prompt repository. An empty keyPrefix selects DefaultKeyPrefix.
func New(s store, keyPrefix string) *Repo {
	if keyPrefix == "" {
		keyPrefix = DefaultKeyPrefix
	}
	return &Repo{store: s, prefix: keyPrefix}
}

// EnsureIndex creates the prompt index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	err := r.store.CreateIndex(ctx, r.buildIndex())
	if err != nil && !errors.Is(err, db.ErrIndexExists) {
		return fmt.Errorf("create index %s: %w", r.indexName(), err)
	}
	return nil
}

// Reindex drops the prompt index and builds it again from the stored hashes.
// Needed after the index definition changes; stored prompts are kept.
func (r *Repo) Reindex(ctx context.Context) error {
	err := r.store.DropIndex(ctx, r.indexName())
	if err != nil && !errors.Is(err, db.ErrIndexNotFound) {
		return fmt.Errorf("drop index %s: %w", r.indexName(), err)
	}
	if err := r.store.CreateIndex(ctx, r.buildIndex()); err != nil {
		return fmt.Errorf("create index %s: %w", r.indexName(), err)
	}
	return nil
}

// IndexReady reports an error when the prompt index is missing.
func (r *Repo) IndexReady(ctx context.Context) error {
	ok, err := r.store.IndexExists(ctx, r.indexName())
	if err != nil {
		return fmt.Errorf("index info %s: %w", r.indexName(), err)
	}
	if !ok {
		return fmt.Errorf("index %s: %w", r.indexName(), db.ErrIndexNotFound)
	}
	return nil
}

// Fetch lists up to limit records matching f, oldest first.
func (r *Repo) Fetch(ctx context.Context, f domprompt.Filter, limit int) ([]domprompt.Record, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("limit must be positive, got %d", limit)
	}

	tags := []db.TagCondition{{Field: fieldIsPrivate, Value: strconv.FormatBool(f.IsPrivate)}}
	if f.OwnerID != "" {
		tags = append(tags, db.TagCondition{Field: fieldOwnerID, Value: f.OwnerID})
	}

	res, err := r.store.SearchList(ctx, &db.ListQuery{
		IndexName: r.indexName(),
		KeyPrefix: r.recordPrefix(),
		Tags:      tags,
		SortBy:    fieldCreatedAt,
		Limit:     limit,
	})
	if err != nil {
		return nil, fmt.Errorf("search list: %w", err)
	}
	if res == nil || len(res.Entries) == 0 {
		return []domprompt.Record{}, nil
	}

	records := make([]domprompt.Record, 0, len(res.Entries))
	for _, e := range res.Entries {
		id := strings.TrimPrefix(e.Key, r.recordPrefix())
		rec, err := parseHashFields(id, e.Fields)
		if err != nil {
			return nil, fmt.Errorf("parse prompt %s: %w", id, err)
		}
		records = append(records, rec)
	}

	// SORTBY leaves equal timestamps unordered.
	sort.SliceStable(records, func(i, j int) bool {
		if records[i].CreatedAt() != records[j].CreatedAt() {
			return records[i].CreatedAt() < records[j].CreatedAt()
		}
		return records[i].ID() < records[j].ID()
	})

	return records, nil
}

// Put upserts records in a single pipelined round-trip.
func (r *Repo) Put(ctx context.Context, records ...domprompt.Record) error {
	if len(records) == 0 {
		return nil
	}

	items := make([]db.HashSetItem, len(records))
	for i := range records {
		fields, err := buildHashFields(&records[i])
		if err != nil {
			return fmt.Errorf("prompt %s: %w", records[i].ID(), err)
		}
		items[i] = db.HashSetItem{Key: r.recordKey(records[i].ID()), Fields: fields}
	}

	if err := r.store.HSetMulti(ctx, items); err != nil {
		return fmt.Errorf("hset multi: %w", err)
	}
	return nil
}

// Get returns a prompt by ID.
func (r *Repo) Get(ctx context.Context, id string) (domprompt.Record, error) {
	key := r.recordKey(id)
	m, err := r.store.HGetAll(ctx, key)
	if err != nil {
		return domprompt.Record{}, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(m) == 0 {
		return domprompt.Record{}, domain.ErrPromptNotFound
	}
	return parseHashFields(id, m)
}

// Delete removes a prompt.
func (r *Repo) Delete(ctx context.Context, id string) error {
	key := r.recordKey(id)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}
