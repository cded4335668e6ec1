package search

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/kailas-cloud/promptsearch/internal/domain/prompt"
	"github.com/kailas-cloud/promptsearch/internal/logger"
)

var errMalformedResponse = errors.New("malformed store response")

// Fetcher retrieves the records a requester may search: every public record
// plus, for an authenticated requester, their own private records.
// Privacy is enforced here so the matcher never sees a record it must not.
type Fetcher struct {
	store RecordStore
	cap   int
}

// NewFetcher creates a Fetcher. A non-positive cap selects DefaultCandidateCap.
func NewFetcher(store RecordStore, limit int) *Fetcher {
	if limit <= 0 {
		limit = DefaultCandidateCap
	}
	return &Fetcher{store: store, cap: limit}
}

// Fetch issues one store read for anonymous callers and two concurrent reads
// otherwise. Either every read succeeds or Fetch fails; public records come
// first, then private ones, duplicates keep their first occurrence.
func (f *Fetcher) Fetch(ctx context.Context, requesterID string) ([]prompt.Record, error) {
	var public, private []prompt.Record

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		recs, err := f.fetch(gctx, prompt.Public(), "public")
		public = recs
		return err
	})
	if requesterID != "" {
		g.Go(func() error {
			recs, err := f.fetch(gctx, prompt.PrivateOf(requesterID), "private")
			private = recs
			return err
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if len(private) == 0 {
		return public, nil
	}
	return union(public, private), nil
}

// fetch reads one visibility class and verifies every record against the filter.
// The label keeps owner identifiers out of error messages.
func (f *Fetcher) fetch(ctx context.Context, flt prompt.Filter, label string) ([]prompt.Record, error) {
	recs, err := f.store.Fetch(ctx, flt, f.cap)
	if err != nil {
		return nil, fmt.Errorf("fetch %s records: %w", label, err)
	}
	if len(recs) > f.cap {
		recs = recs[:f.cap]
	}
	for i := range recs {
		if recs[i].ID() == "" {
			return nil, fmt.Errorf("fetch %s records: %w: record without id", label, errMalformedResponse)
		}
		if !flt.Matches(&recs[i]) {
			return nil, fmt.Errorf("fetch %s records: %w: record %d violates filter", label, errMalformedResponse, i)
		}
	}
	logger.FromContext(ctx).Debug("candidates fetched",
		zap.String("visibility", label),
		zap.Int("count", len(recs)),
	)
	return recs, nil
}

func union(a, b []prompt.Record) []prompt.Record {
	out := make([]prompt.Record, 0, len(a)+len(b))
	seen := make(map[string]struct{}, len(a)+len(b))
	for _, set := range [][]prompt.Record{a, b} {
		for _, r := range set {
			if _, dup := seen[r.ID()]; dup {
				continue
			}
			seen[r.ID()] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
