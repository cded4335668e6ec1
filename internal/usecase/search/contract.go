package search

import (
	"context"

	"github.com/kailas-cloud/promptsearch/internal/domain/prompt"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/field"
	"github.com/kailas-cloud/promptsearch/internal/match"
)

// RecordStore is the queryable prompt store. Fetch returns at most limit
// records satisfying the equality filter; failures are errors, never partial results.
type RecordStore interface {
	Fetch(ctx context.Context, f prompt.Filter, limit int) ([]prompt.Record, error)
}

// Matcher performs approximate multi-field matching. It stops with the
// context's error once ctx is done.
type Matcher interface {
	Match(
		ctx context.Context, query string, cands []candidate.Candidate, weights field.Weights, threshold float64,
	) ([]match.Match, error)
}
