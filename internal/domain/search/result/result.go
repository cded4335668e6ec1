package result

import (
	"time"

	"github.com/kailas-cloud/promptsearch/internal/domain/prompt"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/field"
)

// Result is a single ranked search hit.
type Result struct {
	record  prompt.Record
	score   float64
	matched field.Set
	exact   bool
}

// New creates a search result.
func New(rec prompt.Record, score float64, matched field.Set, exact bool) Result {
	return Result{record: rec, score: score, matched: matched, exact: exact}
}

// ID returns the prompt identifier.
func (r *Result) ID() string { return r.record.ID() }

// Record returns the matched prompt.
func (r *Result) Record() prompt.Record { return r.record }

// Score returns the adjusted score (lower is better).
func (r *Result) Score() float64 { return r.score }

// MatchedFields returns the fields that contributed to the match.
func (r *Result) MatchedFields() field.Set { return r.matched }

// IsExactMatch reports whether a matched field equals the query.
func (r *Result) IsExactMatch() bool { return r.exact }

// Response is the outcome of one search request.
type Response struct {
	Results  []Result
	Duration time.Duration
	Message  string
}

// Total returns the number of returned results.
func (r *Response) Total() int { return len(r.Results) }

// DurationMs returns the request duration in milliseconds.
func (r *Response) DurationMs() int64 { return r.Duration.Milliseconds() }
