package match

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/promptsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/field"
)

// DefaultThreshold accepts roughly 40% character-level deviation.
const DefaultThreshold = 0.4

// DefaultMinRawScore is the best raw score a candidate can get. Keeping it well
// above the exact and prefix sentinels keeps boosted candidates ahead.
const DefaultMinRawScore = 0.05

// Match is a candidate accepted by a matcher.
type Match struct {
	// Index is the candidate position in the matcher input.
	Index    int
	ID       string
	RawScore float64
	// Fields lists the matched fields in weight-table order.
	Fields field.Set
	// Quality is the normalized edit distance per matched field (0 = exact substring).
	Quality map[field.Name]float64
}

// Approximate is a typo-tolerant, field-weighted substring matcher.
//
// For every field it computes q = e/m, where m is the query length in runes and
// e the smallest edit distance between the query and any substring of the
// field. A field matches when q <= threshold. The raw score is
//
//	relevance = sum(w_f * (1 - q_f)) / sum(w_all)   over matched fields
//	raw       = minRaw + (1 - minRaw) * (1 - relevance)
//
// so it lies in [minRaw, 1] and lower is better.
type Approximate struct {
	minRawScore float64
}

// NewApproximate creates a matcher. minRawScore outside [0,1) falls back to DefaultMinRawScore.
func NewApproximate(minRawScore float64) *Approximate {
	if minRawScore < 0 || minRawScore >= 1 || math.IsNaN(minRawScore) {
		minRawScore = DefaultMinRawScore
	}
	return &Approximate{minRawScore: minRawScore}
}

// Match scores every candidate and returns the accepted ones in input order.
// The context is checked between candidates; a cancelled context aborts
// scoring with its error.
func (a *Approximate) Match(
	ctx context.Context, query string, cands []candidate.Candidate, weights field.Weights, threshold float64,
) ([]Match, error) {
	runes := []rune(strings.ToLower(strings.TrimSpace(query)))
	if len(runes) == 0 || len(cands) == 0 || len(weights) == 0 {
		return nil, nil
	}
	if threshold <= 0 || threshold > 1 {
		threshold = DefaultThreshold
	}
	total := weights.Total()
	pat := compile(runes)
	lowered := string(runes)
	// q <= threshold  <=>  e <= k
	k := int(math.Floor(threshold*float64(len(runes)) + 1e-9))

	var out []Match
	for i := range cands {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("match aborted after %d of %d candidates: %w", i, len(cands), err)
		}
		c := &cands[i]

		var (
			relevance float64
			matched   field.Set
			quality   map[field.Name]float64
		)
		for _, fw := range weights {
			q, ok := fieldQuality(pat, lowered, k, c.Values(fw.Field))
			if !ok || q > threshold {
				continue
			}
			if quality == nil {
				quality = make(map[field.Name]float64, len(weights))
			}
			matched = append(matched, fw.Field)
			quality[fw.Field] = q
			relevance += fw.Weight * (1 - q)
		}
		if len(matched) == 0 {
			continue
		}

		relevance /= total
		raw := a.minRawScore + (1-a.minRawScore)*(1-relevance)
		out = append(out, Match{
			Index:    i,
			ID:       c.ID,
			RawScore: min(max(raw, a.minRawScore), 1),
			Fields:   matched,
			Quality:  quality,
		})
	}
	return out, nil
}

// fieldQuality returns the best normalized distance over the field values.
// ok is false when every value is empty. Distances above k are only known to
// exceed k.
func fieldQuality(pat *pattern, lowered string, k int, values []string) (float64, bool) {
	best := math.Inf(1)
	for _, v := range values {
		if v == "" {
			continue
		}
		text := strings.ToLower(v)
		if strings.Contains(text, lowered) {
			return 0, true
		}
		d := pat.distance(text, k)
		if q := float64(d) / float64(pat.size); q < best {
			best = q
		}
	}
	if math.IsInf(best, 1) {
		return 0, false
	}
	return best, true
}
