package search

import (
	"math"
	"strings"

	"github.com/kailas-cloud/promptsearch/internal/domain/search/candidate"
	"github.com/kailas-cloud/promptsearch/internal/match"
)

// Scored is a match with its adjusted score.
type Scored struct {
	Match match.Match
	Score float64
	Exact bool
}

// Adjust re-ranks raw matches. The first applicable rule wins:
//  1. a matched field equals the query: ExactScore
//  2. the title starts with the query: PrefixScore
//  3. several fields matched: raw * MultiFieldDecay^(n-1)
//  4. raw score unchanged
//
// Comparisons ignore case and surrounding whitespace.
func (b Boosts) Adjust(query string, cands []candidate.Candidate, matches []match.Match) []Scored {
	q := strings.TrimSpace(query)
	lq := strings.ToLower(q)

	out := make([]Scored, len(matches))
	for i, m := range matches {
		c := &cands[m.Index]
		s := Scored{Match: m, Score: m.RawScore}

		switch {
		case isExact(q, c, m):
			s.Score = b.ExactScore
			s.Exact = true
		case strings.HasPrefix(strings.ToLower(strings.TrimSpace(c.Title)), lq):
			s.Score = b.PrefixScore
		case len(m.Fields) > 1:
			s.Score = m.RawScore * math.Pow(b.MultiFieldDecay, float64(len(m.Fields)-1))
		}
		out[i] = s
	}
	return out
}

// isExact checks the matched fields' full values against the query,
// independently of the matcher's own notion of an exact hit.
func isExact(query string, c *candidate.Candidate, m match.Match) bool {
	for _, f := range m.Fields {
		for _, v := range c.Values(f) {
			if strings.EqualFold(strings.TrimSpace(v), query) {
				return true
			}
		}
	}
	return false
}
