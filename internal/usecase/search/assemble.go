package search

import (
	"fmt"
	"sort"

	"github.com/kailas-cloud/promptsearch/internal/domain/prompt"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/result"
)

// assemble sorts ascending by adjusted score, keeping candidate order on ties,
// and truncates to limit. records must be index-aligned with the candidates.
func assemble(records []prompt.Record, scored []Scored, limit int) []result.Result {
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score < scored[j].Score
	})
	if len(scored) > limit {
		scored = scored[:limit]
	}

	results := make([]result.Result, len(scored))
	for i, s := range scored {
		results[i] = result.New(records[s.Match.Index], s.Score, s.Match.Fields, s.Exact)
	}
	return results
}

func summary(n int) string {
	switch n {
	case 0:
		return "No matching prompts found"
	case 1:
		return "Found 1 matching prompt"
	default:
		return fmt.Sprintf("Found %d matching prompts", n)
	}
}
