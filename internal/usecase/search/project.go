package search

import (
	"slices"

	"github.com/kailas-cloud/promptsearch/internal/domain/prompt"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/candidate"
)

// Project reduces records to their searchable fields. The i-th candidate
// always corresponds to the i-th record. Source records are not modified.
func Project(records []prompt.Record) []candidate.Candidate {
	cands := make([]candidate.Candidate, len(records))
	for i := range records {
		r := &records[i]
		tags := slices.Clone(r.Tags())
		if tags == nil {
			tags = []string{}
		}
		cands[i] = candidate.Candidate{
			ID:          r.ID(),
			Title:       r.Title(),
			Description: r.Description(),
			Body:        r.Body(),
			Category:    r.Category(),
			Tags:        tags,
		}
	}
	return cands
}
