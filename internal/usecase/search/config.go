package search

import (
	"fmt"

	"github.com/kailas-cloud/promptsearch/internal/domain/search/field"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/request"
	"github.com/kailas-cloud/promptsearch/internal/match"
)

// DefaultCandidateCap bounds each visibility class fetched per request.
// Recall beyond the cap is traded for bounded request cost.
const DefaultCandidateCap = 1000

// Boosts are the score overrides applied after fuzzy matching. Lower is better.
type Boosts struct {
	// ExactScore is assigned when a matched field equals the query.
	ExactScore float64
	// PrefixScore is assigned when the title starts with the query.
	PrefixScore float64
	// MultiFieldDecay multiplies the raw score once per extra matched field.
	MultiFieldDecay float64
}

// DefaultBoosts returns 0.001 / 0.01 / 0.95.
func DefaultBoosts() Boosts {
	return Boosts{ExactScore: 0.001, PrefixScore: 0.01, MultiFieldDecay: 0.95}
}

// Validate checks that exact < prefix and the decay improves scores.
func (b Boosts) Validate() error {
	if b.ExactScore <= 0 {
		return fmt.Errorf("exact_score must be positive, got %g", b.ExactScore)
	}
	if b.PrefixScore <= b.ExactScore {
		return fmt.Errorf("prefix_score (%g) must be greater than exact_score (%g)", b.PrefixScore, b.ExactScore)
	}
	if b.MultiFieldDecay <= 0 || b.MultiFieldDecay > 1 {
		return fmt.Errorf("multi_field_decay must be in (0,1], got %g", b.MultiFieldDecay)
	}
	return nil
}

// Config tunes the search pipeline.
type Config struct {
	CandidateCap int
	Threshold    float64
	Weights      field.Weights
	Boosts       Boosts
	Limits       request.Limits
}

// DefaultConfig returns the documented defaults.
func DefaultConfig() Config {
	return Config{
		CandidateCap: DefaultCandidateCap,
		Threshold:    match.DefaultThreshold,
		Weights:      field.DefaultWeights(),
		Boosts:       DefaultBoosts(),
		Limits:       request.DefaultLimits(),
	}
}

// Validate checks the configuration for correctness.
func (c Config) Validate() error {
	if c.CandidateCap <= 0 {
		return fmt.Errorf("candidate_cap must be positive, got %d", c.CandidateCap)
	}
	if c.Threshold <= 0 || c.Threshold > 1 {
		return fmt.Errorf("threshold must be in (0,1], got %g", c.Threshold)
	}
	if err := c.Weights.Validate(); err != nil {
		return fmt.Errorf("weights: %w", err)
	}
	if err := c.Boosts.Validate(); err != nil {
		return fmt.Errorf("boosts: %w", err)
	}
	return nil
}
