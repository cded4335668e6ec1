package promptsearch

import "time"

// Prompt is a stored prompt. An empty ID is generated on Put; a zero
// CreatedAt is set to the ingestion time.
type Prompt struct {
	ID          string
	UserID      string
	Title       string
	Description string
	Text        string
	Category    string
	Tags        []string
	IsPrivate   bool
	CreatedAt   time.Time
}

// Result is one ranked prompt. Lower scores rank higher.
type Result struct {
	Prompt        Prompt
	Score         float64
	FieldsMatched []string
	IsExactMatch  bool
}

// Response is the outcome of a search.
type Response struct {
	Results  []Result
	Total    int
	Duration time.Duration
	Message  string
}

// SearchConfig tunes the ranking pipeline. Zero fields keep their defaults.
type SearchConfig struct {
	CandidateCap    int
	DefaultLimit    int
	MaxLimit        int
	MaxQueryLength  int
	Threshold       float64
	MinRawScore     float64
	Weights         map[string]float64 // title, description, body, category, tags
	ExactScore      float64
	PrefixScore     float64
	MultiFieldDecay float64
}

// HealthStatus represents the aggregated system health.
type HealthStatus struct {
	Status string            // "ok", "degraded", "error"
	Checks map[string]string // component → "ok"/"error"
}
