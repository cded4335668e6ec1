package request

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/kailas-cloud/promptsearch/internal/domain"
)

// Search parameter limits.
const (
	// MaxQueryLength is the maximum allowed search query length in bytes.
	MaxQueryLength = 4096
	DefaultLimit   = 20
	MaxLimit       = 100
)

// Limits bounds request parameters.
type Limits struct {
	DefaultLimit   int
	MaxLimit       int
	MaxQueryLength int
}

// DefaultLimits returns the limits used when nothing is configured.
func DefaultLimits() Limits {
	return Limits{DefaultLimit: DefaultLimit, MaxLimit: MaxLimit, MaxQueryLength: MaxQueryLength}
}

// Request is a validated search query.
type Request struct {
	query       string
	limit       int
	requesterID string
}

// New validates and normalizes search parameters.
// The query is trimmed and must not be empty; the limit is never rejected,
// only corrected (see ClampLimit). An empty requesterID is an anonymous caller.
func New(query string, limit int, requesterID string, l Limits) (Request, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return Request{}, fmt.Errorf("%w: query is required", domain.ErrInvalidArgument)
	}
	if l.MaxQueryLength > 0 && len(q) > l.MaxQueryLength {
		return Request{}, fmt.Errorf("%w: query too long (max %d chars)", domain.ErrInvalidArgument, l.MaxQueryLength)
	}

	return Request{
		query:       q,
		limit:       ClampLimit(limit, l),
		requesterID: requesterID,
	}, nil
}

// ClampLimit replaces zero with the default and clamps everything else into [1, max].
func ClampLimit(limit int, l Limits) int {
	def, maxLimit := l.DefaultLimit, l.MaxLimit
	if def <= 0 {
		def = DefaultLimit
	}
	if maxLimit <= 0 {
		maxLimit = MaxLimit
	}
	switch {
	case limit == 0:
		limit = def
	case limit < 1:
		limit = 1
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return limit
}

// QueryFromAny extracts the query from a loosely typed payload value.
func QueryFromAny(v any) (string, error) {
	switch q := v.(type) {
	case nil:
		return "", fmt.Errorf("%w: query is required", domain.ErrInvalidArgument)
	case string:
		return q, nil
	default:
		return "", fmt.Errorf("%w: query must be a string", domain.ErrInvalidArgument)
	}
}

// LimitFromAny converts a loosely typed limit into an int accepted by ClampLimit.
// Missing and non-numeric values (strings, booleans, NaN, infinities) become 0,
// which selects the default. Fractions are truncated toward zero.
func LimitFromAny(v any) int {
	var f float64
	switch n := v.(type) {
	case int:
		return n
	case int32:
		return int(n)
	case int64:
		f = float64(n)
	case float32:
		f = float64(n)
	case float64:
		f = n
	case json.Number:
		parsed, err := n.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}

	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	f = math.Trunc(f)
	switch {
	case f > math.MaxInt32:
		return math.MaxInt32
	case f < math.MinInt32:
		return math.MinInt32
	}
	return int(f)
}

// Query returns the trimmed search text.
func (r *Request) Query() string { return r.query }

// Limit returns the maximum results to return.
func (r *Request) Limit() int { return r.limit }

// RequesterID returns the caller identity, empty for anonymous callers.
func (r *Request) RequesterID() string { return r.requesterID }

// IsAuthenticated reports whether the caller has an identity.
func (r *Request) IsAuthenticated() bool { return r.requesterID != "" }
