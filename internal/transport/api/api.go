// Package api holds the HTTP wire types and route bindings of the prompt search API.
package api

// ErrorResponseCode is a machine-readable error category.
type ErrorResponseCode string

// Defines values for ErrorResponseCode.
const (
	ErrorResponseCodeBadRequest      ErrorResponseCode = "bad_request"
	ErrorResponseCodeInvalidArgument ErrorResponseCode = "invalid_argument"
	ErrorResponseCodeInternalError   ErrorResponseCode = "internal"
	ErrorResponseCodeUnauthorized    ErrorResponseCode = "unauthorized"
	ErrorResponseCodeNotFound        ErrorResponseCode = "not_found"
)

// ErrorResponse is the body of every non-2xx response.
type ErrorResponse struct {
	Code    ErrorResponseCode `json:"code"`
	Message string            `json:"message"`
}

// SearchRequest is the POST search body. Both fields are loosely typed:
// a non-string query is rejected, a non-numeric limit selects the default.
type SearchRequest struct {
	Query any `json:"query"`
	Limit any `json:"limit,omitempty"`
}

// SearchPromptsParams defines parameters for the GET search route.
type SearchPromptsParams struct {
	Q     *string `form:"q,omitempty" json:"q,omitempty"`
	Limit *string `form:"limit,omitempty" json:"limit,omitempty"`
}

// SearchResultItem is one ranked prompt.
type SearchResultItem struct {
	Id            string   `json:"id"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	Text          string   `json:"text"`
	Category      string   `json:"category"`
	Tags          []string `json:"tags"`
	IsPrivate     bool     `json:"isPrivate"`
	UserId        string   `json:"userId"`
	CreatedAt     int64    `json:"createdAt"`
	Score         float64  `json:"score"`
	FieldsMatched []string `json:"fieldsMatched"`
	IsExactMatch  bool     `json:"isExactMatch"`
	MatchedIn     []string `json:"matchedIn"`
}

// SearchResponse is the search result envelope.
type SearchResponse struct {
	Results    []SearchResultItem `json:"results"`
	Total      int                `json:"total"`
	DurationMs int64              `json:"durationMs"`
	Message    string             `json:"message"`
}

// HealthResponseStatus is the overall service status.
type HealthResponseStatus string

// HealthResponseChecks is the status of a single dependency.
type HealthResponseChecks string

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status HealthResponseStatus            `json:"status"`
	Checks map[string]HealthResponseChecks `json:"checks"`
}
