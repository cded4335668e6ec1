package db

// TagCondition is an exact-match condition on a TAG field.
type TagCondition struct {
	Field string
	Value string
}

// ListQuery is the input for a filtered, ordered listing.
type ListQuery struct {
	IndexName string
	// KeyPrefix is the record key prefix covered by the index.
	// Backends without filter-only FT.SEARCH scan it instead.
	KeyPrefix string
	// Tags are ANDed together. No tags selects every record.
	Tags []TagCondition
	// SortBy names a NUMERIC SORTABLE field, ascending; ties are broken by key.
	SortBy string
	Limit  int
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single record hit from a listing.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
