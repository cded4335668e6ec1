package promptsearch

import "github.com/kailas-cloud/promptsearch/internal/domain"

// Sentinel errors re-exported from the domain layer.
// Use errors.Is() to check.
var (
	ErrInvalidArgument = domain.ErrInvalidArgument
	ErrInternal        = domain.ErrInternal
	ErrNotFound        = domain.ErrPromptNotFound
)
