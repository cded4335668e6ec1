package prompt

import (
	"context"

	domprompt "github.com/kailas-cloud/promptsearch/internal/domain/prompt"
)

// Repository persists prompt records.
type Repository interface {
	Put(ctx context.Context, records ...domprompt.Record) error
	Get(ctx context.Context, id string) (domprompt.Record, error)
	Delete(ctx context.Context, id string) error
}
