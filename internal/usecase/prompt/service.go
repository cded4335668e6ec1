package prompt

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/promptsearch/internal/domain"
	domprompt "github.com/kailas-cloud/promptsearch/internal/domain/prompt"
	"github.com/kailas-cloud/promptsearch/internal/logger"
)

// DefaultBatchSize bounds the records written per store round-trip.
const DefaultBatchSize = 500

// Input describes a prompt to ingest. An empty ID gets a generated UUID;
// a zero CreatedAt is set to the ingestion time.
type Input struct {
	ID        string
	OwnerID   string
	Fields    domprompt.Fields
	Private   bool
	CreatedAt int64 // unix milliseconds
}

// Service validates and stores prompts.
type Service struct {
	repo      Repository
	batchSize int
	now       func() time.Time
	newID     func() string
}

// New creates an ingestion service.
func New(repo Repository) *Service {
	return &Service{
		repo:      repo,
		batchSize: DefaultBatchSize,
		now:       time.Now,
		newID:     uuid.NewString,
	}
}

// WithBatchSize overrides the write batch size.
func (s *Service) WithBatchSize(n int) *Service {
	if n > 0 {
		s.batchSize = n
	}
	return s
}

// Create validates and stores a single prompt.
func (s *Service) Create(ctx context.Context, in Input) (domprompt.Record, error) {
	recs, err := s.Import(ctx, []Input{in})
	if err != nil {
		return domprompt.Record{}, err
	}
	return recs[0], nil
}

// Import validates every input before writing any of them, then stores the
// records in batches. Validation errors wrap domain.ErrInvalidArgument.
func (s *Service) Import(ctx context.Context, inputs []Input) ([]domprompt.Record, error) {
	now := s.now().UnixMilli()

	records := make([]domprompt.Record, 0, len(inputs))
	seen := make(map[string]int, len(inputs))
	for i, in := range inputs {
		id := in.ID
		if id == "" {
			id = s.newID()
		}
		createdAt := in.CreatedAt
		if createdAt == 0 {
			createdAt = now
		}

		rec, err := domprompt.New(id, in.OwnerID, in.Fields, in.Private, createdAt)
		if err != nil {
			return nil, fmt.Errorf("%w: prompt %d: %w", domain.ErrInvalidArgument, i, err)
		}
		if j, dup := seen[id]; dup {
			return nil, fmt.Errorf("%w: prompt %d: duplicate id %q (first at %d)", domain.ErrInvalidArgument, i, id, j)
		}
		seen[id] = i
		records = append(records, rec)
	}

	for start := 0; start < len(records); start += s.batchSize {
		end := min(start+s.batchSize, len(records))
		if err := s.repo.Put(ctx, records[start:end]...); err != nil {
			return nil, fmt.Errorf("put prompts %d-%d: %w", start, end-1, err)
		}
	}

	logger.FromContext(ctx).Debug("prompts stored", zap.Int("count", len(records)))
	return records, nil
}

// Get returns a stored prompt.
func (s *Service) Get(ctx context.Context, id string) (domprompt.Record, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return domprompt.Record{}, fmt.Errorf("get prompt: %w", err)
	}
	return rec, nil
}

// Delete removes a stored prompt.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete prompt: %w", err)
	}
	return nil
}
