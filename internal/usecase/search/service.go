package search

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/promptsearch/internal/domain"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/request"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/result"
	"github.com/kailas-cloud/promptsearch/internal/logger"
	"github.com/kailas-cloud/promptsearch/internal/metrics"
)

// Service answers prompt searches: validate, fetch visible records,
// match, adjust scores and assemble the ranked response.
type Service struct {
	fetcher *Fetcher
	matcher Matcher
	cfg     Config
	now     func() time.Time
}

// New creates a search service with DefaultConfig.
func New(store RecordStore, matcher Matcher) *Service {
	cfg := DefaultConfig()
	return &Service{
		fetcher: NewFetcher(store, cfg.CandidateCap),
		matcher: matcher,
		cfg:     cfg,
		now:     time.Now,
	}
}

// WithConfig replaces the pipeline configuration. Zero-valued sections keep their defaults.
func (s *Service) WithConfig(cfg Config) *Service {
	def := DefaultConfig()
	if cfg.CandidateCap <= 0 {
		cfg.CandidateCap = def.CandidateCap
	}
	if cfg.Threshold <= 0 {
		cfg.Threshold = def.Threshold
	}
	if len(cfg.Weights) == 0 {
		cfg.Weights = def.Weights
	}
	if cfg.Boosts == (Boosts{}) {
		cfg.Boosts = def.Boosts
	}
	if cfg.Limits == (request.Limits{}) {
		cfg.Limits = def.Limits
	}
	s.cfg = cfg
	s.fetcher = NewFetcher(s.fetcher.store, cfg.CandidateCap)
	return s
}

// Config returns the effective configuration.
func (s *Service) Config() Config { return s.cfg }

// Search runs the full pipeline. requesterID is empty for anonymous callers.
// limit 0 selects the default; other values are clamped into [1, max].
// Errors wrap domain.ErrInvalidArgument (bad query, no store access happened)
// or domain.ErrInternal (store failure).
func (s *Service) Search(ctx context.Context, requesterID, query string, limit int) (result.Response, error) {
	start := s.now()

	req, err := request.New(query, limit, requesterID, s.cfg.Limits)
	if err != nil {
		metrics.ObserveSearch(metrics.StatusInvalidArgument, s.now().Sub(start).Seconds(), 0, 0)
		return result.Response{}, err
	}

	// the query text itself never reaches the logs
	ctx = logger.With(ctx,
		zap.Int("query_len", len(req.Query())),
		zap.Bool("authenticated", req.IsAuthenticated()),
	)
	log := logger.FromContext(ctx)

	fail := func(err error) (result.Response, error) {
		elapsed := s.now().Sub(start)
		metrics.ObserveSearch(metrics.StatusInternal, elapsed.Seconds(), 0, 0)
		log.Error("prompt search failed",
			zap.Duration("elapsed", elapsed),
			zap.Error(err),
		)
		if errors.Is(err, domain.ErrInternal) {
			return result.Response{}, err
		}
		return result.Response{}, fmt.Errorf("%w: %w", domain.ErrInternal, err)
	}

	records, err := s.fetcher.Fetch(ctx, req.RequesterID())
	if err != nil {
		return fail(err)
	}

	results := []result.Result{}
	if len(records) > 0 {
		cands := Project(records)
		matches, err := s.matcher.Match(ctx, req.Query(), cands, s.cfg.Weights, s.cfg.Threshold)
		if err != nil {
			return fail(err)
		}
		scored := s.cfg.Boosts.Adjust(req.Query(), cands, matches)
		results = assemble(records, scored, req.Limit())
	}

	elapsed := s.now().Sub(start)
	metrics.ObserveSearch(metrics.StatusOK, elapsed.Seconds(), len(records), len(results))
	log.Debug("prompt search completed",
		zap.Int("candidates", len(records)),
		zap.Int("results", len(results)),
		zap.Duration("elapsed", elapsed),
	)

	return result.Response{
		Results:  results,
		Duration: elapsed,
		Message:  summary(len(results)),
	}, nil
}
