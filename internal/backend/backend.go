// Package backend opens the configured record store and exposes it through
// the ports the search, ingestion and health use cases depend on.
package backend

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/promptsearch/internal/config"
	"github.com/kailas-cloud/promptsearch/internal/db"
	dbRedis "github.com/kailas-cloud/promptsearch/internal/db/redis"
	"github.com/kailas-cloud/promptsearch/internal/db/sqlite"
	dbValkey "github.com/kailas-cloud/promptsearch/internal/db/valkey"
	domprompt "github.com/kailas-cloud/promptsearch/internal/domain/prompt"
	"github.com/kailas-cloud/promptsearch/internal/domain/search/request"
	"github.com/kailas-cloud/promptsearch/internal/match"
	"github.com/kailas-cloud/promptsearch/internal/repository/memory"
	promptrepo "github.com/kailas-cloud/promptsearch/internal/repository/prompt"
	"github.com/kailas-cloud/promptsearch/internal/repository/promptsql"
	healthuc "github.com/kailas-cloud/promptsearch/internal/usecase/health"
	promptuc "github.com/kailas-cloud/promptsearch/internal/usecase/prompt"
	searchuc "github.com/kailas-cloud/promptsearch/internal/usecase/search"
)

// Records is a prompt store that serves both candidate fetches and ingestion.
type Records interface {
	Fetch(ctx context.Context, f domprompt.Filter, limit int) ([]domprompt.Record, error)
	Put(ctx context.Context, records ...domprompt.Record) error
	Get(ctx context.Context, id string) (domprompt.Record, error)
	Delete(ctx context.Context, id string) error
}

// Compile-time checks: every store serves both use cases.
var (
	_ Records = (*promptrepo.Repo)(nil)
	_ Records = (*promptsql.Repo)(nil)
	_ Records = (*memory.Store)(nil)

	_ searchuc.RecordStore = Records(nil)
	_ promptuc.Repository  = Records(nil)
)

// Reindexer rebuilds a store's search index in place.
type Reindexer interface {
	Reindex(ctx context.Context) error
}

// Backend bundles an opened store.
type Backend struct {
	Records Records
	DB      healthuc.DBPinger
	// Index and Reindex are nil for stores without a search index.
	Index   healthuc.IndexChecker
	Reindex Reindexer

	close func()
}

// Close releases the underlying connection.
func (b *Backend) Close() {
	if b.close != nil {
		b.close()
	}
}

// Open connects to the store selected by cfg.Database, waits for it to
// become ready and makes sure the prompt index exists.
func Open(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Backend, error) {
	dbCfg := cfg.Database
	switch dbCfg.Driver {
	case config.DriverValkey, config.DriverRedis:
		return openIndexed(ctx, cfg, logger)
	case config.DriverSQLite:
		sq, err := sqlite.Open(ctx, dbCfg.Path)
		if err != nil {
			return nil, fmt.Errorf("open sqlite store: %w", err)
		}
		logger.Info("Opened sqlite store", zap.String("path", dbCfg.Path))
		return &Backend{
			Records: promptsql.New(sq.SQL()),
			DB:      sq,
			close:   sq.Close,
		}, nil
	case config.DriverMemory:
		logger.Warn("Using in-memory store, prompts are lost on restart")
		m := memory.New()
		return &Backend{Records: m, DB: m}, nil
	default:
		return nil, fmt.Errorf("unknown database driver %q", dbCfg.Driver)
	}
}

func openIndexed(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Backend, error) {
	dbCfg := cfg.Database
	connCfg := dbRedis.Config{Addrs: dbCfg.Addrs, Password: dbCfg.Password}

	var (
		store db.Store
		err   error
	)
	if dbCfg.Driver == config.DriverValkey {
		store, err = dbValkey.NewStore(connCfg)
	} else {
		store, err = dbRedis.NewStore(connCfg)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", dbCfg.Driver, err)
	}

	timeout := time.Duration(dbCfg.ReadinessTimeout) * time.Second
	if err := store.WaitForReady(ctx, timeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}

	repo := promptrepo.New(store, cfg.Storage.KeyPrefix)
	if err := repo.EnsureIndex(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("ensure prompt index: %w", err)
	}
	logger.Info("Connected to database",
		zap.String("driver", dbCfg.Driver),
		zap.Strings("addrs", dbCfg.Addrs),
		zap.String("key_prefix", cfg.Storage.KeyPrefix),
	)

	return &Backend{
		Records: repo,
		DB:      store,
		Index:   repo,
		Reindex: repo,
		close:   store.Close,
	}, nil
}

// SearchConfig converts the search section into the pipeline configuration.
func SearchConfig(s config.SearchConfig) (searchuc.Config, error) {
	weights, err := s.FieldWeights()
	if err != nil {
		return searchuc.Config{}, err
	}
	out := searchuc.Config{
		CandidateCap: s.CandidateCap,
		Threshold:    s.Threshold,
		Weights:      weights,
		Boosts: searchuc.Boosts{
			ExactScore:      s.Boosts.ExactScore,
			PrefixScore:     s.Boosts.PrefixScore,
			MultiFieldDecay: s.Boosts.MultiFieldDecay,
		},
		Limits: request.Limits{
			DefaultLimit:   s.DefaultLimit,
			MaxLimit:       s.MaxLimit,
			MaxQueryLength: s.MaxQueryLength,
		},
	}
	return out, out.Validate()
}

// NewSearch builds the search service over b with the configured pipeline.
func NewSearch(b *Backend, s config.SearchConfig) (*searchuc.Service, error) {
	sc, err := SearchConfig(s)
	if err != nil {
		return nil, fmt.Errorf("search config: %w", err)
	}
	return searchuc.New(b.Records, match.NewApproximate(s.MinRawScore)).WithConfig(sc), nil
}
