package promptsearch

import (
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kailas-cloud/promptsearch/internal/config"
)

// Option configures the Client.
type Option interface {
	apply(*clientConfig)
}

// optionFunc adapts a function to the Option interface.
type optionFunc func(*clientConfig)

func (f optionFunc) apply(c *clientConfig) { f(c) }

type clientConfig struct {
	driver    string
	addrs     []string
	password  string
	path      string
	keyPrefix string

	search SearchConfig

	logger     *slog.Logger
	metricsReg prometheus.Registerer
}

// WithValkey stores prompts in a Valkey instance with valkey-search.
func WithValkey(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverValkey
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithRedis stores prompts in a Redis 8+ instance with the query engine.
func WithRedis(addr, password string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverRedis
		c.addrs = []string{addr}
		c.password = password
	})
}

// WithSQLite stores prompts in a SQLite file. ":memory:" keeps them in a
// private in-memory database.
func WithSQLite(path string) Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverSQLite
		c.path = path
	})
}

// WithMemory keeps prompts in process memory. Nothing is persisted.
func WithMemory() Option {
	return optionFunc(func(c *clientConfig) {
		c.driver = config.DriverMemory
	})
}

// WithKeyPrefix sets the key namespace for Valkey/Redis. Default: "promptsearch:".
func WithKeyPrefix(prefix string) Option {
	return optionFunc(func(c *clientConfig) {
		c.keyPrefix = prefix
	})
}

// WithSearchConfig tunes the ranking pipeline.
func WithSearchConfig(sc SearchConfig) Option {
	return optionFunc(func(c *clientConfig) {
		c.search = sc
	})
}

// WithLogger enables structured logging for SDK operations.
// Pass nil to disable (default). Uses standard library slog.
func WithLogger(l *slog.Logger) Option {
	return optionFunc(func(c *clientConfig) {
		c.logger = l
	})
}

// WithPrometheus registers SDK metrics (operation counts and durations)
// on the given registerer. Pass nil to disable (default).
func WithPrometheus(reg prometheus.Registerer) Option {
	return optionFunc(func(c *clientConfig) {
		c.metricsReg = reg
	})
}

// toConfig maps the options onto the server configuration so both share
// defaults and validation.
func (c *clientConfig) toConfig() (config.Config, error) {
	cfg := config.Config{
		HTTP: config.HTTPConfig{Port: 1},
		Database: config.DatabaseConfig{
			Driver:   c.driver,
			Addrs:    c.addrs,
			Password: c.password,
			Path:     c.path,
		},
		Storage: config.StorageConfig{KeyPrefix: c.keyPrefix},
		Search: config.SearchConfig{
			CandidateCap:   c.search.CandidateCap,
			DefaultLimit:   c.search.DefaultLimit,
			MaxLimit:       c.search.MaxLimit,
			MaxQueryLength: c.search.MaxQueryLength,
			Threshold:      c.search.Threshold,
			MinRawScore:    c.search.MinRawScore,
			Weights:        c.search.Weights,
			Boosts: config.BoostsConfig{
				ExactScore:      c.search.ExactScore,
				PrefixScore:     c.search.PrefixScore,
				MultiFieldDecay: c.search.MultiFieldDecay,
			},
		},
	}
	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}
