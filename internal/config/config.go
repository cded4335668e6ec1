package config

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/promptsearch/internal/domain/search/field"
)

// Supported database drivers.
const (
	DriverValkey = "valkey"
	DriverRedis  = "redis"
	DriverSQLite = "sqlite"
	DriverMemory = "memory"
)

// Config holds the promptsearch configuration.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Search   SearchConfig   `yaml:"search"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error (default: determined by env)
	Format string `yaml:"format"` // json or console (default: determined by env)
}

// AuthConfig maps bearer tokens to the user ids they authenticate.
type AuthConfig struct {
	Tokens map[string]string `yaml:"tokens"`
}

// HTTPConfig holds HTTP server settings.
type HTTPConfig struct {
	Port            int `yaml:"port"`
	ReadTimeoutSec  int `yaml:"read_timeout_sec"`
	WriteTimeoutSec int `yaml:"write_timeout_sec"`
	ShutdownSec     int `yaml:"shutdown_timeout_sec"`
}

// DatabaseConfig holds record store settings.
type DatabaseConfig struct {
	Driver           string   `yaml:"driver"` // valkey, redis, sqlite, memory (default: valkey)
	Addrs            []string `yaml:"addrs"`
	Password         string   `yaml:"password"`
	Path             string   `yaml:"path"` // sqlite only
	ReadinessTimeout int      `yaml:"readiness_timeout_sec"`
}

// StorageConfig holds storage settings.
type StorageConfig struct {
	KeyPrefix string `yaml:"key_prefix"`
}

// SearchConfig tunes the ranking pipeline.
type SearchConfig struct {
	CandidateCap   int                `yaml:"candidate_cap"`
	DefaultLimit   int                `yaml:"default_limit"`
	MaxLimit       int                `yaml:"max_limit"`
	MaxQueryLength int                `yaml:"max_query_length"`
	Threshold      float64            `yaml:"threshold"`
	MinRawScore    float64            `yaml:"min_raw_score"`
	Weights        map[string]float64 `yaml:"weights"`
	Boosts         BoostsConfig       `yaml:"boosts"`
}

// BoostsConfig holds score overrides. Lower scores rank higher.
type BoostsConfig struct {
	ExactScore      float64 `yaml:"exact_score"`
	PrefixScore     float64 `yaml:"prefix_score"`
	MultiFieldDecay float64 `yaml:"multi_field_decay"`
}

// Load reads configuration from a YAML file by environment name (local, docker, prod).
func Load(env string) (Config, error) {
	return LoadFile(findConfigPath(env))
}

// LoadFile reads configuration from an explicit path.
func LoadFile(configPath string) (Config, error) {
	data, err := os.ReadFile(filepath.Clean(configPath))
	if err != nil {
		return Config{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
	}

	// Substitute env variables of the form ${VAR}
	data = expandEnvVars(data)

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.ApplyDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// GetEnv returns the current environment from the ENV variable, defaulting to "local".
func GetEnv() string {
	if env := os.Getenv("ENV"); env != "" {
		return env
	}
	return "local"
}

// ApplyDefaults fills empty fields with default values.
func (c *Config) ApplyDefaults() {
	if c.HTTP.ReadTimeoutSec <= 0 {
		c.HTTP.ReadTimeoutSec = 10
	}
	if c.HTTP.WriteTimeoutSec <= 0 {
		c.HTTP.WriteTimeoutSec = 10
	}
	if c.HTTP.ShutdownSec <= 0 {
		c.HTTP.ShutdownSec = 10
	}
	if c.Database.Driver == "" {
		c.Database.Driver = DriverValkey
	}
	if c.Database.ReadinessTimeout <= 0 {
		c.Database.ReadinessTimeout = 10
	}
	if c.Storage.KeyPrefix == "" {
		c.Storage.KeyPrefix = "promptsearch:"
	}

	s := &c.Search
	if s.CandidateCap <= 0 {
		s.CandidateCap = 1000
	}
	if s.DefaultLimit <= 0 {
		s.DefaultLimit = 20
	}
	if s.MaxLimit <= 0 {
		s.MaxLimit = 100
	}
	if s.MaxQueryLength <= 0 {
		s.MaxQueryLength = 4096
	}
	if s.Threshold == 0 {
		s.Threshold = 0.4
	}
	if s.MinRawScore == 0 {
		s.MinRawScore = 0.05
	}
	if len(s.Weights) == 0 {
		s.Weights = map[string]float64{
			"title":       0.4,
			"description": 0.2,
			"body":        0.2,
			"category":    0.1,
			"tags":        0.1,
		}
	}
	if s.Boosts.ExactScore == 0 {
		s.Boosts.ExactScore = 0.001
	}
	if s.Boosts.PrefixScore == 0 {
		s.Boosts.PrefixScore = 0.01
	}
	if s.Boosts.MultiFieldDecay == 0 {
		s.Boosts.MultiFieldDecay = 0.95
	}
}

// Validate checks the configuration for correctness.
func (c *Config) Validate() error {
	if c.HTTP.Port <= 0 || c.HTTP.Port > 65535 {
		return fmt.Errorf("http.port must be between 1 and 65535, got %d", c.HTTP.Port)
	}

	switch c.Database.Driver {
	case DriverValkey, DriverRedis:
		if len(c.Database.Addrs) == 0 {
			return fmt.Errorf("database.addrs is required for driver %q", c.Database.Driver)
		}
	case DriverSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required for driver %q", c.Database.Driver)
		}
	case DriverMemory:
	default:
		return fmt.Errorf("database.driver must be one of valkey, redis, sqlite, memory, got %q", c.Database.Driver)
	}

	for token, user := range c.Auth.Tokens {
		if token == "" || user == "" {
			return fmt.Errorf("auth.tokens entries must have a non-empty token and user id")
		}
	}

	return c.Search.Validate()
}

// Validate checks the search section.
func (s *SearchConfig) Validate() error {
	if s.CandidateCap <= 0 {
		return fmt.Errorf("search.candidate_cap must be positive, got %d", s.CandidateCap)
	}
	if s.DefaultLimit > s.MaxLimit {
		return fmt.Errorf("search.default_limit (%d) must not exceed search.max_limit (%d)", s.DefaultLimit, s.MaxLimit)
	}
	if s.Threshold <= 0 || s.Threshold > 1 {
		return fmt.Errorf("search.threshold must be in (0,1], got %g", s.Threshold)
	}
	if s.MinRawScore <= 0 || s.MinRawScore >= 1 {
		return fmt.Errorf("search.min_raw_score must be in (0,1), got %g", s.MinRawScore)
	}
	if _, err := field.FromMap(s.Weights); err != nil {
		return fmt.Errorf("search.weights: %w", err)
	}

	b := s.Boosts
	if b.ExactScore <= 0 {
		return fmt.Errorf("search.boosts.exact_score must be positive, got %g", b.ExactScore)
	}
	if b.PrefixScore <= b.ExactScore {
		return fmt.Errorf("search.boosts.prefix_score (%g) must be greater than exact_score (%g)",
			b.PrefixScore, b.ExactScore)
	}
	if b.MultiFieldDecay <= 0 || b.MultiFieldDecay > 1 {
		return fmt.Errorf("search.boosts.multi_field_decay must be in (0,1], got %g", b.MultiFieldDecay)
	}
	return nil
}

// FieldWeights returns the weight table in canonical field order.
func (s *SearchConfig) FieldWeights() (field.Weights, error) {
	return field.FromMap(s.Weights)
}

// findConfigPath locates the config file.
func findConfigPath(env string) string {
	filename := fmt.Sprintf("%s.yaml", env)

	// 1. Check ./config/
	if path := filepath.Join("config", filename); fileExists(path) {
		return path
	}

	// 2. Check relative to the source file
	_, b, _, _ := runtime.Caller(0)
	projectRoot := filepath.Dir(filepath.Dir(filepath.Dir(b))) // internal/config -> project root
	if path := filepath.Join(projectRoot, "config", filename); fileExists(path) {
		return path
	}

	// 3. Fallback to ./config/
	return filepath.Join("config", filename)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// expandEnvVars replaces ${VAR} and ${VAR:-default} with environment variable values.
var envVarRegex = regexp.MustCompile(`\$\{([^}]+)\}`)

func expandEnvVars(data []byte) []byte {
	return envVarRegex.ReplaceAllFunc(data, func(match []byte) []byte {
		expr := string(match[2 : len(match)-1]) // strip ${ and }
		varName, defaultVal, hasDefault := strings.Cut(expr, ":-")
		val := os.Getenv(varName)
		if val == "" && hasDefault {
			val = defaultVal
		}
		return []byte(val)
	})
}
