package logger

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/kailas-cloud/promptsearch/internal/config"
)

// Log encodings accepted in logging.format.
const (
	FormatJSON    = "json"
	FormatConsole = "console"
)

// New builds the process logger for env. prod defaults to JSON at info,
// local and docker to colored console output at debug. cfg.Level and
// cfg.Format override the env defaults. Logs always go to stderr so the
// CLI can keep stdout for results.
func New(env string, cfg config.LoggingConfig) (*zap.Logger, error) {
	var zc zap.Config
	switch env {
	case "prod":
		zc = zap.NewProductionConfig()
	case "local", "dev", "docker":
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	default:
		return nil, fmt.Errorf("unknown environment %q for logger", env)
	}
	zc.OutputPaths = []string{"stderr"}

	switch cfg.Format {
	case "":
	case FormatJSON:
		zc.Encoding = FormatJSON
		zc.EncoderConfig.EncodeLevel = zapcore.LowercaseLevelEncoder
	case FormatConsole:
		zc.Encoding = FormatConsole
	default:
		return nil, fmt.Errorf("invalid log format %q", cfg.Format)
	}

	if cfg.Level != "" {
		var level zapcore.Level
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			return nil, fmt.Errorf("invalid log level %q: %w", cfg.Level, err)
		}
		zc.Level = zap.NewAtomicLevelAt(level)
	}

	l, err := zc.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return l.With(zap.String("service", "promptsearch")), nil
}
