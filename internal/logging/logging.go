// Package logging provides structured logging configuration.
package logging

import (
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config holds logging configuration options.
type Config struct {
	Level  string // debug|info|warn|error
	Format string // json|console
}

// New creates a new configured zap logger. Logs go to standard error so they
// never interleave with the transformed log on standard output.
func New(cfg Config) (*zap.Logger, error) {
	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.Set(strings.ToLower(cfg.Level)); err != nil {
			return nil, err
		}
	}

	format := strings.ToLower(cfg.Format)
	if format == "" {
		format = "console"
	}

	var zcfg zap.Config
	if format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}

	zcfg.Level = zap.NewAtomicLevelAt(level)
	zcfg.OutputPaths = []string{"stderr"}
	zcfg.ErrorOutputPaths = []string{"stderr"}
	zcfg.EncoderConfig.TimeKey = "ts"
	zcfg.EncoderConfig.LevelKey = "level"
	zcfg.EncoderConfig.MessageKey = "msg"
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zcfg.Build()
	if err != nil {
		return nil, err
	}

	return logger, nil
}

// Sync flushes any buffered log entries.
func Sync(logger *zap.Logger) {
	_ = logger.Sync()
}

// FromEnv creates a Config from environment variables.
func FromEnv() Config {
	return Config{
		Level:  getenv("LOGVEIL_LOG_LEVEL", "info"),
		Format: getenv("LOGVEIL_LOG_FORMAT", "console"),
	}
}

func getenv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// Host returns a zap field for a host token.
func Host(host string) zap.Field { return zap.String("host", host) }

// Pseudonym returns a zap field for an assigned pseudonym.
func Pseudonym(p string) zap.Field { return zap.String("pseudonym", p) }

// Referrer returns a zap field for a referrer URL.
func Referrer(ref string) zap.Field { return zap.String("referrer", ref) }

// Line returns a zap field for a raw log line.
func Line(line string) zap.Field { return zap.String("line", line) }

// Timestamp returns a zap field for a log record timestamp field.
func Timestamp(ts string) zap.Field { return zap.String("timestamp", ts) }

// Pattern returns a zap field for a pattern-table entry.
func Pattern(pattern string) zap.Field { return zap.String("pattern", pattern) }

// Server returns a zap field for a DNS server address.
func Server(addr string) zap.Field { return zap.String("server", addr) }

// Path returns a zap field for a file path.
func Path(path string) zap.Field { return zap.String("path", path) }
