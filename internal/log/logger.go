// Package log provides the structured logger shared by lintcfg components.
package log

import (
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

// EnvLevel names the environment variable consulted when no level is given.
const EnvLevel = "LINTCFG_LOG_LEVEL"

// Output formats.
const (
	FormatConsole = "console"
	FormatJSON    = "json"
)

// Config captures options for configuring the global logger.
type Config struct {
	Level  string    // optional log level ("debug", "info", etc.)
	Format string    // "console" (default) or "json"
	Output io.Writer // optional writer (defaults to os.Stderr)
}

var (
	mu   sync.RWMutex
	base = zerolog.New(os.Stderr).Level(zerolog.WarnLevel)
)

// Configure replaces the global logger. Diagnostics go to stderr so they
// never mix with rendered configurations on stdout.
func Configure(cfg Config) {
	level := zerolog.WarnLevel
	raw := cfg.Level
	if raw == "" {
		raw = os.Getenv(EnvLevel)
	}
	if raw != "" {
		if parsed, err := zerolog.ParseLevel(strings.ToLower(raw)); err == nil {
			level = parsed
		}
	}

	writer := cfg.Output
	if writer == nil {
		writer = os.Stderr
	}
	if cfg.Format != FormatJSON {
		writer = zerolog.ConsoleWriter{Out: writer, TimeFormat: time.Kitchen, NoColor: noColor()}
	}

	l := zerolog.New(writer).Level(level).With().Timestamp().Logger()

	mu.Lock()
	base = l
	mu.Unlock()
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

// Base returns the configured base logger instance.
func Base() zerolog.Logger {
	mu.RLock()
	defer mu.RUnlock()
	return base
}

// WithComponent returns a child logger annotated with the given component name.
func WithComponent(component string) zerolog.Logger {
	return Base().With().Str("component", component).Logger()
}
