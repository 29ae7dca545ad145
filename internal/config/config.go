package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"strings"

	toml "github.com/pelletier/go-toml/v2"

	"github.com/lugassawan/lintcfg/internal/fileutil"
)

// FileName is the project config file name.
const FileName = ".lintcfg.toml"

// DefaultRoot is the preset resolved when no reference is given.
const DefaultRoot = "eventbrite"

type Config struct {
	Root        string   `toml:"root"`
	SearchPaths []string `toml:"search_paths"`
	External    []string `toml:"external"`
	Concurrency int      `toml:"concurrency"`

	Release ReleaseConfig `toml:"release"`
	Log     LogConfig     `toml:"log"`
}

// ReleaseConfig holds settings for the tag command.
type ReleaseConfig struct {
	Manifest    string   `toml:"manifest"`
	Files       []string `toml:"files"`
	Lightweight bool     `toml:"lightweight"`
}

// LogConfig holds logger defaults. Flags and LINTCFG_LOG_LEVEL take
// precedence.
type LogConfig struct {
	Level  string `toml:"level,omitempty"`
	Format string `toml:"format,omitempty"`
}

// Validation error messages for config fields.
const (
	ErrMsgEmptyRoot        = "root must not be empty"
	ErrMsgConcurrency      = "concurrency must be positive"
	ErrMsgEmptyManifest    = "release.manifest must not be empty"
	ErrMsgEmptyFiles       = "release.files must not be empty"
	ErrMsgEmptyExternal    = "external prefixes must not be empty"
	ErrMsgInvalidLogFormat = "log.format must be \"console\" or \"json\""
)

// Validate checks that required config fields are present.
func (c *Config) Validate() error {
	var errs []error
	if strings.TrimSpace(c.Root) == "" {
		errs = append(errs, errors.New(ErrMsgEmptyRoot))
	}
	if c.Concurrency < 1 {
		errs = append(errs, errors.New(ErrMsgConcurrency))
	}
	if slices.Contains(c.External, "") {
		errs = append(errs, errors.New(ErrMsgEmptyExternal))
	}
	if c.Release.Manifest == "" {
		errs = append(errs, errors.New(ErrMsgEmptyManifest))
	}
	if len(c.Release.Files) == 0 {
		errs = append(errs, errors.New(ErrMsgEmptyFiles))
	}
	switch c.Log.Format {
	case "", "console", "json":
	default:
		errs = append(errs, errors.New(ErrMsgInvalidLogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

type ctxKey struct{}

func DefaultConfig() *Config {
	return &Config{
		Root:        DefaultRoot,
		SearchPaths: []string{"node_modules"},
		External:    []string{"eslint:", "plugin:"},
		Concurrency: 4,
		Release: ReleaseConfig{
			Manifest: "package.json",
			Files:    []string{"package.json", "CHANGELOG.md"},
		},
	}
}

// Load reads the config at path. Keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path is the project config
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := DefaultConfig()
	dec := toml.NewDecoder(strings.NewReader(string(data)))
	dec.DisallowUnknownFields()
	if err := dec.Decode(cfg); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadOrDefault is Load, except that a missing file yields DefaultConfig.
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return DefaultConfig(), nil
	}
	return cfg, err
}

func Save(path string, cfg *Config) error {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	return fileutil.WriteFileAtomic(path, data, 0644)
}

func WithConfig(ctx context.Context, cfg *Config) context.Context {
	return context.WithValue(ctx, ctxKey{}, cfg)
}

func FromContext(ctx context.Context) *Config {
	cfg, _ := ctx.Value(ctxKey{}).(*Config)
	return cfg
}
