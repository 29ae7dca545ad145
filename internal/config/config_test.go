package config_test

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/lugassawan/lintcfg/internal/config"
)

func TestDefaultConfig(t *testing.T) {
	cfg := config.DefaultConfig()

	if cfg.Root != config.DefaultRoot {
		t.Errorf("Root = %q, want %q", cfg.Root, config.DefaultRoot)
	}
	if cfg.Concurrency != 4 {
		t.Errorf("Concurrency = %d, want 4", cfg.Concurrency)
	}
	expected := []string{"package.json", "CHANGELOG.md"}
	if !reflect.DeepEqual(cfg.Release.Files, expected) {
		t.Errorf("Release.Files = %v, want %v", cfg.Release.Files, expected)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)

	original := config.DefaultConfig()
	original.Root = "eventbrite-react"
	original.Release.Lightweight = true
	original.Log.Level = "debug"
	if err := config.Save(path, original); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if !reflect.DeepEqual(original, loaded) {
		t.Errorf("loaded config differs:\n  got:  %+v\n  want: %+v", loaded, original)
	}
}

func TestLoadPartialKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, config.FileName)
	content := "root = \"eventbrite-legacy\"\n\n[release]\nlightweight = true\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Root != "eventbrite-legacy" {
		t.Errorf("Root = %q", cfg.Root)
	}
	if !cfg.Release.Lightweight {
		t.Error("Release.Lightweight should be true")
	}
	if cfg.Release.Manifest != "package.json" {
		t.Errorf("Release.Manifest = %q, want default", cfg.Release.Manifest)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := config.Load(filepath.Join("/nonexistent", config.FileName))
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("error = %v, want fs.ErrNotExist", err)
	}
}

func TestLoadOrDefault(t *testing.T) {
	cfg, err := config.LoadOrDefault(filepath.Join(t.TempDir(), config.FileName))
	if err != nil {
		t.Fatalf("LoadOrDefault: %v", err)
	}
	if !reflect.DeepEqual(cfg, config.DefaultConfig()) {
		t.Errorf("got %+v, want defaults", cfg)
	}
}

func TestLoadInvalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad toml", "invalid = [[["},
		{"unknown key", "worktree_dir = \"../x\"\n"},
		{"fails validation", "concurrency = 0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), config.FileName)
			if err := os.WriteFile(path, []byte(tt.content), 0644); err != nil {
				t.Fatal(err)
			}
			if _, err := config.Load(path); err == nil {
				t.Fatal("expected error")
			}
			if _, err := config.LoadOrDefault(path); err == nil {
				t.Fatal("LoadOrDefault should not hide invalid files")
			}
		})
	}
}

func TestContext(t *testing.T) {
	cfg := config.DefaultConfig()
	ctx := config.WithConfig(context.Background(), cfg)
	got := config.FromContext(ctx)

	if got != cfg {
		t.Error("FromContext did not return the stored config")
	}
}

func TestFromContextNil(t *testing.T) {
	got := config.FromContext(context.Background())
	if got != nil {
		t.Error("FromContext on empty context should return nil")
	}
}

func TestValidate(t *testing.T) {
	valid := func(mut func(*config.Config)) config.Config {
		c := *config.DefaultConfig()
		mut(&c)
		return c
	}

	tests := []struct {
		name    string
		cfg     config.Config
		wantErr string
	}{
		{
			name: "valid config",
			cfg:  valid(func(*config.Config) {}),
		},
		{
			name:    "empty root",
			cfg:     valid(func(c *config.Config) { c.Root = " " }),
			wantErr: config.ErrMsgEmptyRoot,
		},
		{
			name:    "zero concurrency",
			cfg:     valid(func(c *config.Config) { c.Concurrency = 0 }),
			wantErr: config.ErrMsgConcurrency,
		},
		{
			name:    "empty external prefix",
			cfg:     valid(func(c *config.Config) { c.External = []string{"eslint:", ""} }),
			wantErr: config.ErrMsgEmptyExternal,
		},
		{
			name:    "empty manifest",
			cfg:     valid(func(c *config.Config) { c.Release.Manifest = "" }),
			wantErr: config.ErrMsgEmptyManifest,
		},
		{
			name:    "no release files",
			cfg:     valid(func(c *config.Config) { c.Release.Files = nil }),
			wantErr: config.ErrMsgEmptyFiles,
		},
		{
			name:    "bad log format",
			cfg:     valid(func(c *config.Config) { c.Log.Format = "xml" }),
			wantErr: config.ErrMsgInvalidLogFormat,
		},
		{
			name:    "everything empty",
			cfg:     config.Config{},
			wantErr: config.ErrMsgEmptyRoot,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("expected error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.wantErr)
			}
		})
	}
}
