package cmd

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/config"
	"github.com/lugassawan/lintcfg/internal/git"
	lintlog "github.com/lugassawan/lintcfg/internal/log"
	"github.com/lugassawan/lintcfg/internal/output"
	"github.com/lugassawan/lintcfg/internal/registry"
	"github.com/lugassawan/lintcfg/internal/resolver"
	"github.com/lugassawan/lintcfg/internal/termcolor"
)

var newRunner = func() git.Runner { return &git.ExecRunner{} }

// cfgFrom returns the config loaded by PersistentPreRunE, or the defaults
// when the command runs without it.
func cfgFrom(cmd *cobra.Command) *config.Config {
	if cfg := config.FromContext(cmd.Context()); cfg != nil {
		return cfg
	}
	return config.DefaultConfig()
}

// newLookup searches the working directory first, then the bundled
// presets, so a project can shadow a bundled preset of the same name.
func newLookup(cfg *config.Config) (resolver.Lookup, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	disk, err := registry.Dir(wd, cfg.SearchPaths...)
	if err != nil {
		return nil, err
	}
	return registry.Chain{disk, registry.Builtin()}, nil
}

func newResolver(cfg *config.Config) (*resolver.Resolver, error) {
	lookup, err := newLookup(cfg)
	if err != nil {
		return nil, err
	}
	return resolver.New(lookup,
		resolver.WithExternal(cfg.External...),
		resolver.WithConcurrency(cfg.Concurrency),
		resolver.WithLogger(lintlog.WithComponent("resolver")),
	), nil
}

// rootRef returns the reference given on the command line, or the
// configured root preset.
func rootRef(cfg *config.Config, args []string, idx int) string {
	if len(args) > idx && args[idx] != "" {
		return args[idx]
	}
	return cfg.Root
}

func isJSON(cmd *cobra.Command) bool {
	return output.IsJSON(cmd)
}

func painter(cmd *cobra.Command) *termcolor.Painter {
	noColor, _ := cmd.Flags().GetBool(flagNoColor)
	return termcolor.NewPainter(noColor)
}

// presetLabel shortens a preset ID for display: bundled presets drop their
// source prefix and files under the working directory become relative.
func presetLabel(id string) string {
	if rest, ok := strings.CutPrefix(id, registry.BuiltinName+":"); ok {
		return rest
	}
	if !filepath.IsAbs(id) {
		return id
	}
	wd, err := os.Getwd()
	if err != nil {
		return id
	}
	rel, err := filepath.Rel(wd, id)
	if err != nil || strings.HasPrefix(rel, "..") {
		return id
	}
	return "./" + filepath.ToSlash(rel)
}
