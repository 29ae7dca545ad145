package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/config"
	"github.com/lugassawan/lintcfg/internal/fileutil"
	lintlog "github.com/lugassawan/lintcfg/internal/log"
	"github.com/lugassawan/lintcfg/internal/output"
	"github.com/lugassawan/lintcfg/internal/preset"
	"github.com/lugassawan/lintcfg/internal/resolver"
	"github.com/lugassawan/lintcfg/internal/watch"
)

const (
	flagFormat = "format"
	flagOut    = "out"
	flagWatch  = "watch"
)

func init() {
	resolveCmd.Flags().StringP(flagFormat, "f", string(preset.FormatJSON), "Output format: json, yaml or toml")
	resolveCmd.Flags().StringP(flagOut, "o", "", "Write the configuration to `FILE` instead of stdout")
	resolveCmd.Flags().BoolP(flagWatch, "w", false, "Resolve again whenever a preset file on disk changes")
	rootCmd.AddCommand(resolveCmd)
}

var resolveCmd = &cobra.Command{
	Use:   "resolve [ref]",
	Short: "Print the effective configuration of a preset",
	Long: "Resolves a preset and everything it extends, depth-first and left to right, and prints the merged configuration. " +
		"Without a reference the configured root preset is used. With --out the file is replaced atomically; " +
		"its extension picks the format unless --format is given.",
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cfgFrom(cmd)
		ref := rootRef(cfg, args, 0)

		format, err := resolveFormat(cmd)
		if err != nil {
			return err
		}
		r, err := newResolver(cfg)
		if err != nil {
			return err
		}
		out, _ := cmd.Flags().GetString(flagOut)

		eff, err := renderResolved(cmd.Context(), cmd, r, ref, format, out)
		if err != nil {
			return err
		}

		if watching, _ := cmd.Flags().GetBool(flagWatch); !watching {
			return nil
		}
		return watchResolved(cmd, args, eff, format, out)
	},
}

// resolveFormat honors --format, falling back to the --out extension when
// --format was not given explicitly.
func resolveFormat(cmd *cobra.Command) (preset.Format, error) {
	raw, _ := cmd.Flags().GetString(flagFormat)
	out, _ := cmd.Flags().GetString(flagOut)
	if out != "" && !cmd.Flags().Changed(flagFormat) {
		if f, err := preset.FormatFromPath(out); err == nil {
			return f, nil
		}
	}
	return preset.ParseFormat(raw)
}

func renderResolved(ctx context.Context, cmd *cobra.Command, r *resolver.Resolver, ref string, format preset.Format, out string) (*resolver.Effective, error) {
	eff, err := r.Resolve(ctx, ref)
	if err != nil {
		return nil, err
	}
	doc := eff.Document()

	if out != "" {
		data, err := output.Encode(format, doc)
		if err != nil {
			return nil, err
		}
		if err := fileutil.WriteFileAtomic(out, data, 0o644); err != nil {
			return nil, err
		}
	}

	w := cmd.OutOrStdout()
	switch {
	case isJSON(cmd):
		err = output.WriteJSON(w, version, "resolve", output.ResolveData{
			Root:    eff.Root,
			Chain:   eff.Chain,
			Config:  doc,
			Written: out,
		})
	case out != "":
		_, err = fmt.Fprintf(w, "Wrote %s (%d rules from %d presets)\n", out, len(eff.Rules), len(eff.Chain))
	default:
		err = output.Render(w, format, doc)
	}
	return eff, err
}

// watchDirs lists the directories holding the on-disk presets of eff, plus
// the working directory for the config file.
func watchDirs(eff *resolver.Effective) []string {
	var dirs []string
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}
	for _, id := range eff.Chain {
		if filepath.IsAbs(id) {
			dirs = append(dirs, filepath.Dir(id))
		}
	}
	return watch.Dedupe(dirs)
}

// watchedFile returns the event filter for --watch: preset files and the
// config file count, the --out file and its temporary siblings do not.
func watchedFile(out string) func(path string) bool {
	var outAbs string
	if out != "" {
		outAbs, _ = filepath.Abs(out)
	}
	return func(path string) bool {
		if outAbs != "" && isOutputFile(path, outAbs) {
			return false
		}
		if filepath.Base(path) == config.FileName {
			return true
		}
		_, err := preset.FormatFromPath(path)
		return err == nil
	}
}

// isOutputFile matches out itself and the ".<name><suffix>" temp files
// renameio creates next to it.
func isOutputFile(path, out string) bool {
	p, err := filepath.Abs(path)
	if err != nil {
		return false
	}
	if p == out {
		return true
	}
	return filepath.Dir(p) == filepath.Dir(out) &&
		strings.HasPrefix(filepath.Base(p), "."+filepath.Base(out))
}

// reloadResolver reads the config file again and builds a fresh resolver
// from it.
func reloadResolver(args []string) (*resolver.Resolver, string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadOrDefault(filepath.Join(wd, config.FileName))
	if err != nil {
		return nil, "", err
	}
	r, err := newResolver(cfg)
	if err != nil {
		return nil, "", err
	}
	return r, rootRef(cfg, args, 0), nil
}

func newResolveWatcher(cmd *cobra.Command, args []string, dirs []string, format preset.Format, out string) *watch.Watcher {
	log := lintlog.WithComponent("watch")
	return &watch.Watcher{
		Dirs:  dirs,
		Match: watchedFile(out),
		OnChange: func(ctx context.Context) {
			// Directories of presets first extended after start are not
			// picked up until the command is restarted.
			r, ref, err := reloadResolver(args)
			if err == nil {
				_, err = renderResolved(ctx, cmd, r, ref, format, out)
			}
			if err != nil {
				log.Error().Err(err).Str("ref", ref).Msg("resolve failed")
				fmt.Fprintf(cmd.ErrOrStderr(), "Error: %v\n", err)
			}
		},
		Logger: &log,
	}
}

func watchResolved(cmd *cobra.Command, args []string, eff *resolver.Effective, format preset.Format, out string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	dirs := watchDirs(eff)
	fmt.Fprintf(cmd.ErrOrStderr(), "Watching %d directories for changes (Ctrl+C to stop)\n", len(dirs))
	return newResolveWatcher(cmd, args, dirs, format, out).Run(ctx)
}
