package cmd

import (
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/config"
	lintlog "github.com/lugassawan/lintcfg/internal/log"
	"github.com/lugassawan/lintcfg/internal/output"
)

const (
	flagNoColor   = "no-color"
	flagJSON      = "json"
	flagLogLevel  = "log-level"
	flagLogFormat = "log-format"
)

var rootCmd = &cobra.Command{
	Use:   "lintcfg",
	Short: "Layered lint preset resolver",
	Long: "lintcfg resolves shareable lint presets and everything they extend into one effective configuration, " +
		"explains where each rule setting comes from, and tags preset releases.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip config for Cobra internals (completion, __complete)
		if cmd.Name() == "completion" || cmd.Name() == "__complete" {
			return nil
		}

		// Skip config if any command in the chain is annotated
		for c := cmd; c != nil; c = c.Parent() {
			if c.Annotations != nil && c.Annotations["skipConfig"] == "true" {
				configureLogger(cmd, nil)
				return nil
			}
		}

		dir, err := os.Getwd()
		if err != nil {
			return err
		}
		cfg, err := config.LoadOrDefault(filepath.Join(dir, config.FileName))
		if err != nil {
			return err
		}
		configureLogger(cmd, cfg)
		cmd.SetContext(config.WithConfig(cmd.Context(), cfg))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().Bool(flagNoColor, false, "disable colored output")
	rootCmd.PersistentFlags().Bool(flagJSON, false, "write results as a JSON envelope")
	rootCmd.PersistentFlags().String(flagLogLevel, "", "log level (debug, info, warn, error); overrides "+lintlog.EnvLevel)
	rootCmd.PersistentFlags().String(flagLogFormat, "", "log format (console or json)")
}

// configureLogger applies --log-level, then LINTCFG_LOG_LEVEL, then the
// config file.
func configureLogger(cmd *cobra.Command, cfg *config.Config) {
	level, _ := cmd.Flags().GetString(flagLogLevel)
	format, _ := cmd.Flags().GetString(flagLogFormat)
	if cfg != nil {
		if level == "" && os.Getenv(lintlog.EnvLevel) == "" {
			level = cfg.Log.Level
		}
		if format == "" {
			format = cfg.Log.Format
		}
	}
	lintlog.Configure(lintlog.Config{Level: level, Format: format, Output: cmd.ErrOrStderr()})
}

// lastCmd is the command picked by the most recent Execute.
var lastCmd *cobra.Command

func Execute() error {
	c, err := rootCmd.ExecuteC()
	lastCmd = c
	return err
}

// IsJSONMode reports whether the executed command was asked for JSON output.
func IsJSONMode() bool {
	return lastCmd != nil && output.IsJSON(lastCmd)
}

// CommandName returns the name of the executed command.
func CommandName() string {
	if lastCmd == nil {
		return rootCmd.Name()
	}
	return lastCmd.Name()
}
