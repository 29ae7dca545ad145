package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/config"
)

const flagRoot = "root"

func init() {
	initCmd.Flags().String(flagRoot, config.DefaultRoot, "Preset resolved when no reference is given")
	initCmd.Flags().Bool(flagForce, false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:         "init",
	Short:       "Create a " + config.FileName + " in the current directory",
	Long:        "Writes a " + config.FileName + " with the default settings. An existing file is kept unless --force is given.",
	Annotations: map[string]string{"skipConfig": "true"},
	Args:        cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		wd, err := os.Getwd()
		if err != nil {
			return err
		}
		configPath := filepath.Join(wd, config.FileName)

		force, _ := cmd.Flags().GetBool(flagForce)
		if _, err := os.Stat(configPath); err == nil && !force {
			fmt.Fprintf(cmd.OutOrStdout(), "Config %s already exists, skipping config creation\n", configPath)
			return nil
		}

		cfg := config.DefaultConfig()
		cfg.Root, _ = cmd.Flags().GetString(flagRoot)
		if err := cfg.Validate(); err != nil {
			return err
		}
		if err := config.Save(configPath, cfg); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Initialized lintcfg in %s\n", wd)
		fmt.Fprintf(cmd.OutOrStdout(), "  Config:   %s\n", configPath)
		fmt.Fprintf(cmd.OutOrStdout(), "  Root:     %s\n", cfg.Root)
		fmt.Fprintf(cmd.OutOrStdout(), "  Manifest: %s\n", cfg.Release.Manifest)
		return nil
	},
}
