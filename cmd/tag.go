package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/git"
	lintlog "github.com/lugassawan/lintcfg/internal/log"
	"github.com/lugassawan/lintcfg/internal/manifest"
	"github.com/lugassawan/lintcfg/internal/output"
	"github.com/lugassawan/lintcfg/internal/release"
)

const (
	flagManifest    = "manifest"
	flagDryRun      = "dry-run"
	flagLightweight = "lightweight"
)

func init() {
	tagCmd.Flags().StringP(flagManifest, "m", "", "Manifest to read name and version from (default from config, package.json)")
	tagCmd.Flags().Bool(flagDryRun, false, "Print the git commands without running them")
	tagCmd.Flags().Bool(flagLightweight, false, "Create a lightweight tag instead of an annotated one")
	rootCmd.AddCommand(tagCmd)
}

var tagCmd = &cobra.Command{
	Use:   "tag",
	Short: "Commit the release files and tag <name>-v<version>",
	Long: "Reads name and version from the manifest, stages the release files, commits them as \"Release <name>-v<version>\" and tags the commit. " +
		"The first failing git command stops the release; earlier steps are not undone.",
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cfgFrom(cmd)
		dryRun, _ := cmd.Flags().GetBool(flagDryRun)
		lightweight, _ := cmd.Flags().GetBool(flagLightweight)

		r := newRunner()
		if _, err := git.RepoRoot(r); err != nil && !dryRun {
			return err
		}

		manifestPath, err := manifestFile(cmd, cfg.Release.Manifest)
		if err != nil {
			return err
		}
		m, err := manifest.Load(manifestPath)
		if err != nil {
			return err
		}

		log := lintlog.WithComponent("release")
		rel := &release.Releaser{
			Runner:      r,
			Dir:         filepath.Dir(manifestPath),
			Files:       cfg.Release.Files,
			Lightweight: lightweight || cfg.Release.Lightweight,
			Logger:      &log,
		}
		plan := rel.Plan(m)

		if dryRun {
			return writeDryRun(cmd, plan)
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Committing %s of %s & adding tag\n", plan.Tag, filepath.Base(manifestPath))
		res, err := rel.Run(cmd.Context(), m)
		if err != nil {
			var stepErr *release.StepError
			if errors.As(err, &stepErr) && len(stepErr.Completed) > 0 && !isJSON(cmd) {
				fmt.Fprintf(cmd.ErrOrStderr(), "Completed before failure: %s (not rolled back)\n", joinSteps(stepErr.Completed))
			}
			return err
		}

		if isJSON(cmd) {
			return output.WriteJSON(cmd.OutOrStdout(), version, "tag", tagData(plan, res.Completed, false))
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Tagged %s\n", res.Tag)
		return nil
	},
}

// manifestFile returns the absolute manifest path. Relative paths from
// --manifest or the config are taken from the working directory, so each
// package of a monorepo releases from its own directory.
func manifestFile(cmd *cobra.Command, fallback string) (string, error) {
	path, _ := cmd.Flags().GetString(flagManifest)
	if path == "" {
		path = fallback
	}
	if filepath.IsAbs(path) {
		return path, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, path), nil
}

func writeDryRun(cmd *cobra.Command, plan release.Plan) error {
	if isJSON(cmd) {
		return output.WriteJSON(cmd.OutOrStdout(), version, "tag", tagData(plan, nil, true))
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Would release %s:\n", plan.Tag)
	for _, c := range plan.Commands {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", c)
	}
	return nil
}

func tagData(plan release.Plan, completed []release.Step, dryRun bool) output.TagData {
	data := output.TagData{
		Tag:       plan.Tag,
		Message:   plan.Message,
		Commands:  make([]string, 0, len(plan.Commands)),
		Completed: make([]string, 0, len(completed)),
		DryRun:    dryRun,
	}
	for _, c := range plan.Commands {
		data.Commands = append(data.Commands, c.String())
	}
	for _, s := range completed {
		data.Completed = append(data.Completed, string(s))
	}
	return data
}

func joinSteps(steps []release.Step) string {
	names := make([]string, len(steps))
	for i, s := range steps {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}
