package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/fileutil"
	"github.com/lugassawan/lintcfg/internal/output"
	"github.com/lugassawan/lintcfg/internal/registry"
	"github.com/lugassawan/lintcfg/internal/resolver"
	"github.com/lugassawan/lintcfg/internal/termcolor"
)

const (
	flagExport = "export"
	flagForce  = "force"
)

func init() {
	presetsCmd.Flags().String(flagExport, "", "Copy the bundled preset files into `DIR`")
	presetsCmd.Flags().Bool(flagForce, false, "Overwrite existing files when exporting")
	rootCmd.AddCommand(presetsCmd)
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the presets bundled with lintcfg",
	Long:  "Lists the bundled presets with what they extend and how many rules they resolve to. --export writes the preset files to disk so they can be edited and shadowed locally.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		builtin := registry.Builtin()

		if dir, _ := cmd.Flags().GetString(flagExport); dir != "" {
			force, _ := cmd.Flags().GetBool(flagForce)
			return exportPresets(cmd, builtin, dir, force)
		}

		items, err := listPresets(cmd, builtin)
		if err != nil {
			return err
		}

		if isJSON(cmd) {
			return output.WriteJSON(cmd.OutOrStdout(), version, "presets", items)
		}

		p := painter(cmd)
		tbl := termcolor.NewTable(2)
		tbl.SetHeader(p.Paint("NAME", termcolor.Bold), p.Paint("EXTENDS", termcolor.Bold), p.Paint("RULES", termcolor.Bold))
		for _, it := range items {
			tbl.AddRow(p.Paint(it.Name, termcolor.Cyan), strings.Join(it.Extends, ", "), fmt.Sprint(it.Rules))
		}
		tbl.Render(cmd.OutOrStdout())
		return nil
	},
}

// listPresets resolves every bundled preset against the bundled presets
// only, so local files cannot change the listing.
func listPresets(cmd *cobra.Command, builtin *registry.FS) ([]output.PresetItem, error) {
	pkgs, err := builtin.Packages()
	if err != nil {
		return nil, err
	}

	cfg := cfgFrom(cmd)
	r := resolver.New(builtin, resolver.WithExternal(cfg.External...))
	items := make([]output.PresetItem, 0, len(pkgs))
	for _, pkg := range pkgs {
		p, err := builtin.Lookup(pkg, "")
		if err != nil {
			return nil, err
		}
		eff, err := r.Resolve(cmd.Context(), pkg)
		if err != nil {
			return nil, err
		}
		extends := p.Extends
		if extends == nil {
			extends = []string{}
		}
		items = append(items, output.PresetItem{
			Name:    registry.ShortName(pkg),
			Package: pkg,
			Extends: extends,
			Rules:   len(eff.Rules),
		})
	}
	return items, nil
}

func exportPresets(cmd *cobra.Command, builtin *registry.FS, dir string, force bool) error {
	written, err := fileutil.ExportFS(builtin.Files(), ".", dir, force)
	if err != nil {
		return err
	}
	if isJSON(cmd) {
		if written == nil {
			written = []string{}
		}
		return output.WriteJSON(cmd.OutOrStdout(), version, "presets", written)
	}
	for _, f := range written {
		fmt.Fprintf(cmd.OutOrStdout(), "  wrote %s\n", f)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Exported %d files to %s\n", len(written), dir)
	return nil
}
