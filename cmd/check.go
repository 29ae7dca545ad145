package cmd

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/output"
	"github.com/lugassawan/lintcfg/internal/parallel"
	"github.com/lugassawan/lintcfg/internal/registry"
	"github.com/lugassawan/lintcfg/internal/resolver"
	"github.com/lugassawan/lintcfg/internal/termcolor"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check [ref...]",
	Short: "Resolve several presets and report any that fail",
	Long:  "Resolves each reference concurrently and reports rule counts or the error. Without arguments the configured root and every bundled preset are checked. Exits non-zero if any reference fails.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cfgFrom(cmd)
		refs := args
		if len(refs) == 0 {
			var err error
			if refs, err = defaultCheckRefs(cfg.Root); err != nil {
				return err
			}
		}

		r, err := newResolver(cfg)
		if err != nil {
			return err
		}

		results := checkRefs(cmd.Context(), r, refs, cfg.Concurrency)
		failed := 0
		for _, res := range results {
			if res.Error != "" {
				failed++
			}
		}

		if isJSON(cmd) {
			if err := output.WriteJSON(cmd.OutOrStdout(), version, "check", output.CheckData{
				Results: results,
				Success: failed == 0,
			}); err != nil {
				return err
			}
			if failed > 0 {
				return output.Failed()
			}
			return nil
		}

		renderCheck(cmd, results)
		if failed > 0 {
			return fmt.Errorf("%d of %d presets failed to resolve", failed, len(results))
		}
		return nil
	},
}

func defaultCheckRefs(root string) ([]string, error) {
	pkgs, err := registry.Builtin().Packages()
	if err != nil {
		return nil, err
	}
	refs := []string{root}
	for _, pkg := range pkgs {
		if name := registry.ShortName(pkg); !slices.Contains(refs, name) {
			refs = append(refs, name)
		}
	}
	return refs, nil
}

func checkRefs(ctx context.Context, r *resolver.Resolver, refs []string, concurrency int) []output.CheckResult {
	results := parallel.Collect(ctx, len(refs), concurrency, func(ctx context.Context, i int) output.CheckResult {
		res := output.CheckResult{Ref: refs[i]}
		eff, err := r.Resolve(ctx, refs[i])
		if err != nil {
			res.Error = err.Error()
			res.Code = output.CodeFor(err)
			return res
		}
		res.Rules = len(eff.Rules)
		res.Enabled = len(eff.EnabledRules())
		res.Presets = len(eff.Chain)
		return res
	})

	// Entries skipped after cancellation carry no ref.
	for i := range results {
		if results[i].Ref == "" {
			results[i] = output.CheckResult{Ref: refs[i], Error: context.Canceled.Error(), Code: output.ErrGeneral}
		}
	}
	return results
}

func renderCheck(cmd *cobra.Command, results []output.CheckResult) {
	p := painter(cmd)
	tbl := termcolor.NewTable(2)
	tbl.SetHeader(
		p.Paint("PRESET", termcolor.Bold),
		p.Paint("STATUS", termcolor.Bold),
		p.Paint("RULES", termcolor.Bold),
		p.Paint("ENABLED", termcolor.Bold),
		p.Paint("DETAIL", termcolor.Bold),
	)
	for _, res := range results {
		if res.Error != "" {
			tbl.AddRow(res.Ref, p.Status(false), "-", "-", p.Paint(res.Error, termcolor.Red))
			continue
		}
		detail := p.Paint(fmt.Sprintf("%d presets", res.Presets), termcolor.Gray)
		tbl.AddRow(res.Ref, p.Status(true), fmt.Sprint(res.Rules), fmt.Sprint(res.Enabled), detail)
	}
	tbl.Render(cmd.OutOrStdout())
}
