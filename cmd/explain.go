package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/output"
	"github.com/lugassawan/lintcfg/internal/termcolor"
)

func init() {
	rootCmd.AddCommand(explainCmd)
}

var explainCmd = &cobra.Command{
	Use:   "explain RULE [ref]",
	Short: "Show a rule's effective setting and the preset it comes from",
	Long:  "Resolves the preset (the configured root by default) and reports the winning severity and options of RULE together with the preset that set them.",
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := cfgFrom(cmd)
		name := args[0]
		ref := rootRef(cfg, args, 1)

		r, err := newResolver(cfg)
		if err != nil {
			return err
		}
		eff, err := r.Resolve(cmd.Context(), ref)
		if err != nil {
			return err
		}

		rule, src, ok := eff.Rule(name)
		if isJSON(cmd) {
			data := output.ExplainData{Rule: name, Root: ref, Found: ok}
			if ok {
				data.Severity = rule.Severity.String()
				data.Options = rule.Options
				data.Source = src
			}
			if err := output.WriteJSON(cmd.OutOrStdout(), version, "explain", data); err != nil {
				return err
			}
			if !ok {
				return output.Failed()
			}
			return nil
		}
		if !ok {
			return fmt.Errorf("rule %q is not configured by %q", name, ref)
		}

		p := painter(cmd)
		w := cmd.OutOrStdout()
		fmt.Fprintf(w, "%s  %s", p.Paint(name, termcolor.Bold), p.Severity(rule.Severity))
		if len(rule.Options) > 0 {
			opts, err := json.Marshal(rule.Options)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "  %s", opts)
		}
		fmt.Fprintln(w)
		fmt.Fprintf(w, "  set by %s\n", p.Paint(presetLabel(src), termcolor.Cyan))
		return nil
	},
}
