package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/output"
)

func newPresetsTestCmd() (*cobra.Command, *bytes.Buffer) {
	cmd, buf := newTestCmd()
	cmd.Flags().String(flagExport, "", "")
	cmd.Flags().Bool(flagForce, false, "")
	return cmd, buf
}

func TestPresetsList(t *testing.T) {
	cmd, buf := newPresetsTestCmd()
	if err := presetsCmd.RunE(cmd, nil); err != nil {
		t.Fatalf(fatalRunE, err)
	}

	out := buf.String()
	for _, want := range []string{"NAME", "eventbrite", refLegacy, refReact, "eslint:recommended, ./rules/style"} {
		if !strings.Contains(out, want) {
			t.Errorf(outputWantFmt, want, out)
		}
	}
}

func TestPresetsJSON(t *testing.T) {
	cmd, buf := newPresetsTestCmd()
	_ = cmd.Flags().Set(flagJSON, "true")
	if err := presetsCmd.RunE(cmd, nil); err != nil {
		t.Fatalf(fatalRunE, err)
	}

	var env struct {
		Data []output.PresetItem `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(env.Data) != 3 {
		t.Fatalf("got %d presets, want 3", len(env.Data))
	}
	for _, it := range env.Data {
		if it.Rules == 0 {
			t.Errorf("%s resolves to no rules", it.Name)
		}
	}
	// React extends everything eventbrite has plus its own rules.
	if env.Data[2].Name != refReact || env.Data[2].Rules <= env.Data[0].Rules {
		t.Errorf("presets = %+v", env.Data)
	}
}

func TestPresetsExport(t *testing.T) {
	dir := t.TempDir()
	cmd, buf := newPresetsTestCmd()
	_ = cmd.Flags().Set(flagExport, dir)

	if err := presetsCmd.RunE(cmd, nil); err != nil {
		t.Fatalf(fatalRunE, err)
	}
	if !strings.Contains(buf.String(), "Exported") {
		t.Errorf("output = %q", buf.String())
	}

	path := filepath.Join(dir, "eslint-config-eventbrite-legacy", "rules", "style.yaml")
	if _, err := os.Stat(path); err != nil {
		t.Errorf("exported file missing: %v", err)
	}
}
