package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/config"
	"github.com/lugassawan/lintcfg/internal/output"
	"github.com/lugassawan/lintcfg/internal/preset"
	"github.com/lugassawan/lintcfg/internal/resolver"
	"github.com/lugassawan/lintcfg/testutil"
)

func newResolveTestCmd() (*cobra.Command, *bytes.Buffer) {
	cmd, buf := newTestCmd()
	cmd.Flags().StringP(flagFormat, "f", string(preset.FormatJSON), "")
	cmd.Flags().StringP(flagOut, "o", "", "")
	cmd.Flags().BoolP(flagWatch, "w", false, "")
	return cmd, buf
}

func TestResolveBuiltinJSON(t *testing.T) {
	cmd, buf := newResolveTestCmd()
	if err := resolveCmd.RunE(cmd, []string{refLegacy}); err != nil {
		t.Fatalf(fatalRunE, err)
	}

	var doc map[string]any
	if err := json.Unmarshal(buf.Bytes(), &doc); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, buf)
	}
	rules, ok := doc["rules"].(map[string]any)
	if !ok {
		t.Fatalf("rules missing: %v", doc)
	}
	quotes, ok := rules[ruleQuotes].([]any)
	if !ok || len(quotes) != 2 || quotes[0] != "error" || quotes[1] != "single" {
		t.Errorf("quotes = %v, want [error single]", rules[ruleQuotes])
	}
	if ext, _ := doc["extends"].([]any); len(ext) != 1 || ext[0] != "eslint:recommended" {
		t.Errorf("extends = %v, want [eslint:recommended]", doc["extends"])
	}
}

func TestResolveDefaultsToConfiguredRoot(t *testing.T) {
	cmd, buf := newResolveTestCmd()
	if err := cmd.Flags().Set(flagFormat, "yaml"); err != nil {
		t.Fatal(err)
	}
	if err := resolveCmd.RunE(cmd, nil); err != nil {
		t.Fatalf(fatalRunE, err)
	}

	// The default root extends the legacy preset and adds es6 rules.
	for _, want := range []string{"no-var: error", "quotes:", "parserOptions:"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf(outputWantFmt, want, buf)
		}
	}
}

func TestResolveWritesFile(t *testing.T) {
	t.Chdir(t.TempDir())
	cmd, buf := newResolveTestCmd()
	out := filepath.Join("out", ".eslintrc.yaml")
	if err := cmd.Flags().Set(flagOut, out); err != nil {
		t.Fatal(err)
	}

	if err := resolveCmd.RunE(cmd, []string{refLegacy}); err != nil {
		t.Fatalf(fatalRunE, err)
	}
	if !strings.Contains(buf.String(), "Wrote "+out) {
		t.Errorf("output = %q", buf)
	}

	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	p, err := preset.Decode(data, preset.FormatYAML)
	if err != nil {
		t.Fatalf("written file is not a valid YAML preset: %v\n%s", err, data)
	}
	if p.Rules[ruleQuotes].Options[0] != "single" {
		t.Errorf("quotes = %v", p.Rules[ruleQuotes])
	}
}

func TestResolveFormatFlag(t *testing.T) {
	tests := []struct {
		name    string
		format  string
		out     string
		want    preset.Format
		wantErr bool
	}{
		{"default", "", "", preset.FormatJSON, false},
		{"explicit toml", "toml", "", preset.FormatTOML, false},
		{"out extension", "", "cfg.yml", preset.FormatYAML, false},
		{"explicit wins over extension", "json", "cfg.yaml", preset.FormatJSON, false},
		{"unknown extension falls back", "", ".eslintrc", preset.FormatJSON, false},
		{"bad format", "xml", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd, _ := newResolveTestCmd()
			if tt.format != "" {
				_ = cmd.Flags().Set(flagFormat, tt.format)
			}
			if tt.out != "" {
				_ = cmd.Flags().Set(flagOut, tt.out)
			}
			got, err := resolveFormat(cmd)
			if (err != nil) != tt.wantErr {
				t.Fatalf("resolveFormat error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("format = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestResolveJSONEnvelope(t *testing.T) {
	cmd, buf := newResolveTestCmd()
	_ = cmd.Flags().Set(flagJSON, "true")

	if err := resolveCmd.RunE(cmd, []string{refReact}); err != nil {
		t.Fatalf(fatalRunE, err)
	}

	var env struct {
		Command string             `json:"command"`
		Data    output.ResolveData `json:"data"`
	}
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if env.Command != "resolve" || env.Data.Root != refReact {
		t.Errorf("envelope = %+v", env)
	}
	if len(env.Data.Chain) < 5 {
		t.Errorf("chain = %v, want every folded preset", env.Data.Chain)
	}
}

func TestResolveLocalPresetShadowsBuiltin(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.CreateFile(t, dir, "node_modules/eslint-config-eventbrite-legacy/index.json", `{"rules":{"quotes":["error","double"]}}`)

	cmd, buf := newResolveTestCmd()
	if err := resolveCmd.RunE(cmd, []string{"./node_modules/eslint-config-eventbrite-legacy"}); err != nil {
		t.Fatalf(fatalRunE, err)
	}
	if !strings.Contains(buf.String(), `"double"`) {
		t.Errorf("local preset not used:\n%s", buf)
	}

	buf.Reset()
	if err := resolveCmd.RunE(cmd, []string{refLegacy}); err != nil {
		t.Fatalf(fatalRunE, err)
	}
	if !strings.Contains(buf.String(), `"double"`) {
		t.Errorf("package lookup should prefer node_modules:\n%s", buf)
	}
}

func TestResolveUnresolved(t *testing.T) {
	cmd, _ := newResolveTestCmd()
	err := resolveCmd.RunE(cmd, []string{"does-not-exist"})
	if err == nil {
		t.Fatal(errExpected)
	}
	if !errors.Is(err, resolver.ErrUnresolved) {
		t.Errorf("error = %v, want ErrUnresolved", err)
	}
}

func TestResolveCycle(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	testutil.CreateFile(t, dir, "a.yaml", "extends: ./b\n")
	testutil.CreateFile(t, dir, "b.yaml", "extends: ./a\n")

	cmd, _ := newResolveTestCmd()
	err := resolveCmd.RunE(cmd, []string{"./a"})
	if !errors.Is(err, resolver.ErrCycle) {
		t.Fatalf("error = %v, want ErrCycle", err)
	}
}

func TestWatchDirs(t *testing.T) {
	wd := t.TempDir()
	t.Chdir(wd)
	eff := &resolver.Effective{Chain: []string{
		"builtin:eslint-config-eventbrite/index.yaml",
		filepath.Join(wd, "presets", "a.yaml"),
		filepath.Join(wd, "presets", "b.yaml"),
	}}

	got := watchDirs(eff)
	if len(got) != 2 || got[1] != filepath.Join(wd, "presets") {
		t.Errorf("watchDirs = %v", got)
	}
}

func TestWatchedFile(t *testing.T) {
	wd := t.TempDir()
	t.Chdir(wd)
	match := watchedFile("eff.json")

	tests := []struct {
		path string
		want bool
	}{
		{"/p/index.yaml", true},
		{"/p/rules.json", true},
		{"/p/.lintcfg.toml", true},
		{"/p/README.md", false},
		{filepath.Join(wd, "base.yaml"), true},
		{filepath.Join(wd, "eff.json"), false},
		{filepath.Join(wd, ".eff.json1234567"), false},
		{filepath.Join(wd, "sub", "eff.json"), true},
	}
	for _, tt := range tests {
		if got := match(tt.path); got != tt.want {
			t.Errorf("watchedFile(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestResolveWatcherIgnoresOwnOutput(t *testing.T) {
	wd := t.TempDir()
	t.Chdir(wd)
	testutil.CreateFile(t, wd, "base.yaml", "rules:\n  semi: error\n")

	cmd, _ := newResolveTestCmd()
	w := newResolveWatcher(cmd, []string{"./base"}, []string{wd}, preset.FormatJSON, "eff.json")
	w.Debounce = 100 * time.Millisecond

	var calls atomic.Int32
	onChange := w.OnChange
	w.OnChange = func(ctx context.Context) {
		calls.Add(1)
		onChange(ctx)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()

	time.Sleep(200 * time.Millisecond)
	testutil.CreateFile(t, wd, "base.yaml", "rules:\n  semi: warn\n")
	time.Sleep(1500 * time.Millisecond)
	cancel()
	if err := <-done; err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Errorf("OnChange ran %d times after one edit, want 1", got)
	}
	data, err := os.ReadFile(filepath.Join(wd, "eff.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"warn"`) {
		t.Errorf("eff.json not re-rendered:\n%s", data)
	}
}

func TestReloadResolverPicksUpConfigEdits(t *testing.T) {
	wd := t.TempDir()
	t.Chdir(wd)
	testutil.CreateFile(t, wd, "a.yaml", "rules:\n  semi: error\n")
	testutil.CreateFile(t, wd, "b.yaml", "rules:\n  semi: \"off\"\n")
	testutil.CreateFile(t, wd, config.FileName, "root = \"./a\"\n")

	_, ref, err := reloadResolver(nil)
	if err != nil {
		t.Fatalf("reloadResolver: %v", err)
	}
	if ref != "./a" {
		t.Errorf("ref = %q, want ./a", ref)
	}

	testutil.CreateFile(t, wd, config.FileName, "root = \"./b\"\n")
	r, ref, err := reloadResolver(nil)
	if err != nil {
		t.Fatalf("reloadResolver: %v", err)
	}
	if ref != "./b" {
		t.Errorf("ref = %q, want ./b", ref)
	}
	eff, err := r.Resolve(context.Background(), ref)
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if rule, _, _ := eff.Rule("semi"); rule.Severity != preset.Off {
		t.Errorf("semi = %v, want off", rule)
	}

	if _, got, err := reloadResolver([]string{"./a"}); err != nil || got != "./a" {
		t.Errorf("explicit ref = %q, %v; want ./a", got, err)
	}
}
