package cmd

import (
	"bytes"
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/config"
	"github.com/lugassawan/lintcfg/internal/git"
)

const (
	cmdRevParse     = "rev-parse"
	cmdShowToplevel = "--show-toplevel"
	refLegacy       = "eventbrite-legacy"
	refReact        = "eventbrite-react"
	ruleQuotes      = "quotes"
	srcLegacyStyle  = "eslint-config-eventbrite-legacy/rules/style.yaml"
	errExpected     = "expected error"
	fatalRunE       = "RunE: %v"
	outputWantFmt   = "output missing %q:\n%s"
)

var errGitFailed = errors.New("git failed")

// mockRunner implements git.Runner with configurable closures for testing.
type mockRunner struct {
	run      func(args ...string) (string, error)
	runInDir func(dir string, args ...string) (string, error)
}

func (m *mockRunner) Run(args ...string) (string, error) {
	return m.run(args...)
}

func (m *mockRunner) RunInDir(dir string, args ...string) (string, error) {
	return m.runInDir(dir, args...)
}

// noopRunInDir is a default runInDir that returns empty output.
func noopRunInDir(_ string, _ ...string) (string, error) {
	return "", nil
}

// repoRootRunner answers rev-parse --show-toplevel with root and hands every
// other command to runInDir.
func repoRootRunner(root string, runInDir func(dir string, args ...string) (string, error)) *mockRunner {
	if runInDir == nil {
		runInDir = noopRunInDir
	}
	return &mockRunner{
		run: func(args ...string) (string, error) {
			if len(args) >= 2 && args[0] == cmdRevParse && args[1] == cmdShowToplevel {
				return root, nil
			}
			return "", nil
		},
		runInDir: runInDir,
	}
}

// newTestCmd creates a cobra.Command with --no-color and --json flags,
// default config in its context, and a bytes.Buffer for output capture.
func newTestCmd() (*cobra.Command, *bytes.Buffer) {
	buf := new(bytes.Buffer)
	cmd := &cobra.Command{Use: "test"}
	cmd.Flags().Bool(flagNoColor, true, "")
	cmd.Flags().Bool(flagJSON, false, "")
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetContext(config.WithConfig(context.Background(), config.DefaultConfig()))
	return cmd, buf
}

// overrideNewRunner temporarily replaces the newRunner function for testing.
func overrideNewRunner(r git.Runner) func() {
	orig := newRunner
	newRunner = func() git.Runner { return r }
	return func() { newRunner = orig }
}
