package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/lugassawan/lintcfg/cmd"
	"github.com/lugassawan/lintcfg/internal/output"
)

func main() {
	if err := cmd.Execute(); err != nil {
		var silent *output.SilentError
		if errors.As(err, &silent) {
			os.Exit(silent.ExitCode)
		}

		if cmd.IsJSONMode() {
			_ = output.WriteError(os.Stdout, cmd.Version(), cmd.CommandName(), err)
			os.Exit(1)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
