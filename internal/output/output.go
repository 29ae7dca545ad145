// Package output renders command results for machines: a versioned JSON
// envelope for --json mode and json/yaml/toml documents for resolved presets.
package output

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lugassawan/lintcfg/internal/preset"
)

// Envelope wraps successful --json output.
type Envelope struct {
	Version string `json:"version"`
	Command string `json:"command"`
	Data    any    `json:"data"`
}

// ErrorEnvelope is written instead of Envelope when a command fails.
type ErrorEnvelope struct {
	Version string `json:"version"`
	Command string `json:"command"`
	Error   string `json:"error"`
	Code    string `json:"code"`
}

// SilentError makes the process exit with ExitCode without printing
// anything further. Commands return it after writing their own JSON.
type SilentError struct{ ExitCode int }

func (e *SilentError) Error() string { return fmt.Sprintf("exit %d", e.ExitCode) }

// Failed is the SilentError for a command whose result reports failures.
func Failed() *SilentError { return &SilentError{ExitCode: 1} }

// WriteJSON writes data inside an Envelope.
func WriteJSON(w io.Writer, version, command string, data any) error {
	return Render(w, preset.FormatJSON, Envelope{Version: version, Command: command, Data: data})
}

// WriteError writes err inside an ErrorEnvelope, classified with CodeFor.
func WriteError(w io.Writer, version, command string, err error) error {
	return Render(w, preset.FormatJSON, ErrorEnvelope{
		Version: version,
		Command: command,
		Error:   err.Error(),
		Code:    CodeFor(err),
	})
}

// IsJSON reports whether --json is set on cmd or inherited from a parent.
func IsJSON(cmd *cobra.Command) bool {
	f := cmd.Flag("json")
	if f == nil {
		return false
	}
	on, _ := strconv.ParseBool(f.Value.String())
	return on
}
