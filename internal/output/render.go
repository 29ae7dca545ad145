package output

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/lugassawan/lintcfg/internal/preset"
)

// Encode serializes v in the given format. JSON is indented with two
// spaces, and so is YAML, matching how lint configs are usually written.
func Encode(format preset.Format, v any) ([]byte, error) {
	var buf bytes.Buffer
	switch format {
	case preset.FormatJSON:
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
	case preset.FormatYAML:
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		if err := enc.Close(); err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
	case preset.FormatTOML:
		enc := toml.NewEncoder(&buf)
		enc.SetIndentTables(true)
		if err := enc.Encode(v); err != nil {
			return nil, fmt.Errorf("encode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported output format %q", format)
	}
	return buf.Bytes(), nil
}

// Render writes v to w in the given format.
func Render(w io.Writer, format preset.Format, v any) error {
	data, err := Encode(format, v)
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}
