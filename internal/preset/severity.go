package preset

import (
	"fmt"
	"math"
	"strings"
)

// Severity is the reporting level of a rule.
type Severity int

const (
	Off Severity = iota
	Warn
	Error
)

var severityNames = [...]string{"off", "warn", "error"}

func (s Severity) String() string {
	if s < Off || s > Error {
		return fmt.Sprintf("Severity(%d)", int(s))
	}
	return severityNames[s]
}

// Enabled reports whether the rule produces diagnostics.
func (s Severity) Enabled() bool {
	return s != Off
}

// ParseSeverity accepts the string forms ("off", "warn", "error") and the
// numeric forms (0, 1, 2) used by preset files. Numbers may arrive as any of
// the integer or float types produced by the JSON, YAML and TOML decoders.
func ParseSeverity(v any) (Severity, error) {
	switch x := v.(type) {
	case Severity:
		return checkSeverity(int64(x), v)
	case string:
		for i, name := range severityNames {
			if strings.EqualFold(x, name) {
				return Severity(i), nil
			}
		}
		return Off, fmt.Errorf("invalid severity %q (want off, warn or error)", x)
	case int:
		return checkSeverity(int64(x), v)
	case int64:
		return checkSeverity(x, v)
	case uint64:
		if x > math.MaxInt64 {
			return Off, fmt.Errorf("invalid severity %v", v)
		}
		return checkSeverity(int64(x), v)
	case float64:
		if x != math.Trunc(x) {
			return Off, fmt.Errorf("invalid severity %v", v)
		}
		return checkSeverity(int64(x), v)
	default:
		return Off, fmt.Errorf("invalid severity %v (%T)", v, v)
	}
}

func checkSeverity(n int64, orig any) (Severity, error) {
	if n < int64(Off) || n > int64(Error) {
		return Off, fmt.Errorf("invalid severity %v (want 0, 1 or 2)", orig)
	}
	return Severity(n), nil
}
