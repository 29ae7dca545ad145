package preset

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Rule is a rule setting: a severity optionally followed by rule-specific
// options. The tuple is always replaced as a whole when presets are merged.
type Rule struct {
	Severity Severity
	Options  []any
}

// ParseRule decodes a rule value as written in a preset file: either a bare
// severity or a list whose first element is the severity.
func ParseRule(v any) (Rule, error) {
	list, ok := v.([]any)
	if !ok {
		sev, err := ParseSeverity(v)
		if err != nil {
			return Rule{}, err
		}
		return Rule{Severity: sev}, nil
	}

	if len(list) == 0 {
		return Rule{}, errors.New("empty rule setting")
	}
	sev, err := ParseSeverity(list[0])
	if err != nil {
		return Rule{}, err
	}
	r := Rule{Severity: sev}
	if len(list) > 1 {
		r.Options = append([]any(nil), list[1:]...)
	}
	return r, nil
}

// Value returns the rule in preset file form: the severity name when there
// are no options, otherwise a list led by the severity name.
func (r Rule) Value() any {
	if len(r.Options) == 0 {
		return r.Severity.String()
	}
	out := make([]any, 0, len(r.Options)+1)
	out = append(out, r.Severity.String())
	return append(out, r.Options...)
}

func (r Rule) String() string {
	if len(r.Options) == 0 {
		return r.Severity.String()
	}
	opts, err := json.Marshal(r.Options)
	if err != nil {
		return fmt.Sprintf("%s %v", r.Severity, r.Options)
	}
	return fmt.Sprintf("%s %s", r.Severity, opts)
}

func (r Rule) MarshalJSON() ([]byte, error) {
	return json.Marshal(r.Value())
}

func (r *Rule) UnmarshalJSON(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	parsed, err := ParseRule(v)
	if err != nil {
		return err
	}
	*r = parsed
	return nil
}

func (r Rule) MarshalYAML() (any, error) {
	return r.Value(), nil
}
