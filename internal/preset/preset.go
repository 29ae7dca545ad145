// Package preset defines lint presets: named bundles of rule settings,
// environments, globals, plugins and parser selection that can extend other
// presets.
package preset

import (
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"sort"

	"gopkg.in/yaml.v3"
)

// ParserOptions configures the parser selected by a preset.
type ParserOptions struct {
	EcmaVersion  int             `json:"ecmaVersion,omitempty" yaml:"ecmaVersion,omitempty" toml:"ecmaVersion,omitempty"`
	SourceType   string          `json:"sourceType,omitempty" yaml:"sourceType,omitempty" toml:"sourceType,omitempty"`
	EcmaFeatures map[string]bool `json:"ecmaFeatures,omitempty" yaml:"ecmaFeatures,omitempty" toml:"ecmaFeatures,omitempty"`
}

// IsZero reports whether no parser option is set.
func (o ParserOptions) IsZero() bool {
	return o.EcmaVersion == 0 && o.SourceType == "" && len(o.EcmaFeatures) == 0
}

// Preset is a decoded preset definition.
type Preset struct {
	// ID is the canonical identity assigned by the lookup that produced the
	// preset. Two references resolving to the same definition share an ID.
	ID string
	// Dir is the directory relative extends entries are resolved against.
	Dir string

	Extends       []string
	Parser        string
	ParserOptions ParserOptions
	Env           map[string]bool
	Globals       map[string]GlobalAccess
	Plugins       []string
	Rules         map[string]Rule
}

// StringList decodes either a single string or a list of strings.
type StringList []string

func (l *StringList) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		*l = StringList{s}
		return nil
	}
	var list []string
	if err := value.Decode(&list); err != nil {
		return err
	}
	*l = list
	return nil
}

func (l *StringList) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*l = StringList{s}
		return nil
	}
	var list []string
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*l = list
	return nil
}

// Document is the on-disk shape of a preset. Rule and global values are kept
// untyped so the same struct serves the JSON, YAML and TOML codecs.
type Document struct {
	Extends       StringList      `json:"extends,omitempty" yaml:"extends,omitempty" toml:"extends,omitempty"`
	Parser        string          `json:"parser,omitempty" yaml:"parser,omitempty" toml:"parser,omitempty"`
	ParserOptions *ParserOptions  `json:"parserOptions,omitempty" yaml:"parserOptions,omitempty" toml:"parserOptions,omitempty"`
	Env           map[string]bool `json:"env,omitempty" yaml:"env,omitempty" toml:"env,omitempty"`
	Globals       map[string]any  `json:"globals,omitempty" yaml:"globals,omitempty" toml:"globals,omitempty"`
	Plugins       []string        `json:"plugins,omitempty" yaml:"plugins,omitempty" toml:"plugins,omitempty"`
	Rules         map[string]any  `json:"rules,omitempty" yaml:"rules,omitempty" toml:"rules,omitempty"`
}

// Preset converts the document into a typed Preset. Invalid rule severities
// and global values are reported together, sorted by key.
func (d *Document) Preset() (*Preset, error) {
	p := &Preset{
		Extends: slices.Clone([]string(d.Extends)),
		Parser:  d.Parser,
		Env:     maps.Clone(d.Env),
		Plugins: slices.Clone(d.Plugins),
	}
	if d.ParserOptions != nil {
		p.ParserOptions = *d.ParserOptions
		p.ParserOptions.EcmaFeatures = maps.Clone(d.ParserOptions.EcmaFeatures)
	}

	var problems []string
	if len(d.Globals) > 0 {
		p.Globals = make(map[string]GlobalAccess, len(d.Globals))
		for name, v := range d.Globals {
			access, err := ParseGlobal(v)
			if err != nil {
				problems = append(problems, fmt.Sprintf("global %q: %v", name, err))
				continue
			}
			p.Globals[name] = access
		}
	}
	if len(d.Rules) > 0 {
		p.Rules = make(map[string]Rule, len(d.Rules))
		for name, v := range d.Rules {
			r, err := ParseRule(v)
			if err != nil {
				problems = append(problems, fmt.Sprintf("rule %q: %v", name, err))
				continue
			}
			p.Rules[name] = r
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return nil, &ValidationError{Problems: problems}
	}
	return p, nil
}

// Document converts the preset back into its file shape.
func (p *Preset) Document() *Document {
	d := &Document{
		Extends: slices.Clone(p.Extends),
		Parser:  p.Parser,
		Env:     maps.Clone(p.Env),
		Plugins: slices.Clone(p.Plugins),
	}
	if !p.ParserOptions.IsZero() {
		opts := p.ParserOptions
		opts.EcmaFeatures = maps.Clone(opts.EcmaFeatures)
		d.ParserOptions = &opts
	}
	if len(p.Globals) > 0 {
		d.Globals = make(map[string]any, len(p.Globals))
		for name, access := range p.Globals {
			d.Globals[name] = string(access)
		}
	}
	if len(p.Rules) > 0 {
		d.Rules = make(map[string]any, len(p.Rules))
		for name, r := range p.Rules {
			d.Rules[name] = r.Value()
		}
	}
	return d
}
