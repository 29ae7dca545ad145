package resolver

import (
	"maps"
	"slices"

	"github.com/lugassawan/lintcfg/internal/preset"
)

// Effective is the fully merged configuration produced by resolving a preset
// and everything it extends.
type Effective struct {
	// Root is the reference resolution started from.
	Root string
	// Chain lists the IDs of the presets folded in, in fold order. A preset
	// reached through several branches appears once per branch.
	Chain []string
	// Extends holds external references handed to the lint engine as-is.
	Extends []string

	Parser        string
	ParserOptions preset.ParserOptions
	Env           map[string]bool
	Globals       map[string]preset.GlobalAccess
	Plugins       []string
	Rules         map[string]preset.Rule

	// RuleSources maps each rule to the ID of the preset whose setting won.
	RuleSources map[string]string
}

func newEffective() *Effective {
	return &Effective{
		Env:         map[string]bool{},
		Globals:     map[string]preset.GlobalAccess{},
		Rules:       map[string]preset.Rule{},
		RuleSources: map[string]string{},
	}
}

// Rule returns a rule's effective setting and the preset it came from.
func (e *Effective) Rule(name string) (preset.Rule, string, bool) {
	r, ok := e.Rules[name]
	if !ok {
		return preset.Rule{}, "", false
	}
	return r, e.RuleSources[name], true
}

// RuleNames returns all rule names, sorted.
func (e *Effective) RuleNames() []string {
	return slices.Sorted(maps.Keys(e.Rules))
}

// EnabledRules returns the sorted names of rules whose severity is not off.
func (e *Effective) EnabledRules() []string {
	var names []string
	for _, name := range e.RuleNames() {
		if e.Rules[name].Severity.Enabled() {
			names = append(names, name)
		}
	}
	return names
}

// Document renders the configuration in preset file shape, ready to be
// encoded for the lint engine.
func (e *Effective) Document() *preset.Document {
	p := &preset.Preset{
		Extends:       e.Extends,
		Parser:        e.Parser,
		ParserOptions: e.ParserOptions,
		Env:           e.Env,
		Globals:       e.Globals,
		Plugins:       e.Plugins,
		Rules:         e.Rules,
	}
	return p.Document()
}
