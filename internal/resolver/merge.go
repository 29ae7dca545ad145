package resolver

import (
	"slices"

	"github.com/lugassawan/lintcfg/internal/preset"
)

// fold merges src into e with src taking precedence: scalars overwrite when
// set, mappings overwrite key by key, sets accumulate and rule tuples are
// replaced whole.
func (e *Effective) fold(src *Effective) {
	e.Chain = append(e.Chain, src.Chain...)
	e.Extends = union(e.Extends, src.Extends)

	if src.Parser != "" {
		e.Parser = src.Parser
	}
	foldParserOptions(&e.ParserOptions, src.ParserOptions)

	for k, v := range src.Env {
		e.Env[k] = v
	}
	for k, v := range src.Globals {
		e.Globals[k] = v
	}
	e.Plugins = union(e.Plugins, src.Plugins)

	for name, r := range src.Rules {
		e.Rules[name] = preset.Rule{Severity: r.Severity, Options: slices.Clone(r.Options)}
		e.RuleSources[name] = src.RuleSources[name]
	}
}

// local wraps a preset's own sections as a single-entry Effective so they
// fold with the same rules as a resolved extends entry.
func local(p *preset.Preset, id string) *Effective {
	e := &Effective{
		Chain:         []string{id},
		Parser:        p.Parser,
		ParserOptions: p.ParserOptions,
		Env:           p.Env,
		Globals:       p.Globals,
		Plugins:       p.Plugins,
		Rules:         p.Rules,
		RuleSources:   make(map[string]string, len(p.Rules)),
	}
	for name := range p.Rules {
		e.RuleSources[name] = id
	}
	return e
}

func foldParserOptions(dst *preset.ParserOptions, src preset.ParserOptions) {
	if src.EcmaVersion != 0 {
		dst.EcmaVersion = src.EcmaVersion
	}
	if src.SourceType != "" {
		dst.SourceType = src.SourceType
	}
	if len(src.EcmaFeatures) > 0 && dst.EcmaFeatures == nil {
		dst.EcmaFeatures = make(map[string]bool, len(src.EcmaFeatures))
	}
	for k, v := range src.EcmaFeatures {
		dst.EcmaFeatures[k] = v
	}
}

// union appends the entries of add missing from base, keeping first-seen order.
func union(base, add []string) []string {
	for _, s := range add {
		if !slices.Contains(base, s) {
			base = append(base, s)
		}
	}
	return base
}
