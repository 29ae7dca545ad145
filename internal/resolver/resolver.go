// Package resolver flattens a preset and its extends chain into a single
// effective configuration.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	lintlog "github.com/lugassawan/lintcfg/internal/log"
	"github.com/lugassawan/lintcfg/internal/preset"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency bounds how many extends entries of one preset are
// resolved at the same time.
const DefaultConcurrency = 4

// DefaultExternal lists the reference prefixes owned by the lint engine.
var DefaultExternal = []string{"eslint:", "plugin:"}

// Lookup maps a preset reference to its definition. baseDir is the Dir of
// the preset holding the reference ("" for the root) and anchors relative
// paths. Implementations must be safe for concurrent use and return an error
// matching ErrNotFound when nothing matches ref.
type Lookup interface {
	Lookup(ref, baseDir string) (*preset.Preset, error)
}

// LookupFunc adapts a function to the Lookup interface.
type LookupFunc func(ref, baseDir string) (*preset.Preset, error)

// Lookup calls f(ref, baseDir).
func (f LookupFunc) Lookup(ref, baseDir string) (*preset.Preset, error) {
	return f(ref, baseDir)
}

// Resolver resolves preset references through an injected Lookup.
type Resolver struct {
	lookup      Lookup
	external    []string
	concurrency int
	logger      zerolog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithExternal replaces the prefixes of references passed through to the
// lint engine instead of being looked up.
func WithExternal(prefixes ...string) Option {
	return func(r *Resolver) { r.external = slices.Clone(prefixes) }
}

// WithConcurrency sets how many sibling extends entries resolve in parallel.
// Values below 1 resolve sequentially.
func WithConcurrency(n int) Option {
	return func(r *Resolver) { r.concurrency = max(n, 1) }
}

// WithLogger sets the logger used for debug events.
func WithLogger(l zerolog.Logger) Option {
	return func(r *Resolver) { r.logger = l }
}

// New returns a Resolver that finds presets through lookup.
func New(lookup Lookup, opts ...Option) *Resolver {
	r := &Resolver{
		lookup:      lookup,
		external:    slices.Clone(DefaultExternal),
		concurrency: DefaultConcurrency,
		logger:      lintlog.WithComponent("resolver"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve produces the effective configuration of ref. Presets are read
// fresh on every call; the result depends only on their content.
func (r *Resolver) Resolve(ctx context.Context, ref string) (*Effective, error) {
	return r.ResolveFrom(ctx, ref, "")
}

// ResolveFrom is Resolve with relative references anchored at baseDir.
func (r *Resolver) ResolveFrom(ctx context.Context, ref, baseDir string) (*Effective, error) {
	eff, err := r.resolve(ctx, ref, baseDir, nil)
	if err != nil {
		return nil, err
	}
	eff.Root = ref
	return eff, nil
}

// IsExternal reports whether ref is handed to the lint engine unresolved.
func (r *Resolver) IsExternal(ref string) bool {
	for _, p := range r.external {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}

// resolve performs depth-first resolution of ref. stack holds the IDs of the
// presets currently being expanded, root first; it is never mutated so
// parallel branches can share it.
func (r *Resolver) resolve(ctx context.Context, ref, baseDir string, stack []string) (*Effective, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if r.IsExternal(ref) {
		eff := newEffective()
		eff.Extends = []string{ref}
		return eff, nil
	}

	p, err := r.lookup.Lookup(ref, baseDir)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, &UnresolvedError{Ref: ref, Chain: slices.Clone(stack), Err: err}
		}
		return nil, fmt.Errorf("load preset %q: %w", ref, err)
	}

	id := p.ID
	if id == "" {
		id = ref
	}
	if i := slices.Index(stack, id); i >= 0 {
		cycle := append(slices.Clone(stack[i:]), id)
		return nil, &CycleError{Cycle: cycle}
	}

	r.logger.Debug().
		Str("ref", ref).
		Str("id", id).
		Int("depth", len(stack)).
		Int("extends", len(p.Extends)).
		Msg("resolving preset")

	path := append(slices.Clone(stack), id)
	branches, err := r.resolveAll(ctx, p.Extends, p.Dir, path)
	if err != nil {
		return nil, err
	}

	eff := newEffective()
	for _, b := range branches {
		eff.fold(b)
	}
	eff.fold(local(p, id))
	return eff, nil
}

// resolveAll resolves sibling extends entries. With concurrency above one the
// entries run in parallel, but every branch completes and the error of the
// lowest index wins, so the outcome matches sequential resolution.
func (r *Resolver) resolveAll(ctx context.Context, refs []string, baseDir string, stack []string) ([]*Effective, error) {
	results := make([]*Effective, len(refs))

	if r.concurrency <= 1 || len(refs) <= 1 {
		for i, ref := range refs {
			eff, err := r.resolve(ctx, ref, baseDir, stack)
			if err != nil {
				return nil, err
			}
			results[i] = eff
		}
		return results, nil
	}

	errs := make([]error, len(refs))
	var g errgroup.Group
	g.SetLimit(r.concurrency)
	for i, ref := range refs {
		g.Go(func() error {
			results[i], errs[i] = r.resolve(ctx, ref, baseDir, stack)
			return nil
		})
	}
	_ = g.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return results, nil
}
