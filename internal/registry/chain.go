package registry

import (
	"errors"
	"fmt"

	"github.com/lugassawan/lintcfg/internal/preset"
	"github.com/lugassawan/lintcfg/internal/resolver"
)

// Chain tries each lookup in order and returns the first match. A lookup
// failing with anything other than resolver.ErrNotFound stops the search.
type Chain []resolver.Lookup

func (c Chain) Lookup(ref, baseDir string) (*preset.Preset, error) {
	for _, l := range c {
		p, err := l.Lookup(ref, baseDir)
		if err == nil {
			return p, nil
		}
		if !errors.Is(err, resolver.ErrNotFound) {
			return nil, err
		}
	}
	return nil, fmt.Errorf("%q: %w", ref, resolver.ErrNotFound)
}
