package resolver

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is returned (possibly wrapped) by a Lookup when a
	// reference does not name any preset definition.
	ErrNotFound = errors.New("preset not found")
	// ErrUnresolved matches every *UnresolvedError.
	ErrUnresolved = errors.New("unresolved preset reference")
	// ErrCycle matches every *CycleError.
	ErrCycle = errors.New("preset extension cycle")
)

// UnresolvedError reports a reference no lookup could resolve, together with
// the chain of presets that led to it (root first).
type UnresolvedError struct {
	Ref   string
	Chain []string
	Err   error
}

func (e *UnresolvedError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unresolved preset reference %q", e.Ref)
	if len(e.Chain) > 0 {
		fmt.Fprintf(&b, " (extended from %s)", strings.Join(e.Chain, " -> "))
	}
	if e.Err != nil && !errors.Is(e.Err, ErrNotFound) {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *UnresolvedError) Unwrap() error { return e.Err }

func (e *UnresolvedError) Is(target error) bool { return target == ErrUnresolved }

// CycleError reports a preset that transitively extends itself. Cycle starts
// and ends with the same preset ID.
type CycleError struct {
	Cycle []string
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("preset extends itself: %s", strings.Join(e.Cycle, " -> "))
}

func (e *CycleError) Is(target error) bool { return target == ErrCycle }
