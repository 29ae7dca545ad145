package output

import (
	"errors"

	"github.com/lugassawan/lintcfg/internal/manifest"
	"github.com/lugassawan/lintcfg/internal/preset"
	"github.com/lugassawan/lintcfg/internal/release"
	"github.com/lugassawan/lintcfg/internal/resolver"
)

// Error codes carried by ErrorEnvelope.
const (
	ErrGeneral    = "GENERAL_ERROR"
	ErrUnresolved = "UNRESOLVED_PRESET"
	ErrCycle      = "PRESET_CYCLE"
	ErrInvalid    = "INVALID_INPUT"
	ErrRelease    = "RELEASE_FAILED"
)

// CodeFor classifies err into one of the error code constants.
func CodeFor(err error) string {
	var stepErr *release.StepError
	switch {
	case errors.Is(err, resolver.ErrCycle):
		return ErrCycle
	case errors.Is(err, resolver.ErrUnresolved):
		return ErrUnresolved
	case errors.As(err, &stepErr):
		return ErrRelease
	case errors.Is(err, preset.ErrInvalid), errors.Is(err, manifest.ErrInvalid):
		return ErrInvalid
	default:
		return ErrGeneral
	}
}
