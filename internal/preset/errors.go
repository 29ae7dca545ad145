package preset

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalid is matched by every decoding or validation failure.
var ErrInvalid = errors.New("invalid preset")

// ValidationError lists the entries of a preset that could not be decoded.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid preset: %s", strings.Join(e.Problems, "; "))
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalid
}
