package payload

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed is matched (via errors.Is) by every decoding failure.
var ErrMalformed = errors.New("malformed payload")

// MalformedError describes why a payload could not be decoded or walked.
type MalformedError struct {
	Reason string
	Path   []string
}

func (e *MalformedError) Error() string {
	if len(e.Path) == 0 {
		return fmt.Sprintf("malformed payload: %s", e.Reason)
	}
	return fmt.Sprintf("malformed payload at %s: %s", strings.Join(e.Path, " > "), e.Reason)
}

func (e *MalformedError) Unwrap() error {
	return ErrMalformed
}

// TooDeep returns the error reported when nesting exceeds maxDepth.
func TooDeep(path []string, maxDepth int) *MalformedError {
	return &MalformedError{
		Reason: fmt.Sprintf("nesting exceeds %d levels", maxDepth),
		Path:   append([]string(nil), path...),
	}
}
