package shortcut

import (
	"errors"
	"fmt"
)

// ErrNotFound marks a lookup whose target does not exist (HTTP 404).
// A dangling reference is a normal data state in the remote workspace,
// so callers doing decorative hydration match on this sentinel and
// record an absence marker instead of failing the call.
var ErrNotFound = errors.New("not found")

// APIError is a non-2xx response other than 404. These are genuine
// upstream failures and propagate to the caller.
type APIError struct {
	Status int
	Path   string
	Body   string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("shortcut api: %s returned %d", e.Path, e.Status)
	}
	return fmt.Sprintf("shortcut api: %s returned %d: %s", e.Path, e.Status, e.Body)
}

// IsNotFound reports whether err represents an expected absence
// rather than an upstream failure.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
