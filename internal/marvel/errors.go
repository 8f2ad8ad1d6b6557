package marvel

import (
	"errors"
	"fmt"
)

// ErrNotFound reports a detail lookup that returned no record.
var ErrNotFound = errors.New("character not found")

// TransientFetchError wraps any failure talking to the API: transport errors,
// HTTP error statuses and malformed payloads. Callers may retry.
type TransientFetchError struct {
	Op     string
	Status int // zero when no response was received
	Err    error
}

func (e *TransientFetchError) Error() string {
	if e.Status > 0 {
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransientFetchError) Unwrap() error {
	return e.Err
}

// IsTransient reports whether err is (or wraps) a TransientFetchError.
func IsTransient(err error) bool {
	var target *TransientFetchError
	return errors.As(err, &target)
}
