package api

import (
	"errors"
	"fmt"
)

// Common client errors.
var (
	// ErrNotOK indicates the backend answered 200 but reported ok=false
	// without an error message.
	ErrNotOK = errors.New("backend reported not ok")
)

// Error is a backend-reported failure: a non-success HTTP status plus
// the error string from the JSON body. Its message is meant to be
// surfaced to the user verbatim.
type Error struct {
	Status  int
	Message string
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("backend error (status %d)", e.Status)
}

// AsBackendError extracts a backend *Error from err, if present.
// Transport failures (no response at all) return nil, false.
func AsBackendError(err error) (*Error, bool) {
	var be *Error
	if errors.As(err, &be) {
		return be, true
	}
	return nil, false
}
