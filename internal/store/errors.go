package store

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned for an unknown id or serial, and equally for
// a record outside the principal's visible scope: an inaccessible row
// is indistinguishable from a nonexistent one.
var ErrNotFound = errors.New("not found")

// ErrStillReferenced is returned when deleting a catalog item that a
// machine, maintenance record or claim still points at. Handlers should
// translate this into an HTTP 409 response.
var ErrStillReferenced = errors.New("reference item is still in use")

// ValidationError is a field-level rejection of request input. It never
// partially applies; the caller can correct the field and resubmit.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func validationErr(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}
