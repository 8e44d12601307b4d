// Package apperr defines the error taxonomy shared by the domain
// packages. Handlers map these to HTTP statuses; the domain never
// imports net/http.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound marks an unknown module, course or user.
	ErrNotFound = errors.New("not found")
	// ErrForbidden marks an operation on a locked or incomplete resource.
	ErrForbidden = errors.New("forbidden")
	// ErrValidation marks a malformed request payload.
	ErrValidation = errors.New("validation failed")
	// ErrConflict marks a uniqueness violation (e.g. duplicate email).
	ErrConflict = errors.New("conflict")
)

func NotFoundf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrNotFound}, args...)...)
}

func Forbiddenf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrForbidden}, args...)...)
}

func Validationf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrValidation}, args...)...)
}

func Conflictf(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrConflict}, args...)...)
}
