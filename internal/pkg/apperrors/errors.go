package apperrors

import "errors"

// Common errors
var (
	// Resource errors
	ErrNotFound = errors.New("not found")

	// Authentication errors
	ErrMissingCredentials = errors.New("missing credentials")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotAuthenticated   = errors.New("authentication required")
	ErrCSRFFailed         = errors.New("csrf verification failed")

	// Validation errors
	ErrValidationFailed = errors.New("validation failed")

	// Account errors
	ErrEmailAlreadyRegistered = errors.New("email already registered")
)

// Writer profile errors
var (
	ErrWriterRoleRequired  = errors.New("only writer accounts can create writer profiles")
	ErrWriterProfileExists = errors.New("writer profile already exists")
)

// DetailError wraps a sentinel error with the human-readable detail string
// surfaced to API clients.
type DetailError struct {
	Err    error
	Detail string
}

// Error implements the error interface
func (e *DetailError) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap
func (e *DetailError) Unwrap() error {
	return e.Err
}

// NewValidationError creates a 400-class error with a client-facing detail.
func NewValidationError(detail string) error {
	return &DetailError{Err: ErrValidationFailed, Detail: detail}
}

// NewNotFoundError creates a 404-class error with a client-facing detail.
func NewNotFoundError(detail string) error {
	return &DetailError{Err: ErrNotFound, Detail: detail}
}

// Detail extracts the client-facing detail string from an error chain,
// falling back to the given default.
func Detail(err error, fallback string) string {
	var de *DetailError
	if errors.As(err, &de) && de.Detail != "" {
		return de.Detail
	}
	return fallback
}
