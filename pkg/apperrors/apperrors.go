package apperrors

import (
	"errors"
	"fmt"
)

// Application error taxonomy. Handlers map these sentinels to HTTP statuses;
// services never pick status codes themselves.

var (
	// ErrMalformedRequest indicates a request body that could not be parsed
	ErrMalformedRequest = errors.New("malformed request")

	// ErrRejectedSpam indicates a submission caught by the honeypot filter
	ErrRejectedSpam = errors.New("rejected as spam")

	// ErrMissingRequiredFields indicates one or more required fields absent
	ErrMissingRequiredFields = errors.New("missing required fields")

	// ErrInvalidEmailFormat indicates an email that fails the address pattern
	ErrInvalidEmailFormat = errors.New("invalid email format")

	// ErrUnauthorized indicates a missing or mismatched shared secret
	ErrUnauthorized = errors.New("unauthorized")

	// ErrMisconfiguredServer indicates a required server-side value is unset
	ErrMisconfiguredServer = errors.New("server misconfigured")

	// ErrNotFound indicates a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInternal indicates an internal server error
	ErrInternal = errors.New("internal error")
)

// NotFoundError creates a not found error with context
func NotFoundError(resource string) error {
	return fmt.Errorf("%s %w", resource, ErrNotFound)
}

// MalformedRequestError creates a malformed request error with context
func MalformedRequestError(reason string) error {
	return fmt.Errorf("%s: %w", reason, ErrMalformedRequest)
}

// MisconfiguredError creates a misconfiguration error with context
func MisconfiguredError(what string) error {
	return fmt.Errorf("%s: %w", what, ErrMisconfiguredServer)
}

// InternalError creates an internal error with context
func InternalError(msg string) error {
	return fmt.Errorf("%s: %w", msg, ErrInternal)
}

// Is checks if an error matches a target error (works with wrapped errors)
func Is(err, target error) bool {
	return errors.Is(err, target)
}
