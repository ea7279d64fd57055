package domain

import (
	"errors"
	"sort"
	"strings"
)

// Common domain errors
var (
	ErrNotFound        = errors.New("resource not found")
	ErrForbidden       = errors.New("you do not have permission to perform this action")
	ErrUnauthenticated = errors.New("authentication credentials were not provided")
	ErrInternalServer  = errors.New("internal server error")
)

// Account errors
var (
	ErrDuplicateIdentity   = errors.New("an account with this email or phone already exists")
	ErrInvalidRole         = errors.New("role must be client or handyman")
	ErrInvalidCredentials  = errors.New("no active account found with the given credentials")
	ErrInvalidToken        = errors.New("token is invalid")
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenRevoked        = errors.New("token has been revoked")
	ErrProtectedAccount    = errors.New("admin accounts cannot be deactivated")
	ErrCannotChangeOwnRole = errors.New("cannot change your own role")
	ErrCannotDeleteSelf    = errors.New("cannot delete your own account")
)

// Job errors
var (
	ErrAlreadyAssigned   = errors.New("job request already has a handyman assigned")
	ErrInvalidTransition = errors.New("invalid job status transition")
)

// Reputation errors
var (
	ErrJobNotCompleted = errors.New("reviews can only be left for completed jobs")
	ErrDuplicateReview = errors.New("this job has already been reviewed")
)

// Profile errors
var (
	ErrProfileExists = errors.New("handyman profile already exists")
)

// ValidationError reports malformed or missing input, optionally per field
type ValidationError struct {
	Message string
	Fields  map[string]string
}

// NewValidationError creates a validation error with an optional field map
func NewValidationError(message string, fields map[string]string) *ValidationError {
	return &ValidationError{Message: message, Fields: fields}
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, len(keys))
	for i, k := range keys {
		parts[i] = k + ": " + e.Fields[k]
	}
	return e.Message + " (" + strings.Join(parts, "; ") + ")"
}

// IsValidation reports whether err is, or wraps, a *ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
