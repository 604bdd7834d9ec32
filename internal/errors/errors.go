package errors

import (
	"errors"
	"fmt"
)

// Common error types for the appeals API client
var (
	// Session errors
	ErrLoginRequired   = errors.New("login required")
	ErrNoRefreshToken  = errors.New("no refresh token available")
	ErrSessionNotFound = errors.New("session not found")

	// Token errors
	ErrInvalidToken   = errors.New("invalid token")
	ErrTokenExpired   = errors.New("token expired")
	ErrMissingSubject = errors.New("token missing sub claim")

	// Transport errors
	ErrNoResponse = errors.New("no response from server, please check your connection")

	// General errors
	ErrNotFound       = errors.New("not found")
	ErrInvalidRequest = errors.New("invalid request")
	ErrJobFailed      = errors.New("job failed")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// New is a passthrough to the standard library so callers only import one errors package
func New(text string) error {
	return errors.New(text)
}
