package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Sentirse Bien client
var (
	// Token errors
	ErrMalformedToken = errors.New("malformed token")
	ErrNoTokens       = errors.New("no stored tokens")

	// Session errors
	ErrAuthentication = errors.New("authentication failed")
	ErrSessionExpired = errors.New("session expired")
	ErrProfileLoad    = errors.New("profile load failed")

	// Transport errors
	ErrNetwork = errors.New("network error")

	// Navigation errors
	ErrScreenNotReachable = errors.New("screen not reachable")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
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
