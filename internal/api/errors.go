package api

import (
	"errors"
	"fmt"
)

// ErrSessionExpired is returned when a request is rejected for authorization
// reasons. The client has already fired the unauthorized hook by the time a
// caller sees this error; views should not surface it as a request failure.
var ErrSessionExpired = errors.New("session expired")

// AuthenticationError reports a rejected login or registration. Message is
// the server-supplied reason when the response carried one, otherwise a
// generic fallback.
type AuthenticationError struct {
	Message string
}

func (e *AuthenticationError) Error() string { return e.Message }

// NetworkError wraps a transport-level failure (timeout, connectivity).
// These are transient; retrying is the caller's call, not the client's.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string { return fmt.Sprintf("%s: %v", e.Op, e.Err) }
func (e *NetworkError) Unwrap() error { return e.Err }

// StatusError reports a non-2xx response outside the authorization path.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("server returned %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("server returned %d", e.StatusCode)
}
