package client

import (
	"errors"
	"fmt"
)

var (
	// ErrUnavailable covers transport failures and 5xx responses.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized covers 401/403 on authenticated endpoints.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidCredentials is the distinguished login rejection.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// APIError is a non-2xx response, carrying the server-provided message when
// one was present in the body. It unwraps to a sentinel where the status
// has one, so errors.Is and errors.As both work on the same value.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("api error %d", e.StatusCode)
}

func (e *APIError) Unwrap() error {
	switch {
	case e.StatusCode == 401 || e.StatusCode == 403:
		return ErrUnauthorized
	case e.StatusCode >= 500:
		return ErrUnavailable
	}
	return nil
}
