package api

import (
	"errors"
	"fmt"
)

// Sentinel errors for the policy API client.
var (
	// ErrMalformedResponse indicates the API returned a body that does not
	// match the expected schema.
	ErrMalformedResponse = errors.New("malformed API response")

	// ErrEmptyToken indicates a listing was attempted without a session token.
	ErrEmptyToken = errors.New("empty session token")
)

// MalformedResponseError describes a response that could not be interpreted.
// It matches ErrMalformedResponse with errors.Is.
type MalformedResponseError struct {
	Endpoint string
	// Field is the missing or invalid field, empty when the body was not JSON.
	Field string
	Err   error
}

func (e *MalformedResponseError) Error() string {
	switch {
	case e.Field != "" && e.Err != nil:
		return fmt.Sprintf("%s from %s: field %q: %v", ErrMalformedResponse, e.Endpoint, e.Field, e.Err)
	case e.Field != "":
		return fmt.Sprintf("%s from %s: missing field %q", ErrMalformedResponse, e.Endpoint, e.Field)
	default:
		return fmt.Sprintf("%s from %s: %v", ErrMalformedResponse, e.Endpoint, e.Err)
	}
}

// Is reports whether target is ErrMalformedResponse.
func (e *MalformedResponseError) Is(target error) bool {
	return target == ErrMalformedResponse
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }

// StatusError is returned when the API answers with a non-2xx status.
type StatusError struct {
	Endpoint   string
	StatusCode int
	// Body is a truncated copy of the response body.
	Body string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("%s returned HTTP %d", e.Endpoint, e.StatusCode)
	}
	return fmt.Sprintf("%s returned HTTP %d: %s", e.Endpoint, e.StatusCode, e.Body)
}
