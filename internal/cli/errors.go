package cli

import (
	"errors"
)

// Exit codes returned by the policyexport binary.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// ErrEmptySecret is returned when the secret prompt yields nothing.
var ErrEmptySecret = errors.New("secret key must not be empty")

// UsageError marks a user error in flags or arguments. It carries the
// message shown to the user and maps to ExitUsage.
type UsageError struct {
	Message string
	Err     error
}

func (e *UsageError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "usage error"
}

func (e *UsageError) Unwrap() error { return e.Err }

// ExitCode maps an error returned by the root command to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		return ExitUsage
	}
	return ExitFailure
}
