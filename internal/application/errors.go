package application

import (
	"errors"
	"fmt"
)

// Application error types
var (
	ErrNotReady = errors.New("application is still starting")
)

// StartupError represents a failure while wiring the application
type StartupError struct {
	Operation string
	Err       error
}

func (e *StartupError) Error() string {
	return fmt.Sprintf("startup %s failed: %v", e.Operation, e.Err)
}

func (e *StartupError) Unwrap() error {
	return e.Err
}

// NewStartupError creates a new startup error
func NewStartupError(operation string, err error) *StartupError {
	return &StartupError{
		Operation: operation,
		Err:       err,
	}
}
