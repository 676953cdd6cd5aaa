package app

import "errors"

// Application errors.
var (
	// ErrAlreadyRunning indicates Run was called while the editor runs.
	ErrAlreadyRunning = errors.New("application already running")

	// ErrInvalidLogLevel indicates an unknown log level name.
	ErrInvalidLogLevel = errors.New("invalid log level")
)

// InitError represents an initialization error.
type InitError struct {
	Component string
	Err       error
}

func (e *InitError) Error() string {
	return "init " + e.Component + ": " + e.Err.Error()
}

func (e *InitError) Unwrap() error {
	return e.Err
}
