package script

import "errors"

// Errors for script execution.
var (
	// ErrStateClosed is returned when operating on a closed state.
	ErrStateClosed = errors.New("lua state is closed")

	// ErrExecutionTimeout is returned when a run exceeds its timeout.
	ErrExecutionTimeout = errors.New("lua execution timeout")

	// ErrIncompleteEnv is returned by Bind when the environment lacks a
	// document, root or scroll.
	ErrIncompleteEnv = errors.New("script environment is incomplete")
)
