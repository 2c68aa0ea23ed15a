package dispatch

import (
	"context"
	"errors"
)

// ExitCoder is implemented by errors that choose their own exit code.
type ExitCoder interface {
	ExitCode() int
}

// ExitInterrupted is the code used when the run was cancelled by a signal.
const ExitInterrupted = 130

// Error is the single error kind that leaves a dispatch.
type Error struct {
	// Task is the identifier of the task involved, if one was resolved.
	Task    string
	Message string
	Code    int
	Err     error
	// Reported is set when the error was already shown to the user.
	Reported bool
}

// Wrap converts err into an *Error, keeping its message and exit code.
// An *Error in the chain is returned as is.
func Wrap(taskID string, err error) *Error {
	if err == nil {
		return nil
	}

	var de *Error
	if errors.As(err, &de) {
		return de
	}

	e := &Error{Task: taskID, Message: err.Error(), Err: err}

	var ec ExitCoder
	switch {
	case errors.As(err, &ec):
		e.Code = ec.ExitCode()
	case errors.Is(err, context.Canceled):
		e.Code = ExitInterrupted
	}
	return e
}

func (e *Error) Error() string { return e.Message }

func (e *Error) Unwrap() error { return e.Err }

// ExitCode returns the process exit code. A zero code becomes 1 so that a
// failed run never reports success.
func (e *Error) ExitCode() int {
	if e.Code == 0 {
		return 1
	}
	return e.Code
}
