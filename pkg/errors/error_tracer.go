package errors

import "github.com/pkg/errors"

// ErrorTracer carries a message and the underlying error with its stack trace.
type ErrorTracer struct {
	Message string
	Err     error
}

// NewTracer creates a new ErrorTracer with the provided message.
func NewTracer(message string) *ErrorTracer {
	return &ErrorTracer{
		Message: message,
	}
}

// TracerFromError creates a new ErrorTracer from an existing error, preserving the stack trace.
func TracerFromError(err error) *ErrorTracer {
	tracer := NewTracer(err.Error())
	return tracer.Wrap(err)
}

// StackTracer is implemented by errors created with github.com/pkg/errors.
type StackTracer interface {
	StackTrace() errors.StackTrace
}

func (e *ErrorTracer) Error() string {
	if e.Err != nil && e.Message != e.Err.Error() {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ErrorTracer) Unwrap() error {
	return e.Err
}

// Wrap attaches err as the cause. A stack is recorded when err has none.
func (e *ErrorTracer) Wrap(err error) *ErrorTracer {
	e.Err = err
	if _, ok := err.(StackTracer); !ok {
		e.Err = errors.WithStack(err)
	}

	return e
}

// StackTrace returns the stack trace of the underlying error if it implements StackTracer.
func (e *ErrorTracer) StackTrace() errors.StackTrace {
	errWithStack, ok := e.Unwrap().(StackTracer)
	if ok {
		return errWithStack.StackTrace()
	}
	return nil
}
