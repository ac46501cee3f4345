package errors

import stderrors "errors"

// ErrorDetails represents detailed information about an error.
type ErrorDetails struct {
	// Message (required) is the human readable error message.
	// E.g. "insufficient cash for buy".
	Message string

	// Code (required) is one of the ErrorCode values as a string.
	// E.g. "insufficient_cash".
	Code string

	// Field (optional) is the related field or operation the error occurred on, if any.
	Field string
}

// NewErrorDetails creates a new ErrorDetails struct with the given parameters.
func NewErrorDetails(message, code, field string) *ErrorDetails {
	return &ErrorDetails{
		Message: message,
		Code:    code,
		Field:   field,
	}
}

// Error() is used to implement the Golang `error` interface.
func (e *ErrorDetails) Error() string {
	return e.Message
}

// AsErrorDetails finds the first ErrorDetails in err's chain.
func AsErrorDetails(err error) (*ErrorDetails, bool) {
	var details *ErrorDetails
	if stderrors.As(err, &details) {
		return details, true
	}
	return nil, false
}

// ErrorCodeEquals checks whether a given `error` has a specific code.
// Wrapped errors are unwrapped until an ErrorDetails is found.
func ErrorCodeEquals(err error, code string) bool {
	errDetails, ok := AsErrorDetails(err)
	if !ok {
		return false
	}

	return errDetails.Code == code
}
