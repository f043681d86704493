package exception

import (
	"errors"
	"fmt"
	"net/http"
)

// ApplicationError is an error that knows the HTTP status it maps to.
type ApplicationError struct {
	Message    string
	StatusCode int
	Cause      error
}

func (e ApplicationError) Error() string {
	if e.Cause == nil {
		return e.Message
	}

	return fmt.Sprintf("%s: %s", e.Message, e.Cause)
}

func (e ApplicationError) Unwrap() error {
	return e.Cause
}

// Is matches sentinels by message and status, whatever their cause.
func (e ApplicationError) Is(target error) bool {
	var targetErr ApplicationError

	if !errors.As(target, &targetErr) {
		return false
	}

	return e.Message == targetErr.Message &&
		e.StatusCode == targetErr.StatusCode
}

// WithCause returns a copy of the sentinel wrapping cause.
func (e ApplicationError) WithCause(cause error) ApplicationError {
	e.Cause = cause
	return e
}

// StatusCode returns the HTTP status carried by err, 500 when it carries none.
func StatusCode(err error) int {
	var appErr ApplicationError
	if errors.As(err, &appErr) && appErr.StatusCode != 0 {
		return appErr.StatusCode
	}

	return http.StatusInternalServerError
}
