package apperrors

import (
	"errors"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrUnexpectedContent indicates the backend (or something in front of it)
// answered with a non-JSON body where JSON was expected, e.g. an HTML error
// page from a proxy or auth layer.
var ErrUnexpectedContent = errors.New("unexpected response content type")

// ErrSubmitInFlight indicates a write for this page is still settling and a
// duplicate submission was refused.
var ErrSubmitInFlight = errors.New("a submission is already in progress")

// RequestError carries a failed backend call: the HTTP status and the
// backend-supplied error message, falling back to the status text.
type RequestError struct {
	Status  int
	Message string
}

func (e *RequestError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return http.StatusText(e.Status)
}

// NewRequestError builds a RequestError, substituting the HTTP status text
// when the backend provided no message.
func NewRequestError(status int, message string) *RequestError {
	if message == "" {
		message = http.StatusText(status)
	}
	return &RequestError{Status: status, Message: message}
}

// DisplayMessage converts any error recovered at the page level into the
// inline string shown to the user.
func DisplayMessage(err error) string {
	if err == nil {
		return ""
	}
	var reqErr *RequestError
	if errors.As(err, &reqErr) {
		return reqErr.Error()
	}
	return err.Error()
}
