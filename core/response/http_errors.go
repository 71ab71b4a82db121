package response

import (
	"net/http"
	"strings"
)

// HTTPError represents a structured error response that implements the error interface.
type HTTPError struct {
	Status  int            `json:"-"`                 // HTTP status code (not in JSON)
	Code    string         `json:"code"`              // Machine-readable error code
	Message string         `json:"message"`           // Human-readable message
	Details map[string]any `json:"details,omitempty"` // Optional context
}

// NewHTTPError creates an error for the given status with the default code and message.
func NewHTTPError(status int) HTTPError {
	text := http.StatusText(status)
	if text == "" {
		text = "Unknown Status"
	}
	return HTTPError{
		Status:  status,
		Code:    strings.ReplaceAll(strings.ToLower(strings.ReplaceAll(text, "-", " ")), " ", "_"),
		Message: text,
	}
}

// Error implements the error interface.
func (e HTTPError) Error() string {
	return e.Message
}

// StatusCode returns the HTTP status code for the error.
func (e HTTPError) StatusCode() int {
	return e.Status
}

// Is matches any HTTPError with the same status and code, so that
// errors.Is(err, response.ErrNotFound) works for customized copies.
func (e HTTPError) Is(target error) bool {
	t, ok := target.(HTTPError)
	return ok && t.Status == e.Status && t.Code == e.Code
}

// WithMessage returns a copy of the error with a custom message.
func (e HTTPError) WithMessage(message string) HTTPError {
	e.Message = message
	return e
}

// WithDetails returns a copy of the error with additional details.
func (e HTTPError) WithDetails(details map[string]any) HTTPError {
	e.Details = details
	return e
}

// WithError returns a copy of the error with the cause recorded in details.
func (e HTTPError) WithError(err error) HTTPError {
	details := make(map[string]any, len(e.Details)+1)
	for k, v := range e.Details {
		details[k] = v
	}
	details["cause"] = err.Error()
	e.Details = details
	return e
}

// Predefined HTTP errors using http.StatusText for default messages.
var (
	// 4xx Client Errors
	ErrBadRequest           = NewHTTPError(http.StatusBadRequest)
	ErrUnauthorized         = NewHTTPError(http.StatusUnauthorized)
	ErrForbidden            = NewHTTPError(http.StatusForbidden)
	ErrNotFound             = NewHTTPError(http.StatusNotFound)
	ErrMethodNotAllowed     = NewHTTPError(http.StatusMethodNotAllowed)
	ErrNotAcceptable        = NewHTTPError(http.StatusNotAcceptable)
	ErrRequestTimeout       = NewHTTPError(http.StatusRequestTimeout)
	ErrConflict             = NewHTTPError(http.StatusConflict)
	ErrGone                 = NewHTTPError(http.StatusGone)
	ErrUnsupportedMediaType = NewHTTPError(http.StatusUnsupportedMediaType)
	ErrUnprocessableEntity  = NewHTTPError(http.StatusUnprocessableEntity)
	ErrTooManyRequests      = NewHTTPError(http.StatusTooManyRequests)

	// 5xx Server Errors
	ErrInternalServerError = NewHTTPError(http.StatusInternalServerError)
	ErrNotImplemented      = NewHTTPError(http.StatusNotImplemented)
	ErrBadGateway          = NewHTTPError(http.StatusBadGateway)
	ErrServiceUnavailable  = NewHTTPError(http.StatusServiceUnavailable)
	ErrGatewayTimeout      = NewHTTPError(http.StatusGatewayTimeout)
)
