package ccerror

import "net/http"

// Tags identifying the error kinds surfaced by the API.
const (
	TagNotFound    = "not-found"
	TagConflict    = "conflict"
	TagValidation  = "validation"
	TagInvalidAuth = "invalid-auth"
	TagForbidden   = "forbidden"
)

type (
	// A CCError represents the error format that can be rendered by the
	// CampusConnect server.
	CCError struct {
		HTTPCode   int `json:"-"`
		FieldError err `json:"error"`
	}

	err struct {
		Tag     string `json:"tag,omitempty"`
		Message string `json:"message"`
	}
)

// StatusCode returns the HTTP status code.
func StatusCode(err error) int {
	if ccerr, ok := err.(*CCError); ok && ccerr.HTTPCode > 0 {
		return ccerr.HTTPCode
	}
	return http.StatusInternalServerError
}

// Tag returns the error's tag, if any.
func Tag(err error) string {
	if ccerr, ok := err.(*CCError); ok {
		return ccerr.FieldError.Tag
	}
	return ""
}

// New returns a new CCError with the given message.
func New(message string) *CCError {
	return &CCError{FieldError: err{Message: message}}
}

// NewWithTagCode returns a new CCError with the given code, tag and message.
func NewWithTagCode(code int, tag, message string) *CCError {
	return &CCError{HTTPCode: code, FieldError: err{Tag: tag, Message: message}}
}

// NotFound returns an error for a reference that does not resolve.
func NotFound(message string) *CCError {
	return NewWithTagCode(http.StatusNotFound, TagNotFound, message)
}

// Conflict returns an error for an action violating a state machine.
func Conflict(message string) *CCError {
	return NewWithTagCode(http.StatusConflict, TagConflict, message)
}

// Validation returns an error for a missing or malformed field, caught
// before any mutating call is issued.
func Validation(message string) *CCError {
	return NewWithTagCode(http.StatusBadRequest, TagValidation, message)
}

// Unauthorized returns an error for a caller lacking a valid session.
func Unauthorized(message string) *CCError {
	return NewWithTagCode(http.StatusUnauthorized, TagInvalidAuth, message)
}

// Forbidden returns an error for a caller lacking the required role.
func Forbidden(message string) *CCError {
	return NewWithTagCode(http.StatusForbidden, TagForbidden, message)
}

// Error implements error interface.
func (e *CCError) Error() string {
	return e.FieldError.Message
}
