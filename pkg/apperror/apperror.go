package apperror

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrInvalidInput = errors.New("invalid input")
	ErrUnauthorized = errors.New("unauthorized")
	ErrUpstream     = errors.New("upstream failure")
	ErrInternal     = errors.New("internal server error")
)

// AppError pairs a client-safe message with internal detail. Only Message
// ever reaches a response body; Details and Err stay in the logs.
type AppError struct {
	BaseError error
	Message   string
	Details   string
	Err       error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (details: %s, cause: %v)", e.BaseError.Error(), e.Message, e.Details, e.Err)
	}
	return fmt.Sprintf("%s: %s (details: %s)", e.BaseError.Error(), e.Message, e.Details)
}

func (e *AppError) Unwrap() error {
	return e.BaseError
}

func New(base error, msg, details string, err error) *AppError {
	return &AppError{BaseError: base, Message: msg, Details: details, Err: err}
}

// NewBadRequest reports a 400-class domain failure with the given client
// message, e.g. a missing profile.
func NewBadRequest(msg, details string) *AppError {
	return New(ErrInvalidInput, msg, details, nil)
}

// NewNotFound reports a 404-class failure with the given client message.
func NewNotFound(msg, details string) *AppError {
	return New(ErrNotFound, msg, details, nil)
}

func NewInvalidInput(details string, err error) *AppError {
	return New(ErrInvalidInput, "Invalid input provided", details, err)
}

func NewUnauthorized(details string, err error) *AppError {
	return New(ErrUnauthorized, "Invalid credentials", details, err)
}

func NewUpstream(msg, details string, err error) *AppError {
	return New(ErrUpstream, msg, details, err)
}

func NewInternal(details string, err error) *AppError {
	return New(ErrInternal, "Server Error", details, err)
}

func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, ErrUpstream):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// ToJSON renders the wire shape used for every non-validation failure.
func (e *AppError) ToJSON() gin.H {
	return gin.H{"msg": e.Message}
}
