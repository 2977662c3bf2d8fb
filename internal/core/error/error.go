package errx

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an AppError independently of its HTTP status.
type Kind string

const (
	KindNotFound   Kind = "not_found"
	KindValidation Kind = "validation_error"
	KindUpstream   Kind = "upstream_error"
	KindConfig     Kind = "config_error"
	KindUnexpected Kind = "unexpected_error"
)

// AppError wraps an underlying error with a kind, an HTTP status and a safe message.
type AppError struct {
	Kind    Kind
	Err     error
	Status  int
	Message string
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the underlying error for errors.Is / errors.As support.
func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with the provided information.
func New(kind Kind, err error, status int, message string) *AppError {
	return &AppError{
		Kind:    kind,
		Err:     err,
		Status:  status,
		Message: message,
	}
}

func NotFound(message string) *AppError {
	return New(KindNotFound, nil, http.StatusNotFound, message)
}

func Validation(message string) *AppError {
	return New(KindValidation, nil, http.StatusBadRequest, message)
}

// Upstream reports a failed call to a remote dependency. A zero status maps to 502.
func Upstream(err error, status int, message string) *AppError {
	if status == 0 {
		status = http.StatusBadGateway
	}
	return New(KindUpstream, err, status, message)
}

func Config(message string) *AppError {
	return New(KindConfig, nil, http.StatusInternalServerError, message)
}

func Unexpected(err error, message string) *AppError {
	return New(KindUnexpected, err, http.StatusInternalServerError, message)
}

// As recovers the AppError from err. Plain errors are reported as Unexpected.
func As(err error) *AppError {
	if err == nil {
		return nil
	}
	var ae *AppError
	if errors.As(err, &ae) {
		return ae
	}
	return Unexpected(err, err.Error())
}

// IsKind reports whether err carries an AppError of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *AppError
	return errors.As(err, &ae) && ae.Kind == kind
}
