package utils

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type ErrorKind int

const (
	ErrInternal ErrorKind = iota
	ErrValidation
	ErrNotFound
	ErrConflict
	ErrAuth
)

// AppError is the error type handlers and queries exchange. The kind decides
// the HTTP status at the top-level error handler.
type AppError struct {
	Kind    ErrorKind
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Status() int {
	switch e.Kind {
	case ErrValidation:
		return http.StatusBadRequest
	case ErrNotFound:
		return http.StatusNotFound
	case ErrConflict:
		return http.StatusConflict
	case ErrAuth:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func NewValidationError(msg string) *AppError {
	return &AppError{Kind: ErrValidation, Message: msg}
}

func NewNotFoundError(msg string) *AppError {
	return &AppError{Kind: ErrNotFound, Message: msg}
}

func NewConflictError(msg string) *AppError {
	return &AppError{Kind: ErrConflict, Message: msg}
}

func NewAuthError(msg string) *AppError {
	return &AppError{Kind: ErrAuth, Message: msg}
}

func NewInternalError(msg string) *AppError {
	return &AppError{Kind: ErrInternal, Message: msg}
}

// KindOf reports the error kind, ErrInternal for anything untyped.
func KindOf(err error) ErrorKind {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return ErrInternal
}

func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// ErrorHandler is the single top-level error boundary: typed errors map to
// their status, anything else is a 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status()).SendString(appErr.Message)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).SendString(fiberErr.Message)
	}

	logrus.WithError(err).Error("unhandled error")
	return c.Status(fiber.StatusInternalServerError).SendString("Something went wrong")
}
