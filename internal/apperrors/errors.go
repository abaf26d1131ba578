package apperrors

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

// AppError carries the HTTP status an error should surface as, so handlers
// never inspect error strings to decide a response code.
type AppError struct {
	Status  int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(status int, message string, err error) *AppError {
	return &AppError{Status: status, Message: message, Err: err}
}

func InvalidInput(message string) *AppError {
	return New(fiber.StatusBadRequest, message, nil)
}

func NotFound(message string) *AppError {
	return New(fiber.StatusNotFound, message, nil)
}

func Conflict(message string) *AppError {
	return New(fiber.StatusConflict, message, nil)
}

func Forbidden(message string) *AppError {
	return New(fiber.StatusForbidden, message, nil)
}

func Unauthorized(message string) *AppError {
	return New(fiber.StatusUnauthorized, message, nil)
}

func InvalidState(message string) *AppError {
	return New(fiber.StatusUnprocessableEntity, message, nil)
}

func Storage(message string, err error) *AppError {
	return New(fiber.StatusInternalServerError, message, err)
}

func Extraction(message string, err error) *AppError {
	return New(fiber.StatusInternalServerError, message, err)
}

func Internal(message string, err error) *AppError {
	return New(fiber.StatusInternalServerError, message, err)
}

// IsStatus reports whether err is an AppError carrying the given status.
func IsStatus(err error, status int) bool {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status == status
	}
	return false
}

// Handler is the Fiber error handler translating AppError (and fiber.Error)
// into JSON error responses.
func Handler(c *fiber.Ctx, err error) error {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(fiber.Map{
			"error": appErr.Message,
			"code":  appErr.Status,
		})
	}

	code := fiber.StatusInternalServerError
	if e, ok := err.(*fiber.Error); ok {
		code = e.Code
	}

	return c.Status(code).JSON(fiber.Map{
		"error": err.Error(),
		"code":  code,
	})
}
