package errors

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError carries the HTTP status a handler should answer with. Usecases
// return these; helpers.RespError maps them onto the response envelope.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func BadRequest(message string) error {
	return &AppError{Code: fiber.StatusBadRequest, Message: message}
}

func UnauthorizedError(message string) error {
	return &AppError{Code: fiber.StatusUnauthorized, Message: message}
}

func NotFound(message string) error {
	return &AppError{Code: fiber.StatusNotFound, Message: message}
}

func Conflict(message string) error {
	return &AppError{Code: fiber.StatusConflict, Message: message}
}

func InternalServerError(message string) error {
	return &AppError{Code: fiber.StatusInternalServerError, Message: message}
}

// HttpCode extracts the status for an error, defaulting to 500 for anything
// that is not an AppError.
func HttpCode(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Code
	}
	return fiber.StatusInternalServerError
}
