package serverutils

import (
	"errors"

	"github.com/gofiber/fiber/v2"
)

// AppError carries a status code so services can signal HTTP semantics
// without importing fiber.
type AppError struct {
	Code    int
	Message string
}

func (e *AppError) Error() string {
	return e.Message
}

func NewAppError(code int, message string) *AppError {
	return &AppError{Code: code, Message: message}
}

func NewNotFoundError(message string) *AppError {
	return NewAppError(fiber.StatusNotFound, message)
}

func NewBadRequestError(message string) *AppError {
	return NewAppError(fiber.StatusBadRequest, message)
}

func NewForbiddenError(message string) *AppError {
	return NewAppError(fiber.StatusForbidden, message)
}

func NewTooManyRequestsError(message string) *AppError {
	return NewAppError(fiber.StatusTooManyRequests, message)
}

// ErrorHandlerMiddleware converts errors bubbling out of handlers into the
// standard envelope. Unknown errors become opaque 500s so internals never
// leak to clients.
func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}

		var appErr *AppError
		if errors.As(err, &appErr) {
			return ctx.Status(appErr.Code).JSON(ErrorResponse(appErr.Message))
		}

		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			return ctx.Status(fiberErr.Code).JSON(ErrorResponse(fiberErr.Message))
		}

		return ctx.Status(fiber.StatusInternalServerError).JSON(ErrorResponse("Internal server error"))
	}
}
