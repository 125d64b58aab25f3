package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"hellodemo/internal/http/middleware"
)

// errorPayload is the JSON body of every error response.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// publicErrors maps a status to the code and message clients see.
// Statuses missing here are reported as 500 INTERNAL_ERROR.
var publicErrors = map[int]errorEnvelope{
	fiber.StatusBadRequest:         {Code: "BAD_REQUEST", Message: "bad request"},
	fiber.StatusNotFound:           {Code: "NOT_FOUND", Message: "resource not found"},
	fiber.StatusMethodNotAllowed:   {Code: "METHOD_NOT_ALLOWED", Message: "method not allowed"},
	fiber.StatusServiceUnavailable: {Code: "SERVICE_UNAVAILABLE", Message: "dependency unavailable"},
}

var internalError = errorEnvelope{Code: "INTERNAL_ERROR", Message: "internal server error"}

// ErrorHandler answers every error returned by a handler or middleware with
// the JSON envelope. Only *fiber.Error statuses are exposed; anything else,
// including database failures, becomes a 500 whose cause is left to the
// request log.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		env, ok := publicErrors[status]
		if !ok {
			status, env = fiber.StatusInternalServerError, internalError
		}

		rid, _ := c.Locals(middleware.RequestIDLocalKey).(string)
		return c.Status(status).JSON(errorPayload{RequestID: rid, Error: env})
	}
}
