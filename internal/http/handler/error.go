package handler

import (
	"errors"
	"log/slog"

	sentryfiber "github.com/getsentry/sentry-go/fiber"
	"github.com/gofiber/fiber/v2"

	"nutritrack/internal/http/middleware"
	"nutritrack/internal/service"
	"nutritrack/internal/validator"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// requestIDFromCtx extracts request_id previously stored by middleware.RequestID.
func requestIDFromCtx(c *fiber.Ctx) string {
	if v := c.Locals(middleware.RequestIDLocalKey); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// writeError writes a standardized JSON error response without leaking internal errors.
//
// Parameters:
// - status: HTTP status code to return
// - code: machine-readable short error code (e.g., "INVALID_ID", "NOT_FOUND", "INTERNAL_ERROR")
// - message: human-readable safe message (no internal details)
func writeError(c *fiber.Ctx, status int, code, message string) error {
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    code,
			Message: message,
		},
	}
	return c.Status(status).JSON(res)
}

type errorMapping struct {
	target  error
	status  int
	code    string
	message string
}

// Checked in order; the first match wins.
var serviceErrors = []errorMapping{
	{service.ErrInvalidID, fiber.StatusBadRequest, "INVALID_ID", "invalid id format"},
	{service.ErrInvalidDate, fiber.StatusBadRequest, "INVALID_DATE", "date must be YYYY-MM-DD"},
	{service.ErrInvalidImage, fiber.StatusBadRequest, "INVALID_IMAGE", "failed to decode image"},
	{service.ErrReaderNil, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required"},
	{service.ErrFoodNameRequired, fiber.StatusBadRequest, "NAME_REQUIRED", "name is required"},
	{service.ErrIncorrectPassword, fiber.StatusBadRequest, "INCORRECT_PASSWORD", "current password is incorrect"},
	{service.ErrInvalidStatus, fiber.StatusBadRequest, "INVALID_STATUS", "invalid status"},
	{service.ErrInvalidCredentials, fiber.StatusUnauthorized, "INVALID_CREDENTIALS", "invalid email or password"},
	{service.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND", "user not found"},
	{service.ErrMealNotFound, fiber.StatusNotFound, "NOT_FOUND", "meal not found"},
	{service.ErrEntryNotFound, fiber.StatusNotFound, "NOT_FOUND", "meal entry not found"},
	{service.ErrImageNotFound, fiber.StatusNotFound, "NOT_FOUND", "image not found"},
	{service.ErrTicketNotFound, fiber.StatusNotFound, "NOT_FOUND", "support message not found"},
	{service.ErrEmailTaken, fiber.StatusConflict, "ALREADY_EXISTS", "email already in use"},
	{service.ErrInvalidStatusTransition, fiber.StatusConflict, "INVALID_TRANSITION", "status can only move forward"},
	{service.ErrUpstream, fiber.StatusBadGateway, "UPSTREAM_ERROR", "upstream service failed"},
}

// writeServiceError translates a service error into the error envelope.
// Unknown errors are logged, reported to Sentry and answered with 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	for _, m := range serviceErrors {
		if errors.Is(err, m.target) {
			if m.status >= fiber.StatusInternalServerError {
				slog.WarnContext(c.UserContext(), "upstream failure",
					"request_id", requestIDFromCtx(c), "path", c.Path(), "error", err)
			}
			return writeError(c, m.status, m.code, m.message)
		}
	}
	return internalError(c, err)
}

func internalError(c *fiber.Ctx, err error) error {
	slog.ErrorContext(c.UserContext(), "request failed",
		"request_id", requestIDFromCtx(c), "method", c.Method(), "path", c.Path(), "error", err)
	if hub := sentryfiber.GetHubFromContext(c); hub != nil {
		hub.CaptureException(err)
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// writeValidationError reports the first failing field.
func writeValidationError(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", verrs[0].Message)
	}
	return writeError(c, fiber.StatusBadRequest, "VALIDATION_ERROR", "invalid request")
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusUnauthorized:
			return writeError(c, status, "UNAUTHORIZED", "missing or invalid token")
		case fiber.StatusForbidden:
			return writeError(c, status, "FORBIDDEN", "admin access required")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, status, "PAYLOAD_TOO_LARGE", "request body too large")
		case fiber.StatusTooManyRequests:
			return writeError(c, status, "RATE_LIMITED", "too many requests")
		case fiber.StatusInternalServerError:
			return internalError(c, err)
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
