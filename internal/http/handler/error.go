package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"roofapi/internal/http/middleware"
	"roofapi/internal/service"
)

// errorPayload defines the standardized error response body.
type errorPayload struct {
	RequestID string        `json:"request_id"`
	Error     errorEnvelope `json:"error"`
}

type errorEnvelope struct {
	Code    string        `json:"code"`
	Message string        `json:"message"`
	Details []errorDetail `json:"details,omitempty"`
}

// errorDetail carries one validation issue so the client can display every
// problem at once.
type errorDetail struct {
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

// writeValidationError renders every collected policy violation.
func writeValidationError(c *fiber.Ctx, result service.ValidationResult) error {
	details := make([]errorDetail, len(result.Issues))
	for i, issue := range result.Issues {
		details[i] = errorDetail{Code: string(issue), Message: issue.Message()}
	}
	res := errorPayload{
		RequestID: requestIDFromCtx(c),
		Error: errorEnvelope{
			Code:    "VALIDATION_FAILED",
			Message: "file does not meet the attachment policy",
			Details: details,
		},
	}
	return c.Status(fiber.StatusBadRequest).JSON(res)
}

// writeServiceError maps service-level errors onto HTTP responses. Validation
// failures stay distinguishable from infrastructure failures.
func writeServiceError(c *fiber.Ctx, err error) error {
	var vErr *service.ValidationFailedError
	switch {
	case errors.As(err, &vErr):
		return writeValidationError(c, vErr.Result)
	case errors.Is(err, service.ErrBuildingNotFound):
		return writeError(c, fiber.StatusNotFound, "BUILDING_NOT_FOUND", "building not found")
	case errors.Is(err, service.ErrDocumentNotFound):
		return writeError(c, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found")
	case errors.Is(err, service.ErrStorageWrite):
		return writeError(c, fiber.StatusBadGateway, "STORAGE_ERROR", "object storage unavailable")
	case errors.Is(err, service.ErrMetadataWrite):
		return writeError(c, fiber.StatusBadGateway, "METADATA_ERROR", "metadata store unavailable")
	default:
		return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
	}
}

// ErrorHandler returns a Fiber global error handler that standardizes error responses.
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status := fiber.StatusInternalServerError
		if e, ok := err.(*fiber.Error); ok {
			status = e.Code
		}

		switch status {
		case fiber.StatusBadRequest:
			return writeError(c, status, "BAD_REQUEST", "bad request")
		case fiber.StatusNotFound:
			return writeError(c, status, "NOT_FOUND", "resource not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, status, "METHOD_NOT_ALLOWED", "method not allowed")
		default:
			return writeError(c, status, "INTERNAL_ERROR", "internal server error")
		}
	}
}
