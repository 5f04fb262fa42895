package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"doctrack/internal/http/middleware"
	"doctrack/internal/service"
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

// serviceErrorMapping pairs a service sentinel with its HTTP translation.
type serviceErrorMapping struct {
	sentinel error
	status   int
	code     string
	message  string
}

var serviceErrorMappings = []serviceErrorMapping{
	{service.ErrCompanyNotFound, fiber.StatusNotFound, "COMPANY_NOT_FOUND", "company not found"},
	{service.ErrDocumentNotFound, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND", "document not found"},
	{service.ErrFileMissing, fiber.StatusNotFound, "FILE_NOT_FOUND", "backing file not found"},
	{service.ErrNameRequired, fiber.StatusBadRequest, "NAME_REQUIRED", "company name is required"},
	{service.ErrIDRequired, fiber.StatusBadRequest, "INVALID_ID", "id is required"},
	{service.ErrCompanyHasDocuments, fiber.StatusConflict, "COMPANY_HAS_DOCUMENTS", "company still has documents"},
	{service.ErrInvalidFileType, fiber.StatusUnsupportedMediaType, "INVALID_FILE_TYPE", "file type not allowed"},
	{service.ErrFileSizeExceeded, fiber.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file size exceeds limit"},
	{service.ErrUploadDir, fiber.StatusInternalServerError, "UPLOAD_DIR_ERROR", "upload directory unavailable"},
	{service.ErrFileUpload, fiber.StatusInternalServerError, "FILE_UPLOAD_ERROR", "file upload failed"},
	{service.ErrDatabase, fiber.StatusInternalServerError, "DATABASE_ERROR", "database error"},
	{service.ErrFileDelete, fiber.StatusInternalServerError, "FILE_DELETE_ERROR", "file delete failed"},
	{service.ErrFileOpen, fiber.StatusInternalServerError, "FILE_OPEN_ERROR", "file open failed"},
}

// writeServiceError translates a service error kind into its HTTP response.
// Unrecognized errors collapse into a generic 500.
func writeServiceError(c *fiber.Ctx, err error) error {
	for _, m := range serviceErrorMappings {
		if errors.Is(err, m.sentinel) {
			return writeError(c, m.status, m.code, m.message)
		}
	}
	return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
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
