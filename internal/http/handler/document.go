package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"doctrack/internal/service"
)

const dateLayout = "2006-01-02"

// UploadDocument handles POST /api/documents/upload/:companyId
// (multipart/form-data, field name: file).
//
// @Summary Upload a document for a company
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param companyId path string true "Company ID"
// @Param file formData file true "Document file"
// @Success 201 {object} model.DocumentDTO
// @Router /api/documents/upload/{companyId} [post]
func UploadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, ok := paramID(c, "companyId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id format")
		}

		fh, err := c.FormFile("file")
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
		}

		f, err := fh.Open()
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
		}
		defer f.Close()

		ct := fh.Header.Get("Content-Type")
		if ct == "" {
			ct = "application/octet-stream"
		}

		dto, err := svc.Upload(c.UserContext(), companyID, f, fh.Filename, ct, fh.Size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(dto)
	}
}

// ListCompanyDocuments handles GET /api/documents/company/:companyId with
// page, size, search, fileType, startDate and endDate query parameters.
// Dates use YYYY-MM-DD and bound the upload day inclusively on both ends.
//
// @Summary List a company's documents
// @Tags documents
// @Produce json
// @Param companyId path string true "Company ID"
// @Param page query int false "1-based page number"
// @Param size query int false "Page size"
// @Param search query string false "Original file name substring filter"
// @Param fileType query string false "Exact content type filter"
// @Param startDate query string false "Earliest upload date (YYYY-MM-DD)"
// @Param endDate query string false "Latest upload date (YYYY-MM-DD)"
// @Success 200 {object} service.DocumentListResult
// @Router /api/documents/company/{companyId} [get]
func ListCompanyDocuments(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		companyID, ok := paramID(c, "companyId")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid company id format")
		}

		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		size, err := strconv.Atoi(c.Query("size", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SIZE", "invalid size")
		}

		filter := service.DocumentFilter{
			Search:   c.Query("search"),
			FileType: c.Query("fileType"),
		}
		if v := c.Query("startDate"); v != "" {
			t, err := time.ParseInLocation(dateLayout, v, time.UTC)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "startDate must be YYYY-MM-DD")
			}
			filter.StartDate = &t
		}
		if v := c.Query("endDate"); v != "" {
			t, err := time.ParseInLocation(dateLayout, v, time.UTC)
			if err != nil {
				return writeError(c, fiber.StatusBadRequest, "INVALID_DATE", "endDate must be YYYY-MM-DD")
			}
			filter.EndDate = &t
		}

		res, err := svc.ListByCompany(c.UserContext(), companyID, filter, page, size)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// GetDocument handles GET /api/documents/:id.
//
// @Summary Get document metadata
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} model.DocumentDTO
// @Router /api/documents/{id} [get]
func GetDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		dto, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(dto)
	}
}

// DeleteDocument handles DELETE /api/documents/:id.
//
// @Summary Delete a document and its file
// @Tags documents
// @Param id path string true "Document ID"
// @Success 204
// @Router /api/documents/{id} [delete]
func DeleteDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// OpenDocument handles POST /api/documents/:id/open. The file is opened with
// the host's default application; the response carries no content.
//
// @Summary Open a document with the OS-default handler
// @Tags documents
// @Produce json
// @Param id path string true "Document ID"
// @Success 200 {object} map[string]string
// @Router /api/documents/{id}/open [post]
func OpenDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		if err := svc.Open(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"status": "opened"})
	}
}

// DownloadDocument handles GET /api/documents/:id/download, streaming the raw
// bytes with the original file name in the Content-Disposition header.
//
// @Summary Download a document's file
// @Tags documents
// @Produce octet-stream
// @Param id path string true "Document ID"
// @Success 200 {file} binary
// @Router /api/documents/{id}/download [get]
func DownloadDocument(svc service.DocumentService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c, "id")
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}

		rc, doc, err := svc.Download(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}

		c.Set(fiber.HeaderContentType, doc.FileType)
		c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", doc.OriginalFileName))

		// fasthttp closes the stream once the body has been sent.
		if doc.Size > 0 {
			return c.SendStream(rc, int(doc.Size))
		}
		return c.SendStream(rc)
	}
}
