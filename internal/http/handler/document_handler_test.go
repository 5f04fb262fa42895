package handler

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"doctrack/internal/model"
	"doctrack/internal/service"
	serviceMocks "doctrack/internal/service/mocks"
)

func multipartFile(t *testing.T, fieldName, fileName, content string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	require.NoError(t, err)
	part.Write([]byte(content))
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestUploadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/documents/upload/:companyId", UploadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		companyID := uuid.New().String()
		body, contentType := multipartFile(t, "file", "report.pdf", "%PDF-1.4 content")

		expected := &model.DocumentDTO{ID: uuid.New().String(), OriginalFileName: "report.pdf"}
		mockSvc.On("Upload", mock.Anything, companyID, mock.Anything, "report.pdf", mock.Anything, mock.Anything).
			Return(expected, nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload/"+companyID, body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusCreated, resp.StatusCode)

		var result model.DocumentDTO
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, expected.ID, result.ID)
		assert.Equal(t, "report.pdf", result.OriginalFileName)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid company id", func(t *testing.T) {
		body, contentType := multipartFile(t, "file", "report.pdf", "x")

		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload/not-a-uuid", body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})

	t.Run("no file", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload/"+uuid.New().String(), nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_REQUIRED", res.Error.Code)
	})

	t.Run("company not found", func(t *testing.T) {
		companyID := uuid.New().String()
		body, contentType := multipartFile(t, "file", "report.pdf", "x")
		mockSvc.On("Upload", mock.Anything, companyID, mock.Anything, "report.pdf", mock.Anything, mock.Anything).
			Return(nil, service.ErrCompanyNotFound).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload/"+companyID, body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "COMPANY_NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("type rejected", func(t *testing.T) {
		companyID := uuid.New().String()
		body, contentType := multipartFile(t, "file", "tool.exe", "MZ")
		mockSvc.On("Upload", mock.Anything, companyID, mock.Anything, "tool.exe", mock.Anything, mock.Anything).
			Return(nil, service.ErrInvalidFileType).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload/"+companyID, body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusUnsupportedMediaType, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_FILE_TYPE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("too large", func(t *testing.T) {
		companyID := uuid.New().String()
		body, contentType := multipartFile(t, "file", "big.pdf", "x")
		mockSvc.On("Upload", mock.Anything, companyID, mock.Anything, "big.pdf", mock.Anything, mock.Anything).
			Return(nil, service.ErrFileSizeExceeded).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload/"+companyID, body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusRequestEntityTooLarge, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_TOO_LARGE", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("rollback surfaces database error", func(t *testing.T) {
		companyID := uuid.New().String()
		body, contentType := multipartFile(t, "file", "report.pdf", "x")
		mockSvc.On("Upload", mock.Anything, companyID, mock.Anything, "report.pdf", mock.Anything, mock.Anything).
			Return(nil, service.ErrDatabase).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/upload/"+companyID, body)
		req.Header.Set("Content-Type", contentType)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DATABASE_ERROR", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestListCompanyDocuments(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/company/:companyId", ListCompanyDocuments(mockSvc))

	t.Run("success with filters", func(t *testing.T) {
		companyID := uuid.New().String()
		start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC)

		mockSvc.On("ListByCompany", mock.Anything, companyID, service.DocumentFilter{
			Search:    "invoice",
			FileType:  "application/pdf",
			StartDate: &start,
			EndDate:   &end,
		}, 2, 20).Return(&service.DocumentListResult{
			Items: []model.DocumentDTO{{ID: uuid.New().String(), OriginalFileName: "invoice.pdf"}},
			Total: 21,
			Page:  2,
			Size:  20,
		}, nil).Once()

		url := "/api/documents/company/" + companyID +
			"?page=2&size=20&search=invoice&fileType=application%2Fpdf&startDate=2024-01-01&endDate=2024-01-31"
		req := httptest.NewRequest(http.MethodGet, url, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.DocumentListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, 21, result.Total)
		assert.Len(t, result.Items, 1)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid date", func(t *testing.T) {
		companyID := uuid.New().String()
		req := httptest.NewRequest(http.MethodGet, "/api/documents/company/"+companyID+"?startDate=01-02-2024", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_DATE", res.Error.Code)
	})

	t.Run("company not found", func(t *testing.T) {
		companyID := uuid.New().String()
		mockSvc.On("ListByCompany", mock.Anything, companyID, service.DocumentFilter{}, 1, 10).
			Return(nil, service.ErrCompanyNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/company/"+companyID, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})
}

func TestGetDocumentHandler(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/:id", GetDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).
			Return(&model.DocumentDTO{ID: id, OriginalFileName: "report.pdf", CompanyName: "ACME Corp"}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result model.DocumentDTO
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Equal(t, "ACME Corp", result.CompanyName)
		mockSvc.AssertExpectations(t)
	})

	t.Run("not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Get", mock.Anything, id).Return(nil, service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "DOCUMENT_NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/documents/invalid-uuid", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "INVALID_ID", res.Error.Code)
	})
}

func TestDeleteDocumentHandler(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Delete("/api/documents/:id", DeleteDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("file delete failure keeps metadata", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Delete", mock.Anything, id).Return(service.ErrFileDelete).Once()

		req := httptest.NewRequest(http.MethodDelete, "/api/documents/"+id, nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_DELETE_ERROR", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestOpenDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Post("/api/documents/:id/open", OpenDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Open", mock.Anything, id).Return(nil).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/"+id+"/open", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "opened", body["status"])
		mockSvc.AssertExpectations(t)
	})

	t.Run("backing file missing", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Open", mock.Anything, id).Return(service.ErrFileMissing).Once()

		req := httptest.NewRequest(http.MethodPost, "/api/documents/"+id+"/open", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}

func TestDownloadDocument(t *testing.T) {
	mockSvc := new(serviceMocks.MockDocumentService)
	app := fiber.New()
	app.Get("/api/documents/:id/download", DownloadDocument(mockSvc))

	t.Run("success", func(t *testing.T) {
		id := uuid.New().String()
		content := "%PDF-1.4 payload"
		doc := &model.Document{
			ID:               id,
			OriginalFileName: "report 2024.pdf",
			FileType:         "application/pdf",
			Size:             int64(len(content)),
		}
		mockSvc.On("Download", mock.Anything, id).
			Return(io.NopCloser(strings.NewReader(content)), doc, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "application/pdf", resp.Header.Get(fiber.HeaderContentType))
		assert.Equal(t, `attachment; filename="report 2024.pdf"`, resp.Header.Get(fiber.HeaderContentDisposition))

		got, _ := io.ReadAll(resp.Body)
		assert.Equal(t, content, string(got))
		mockSvc.AssertExpectations(t)
	})

	t.Run("document not found", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Download", mock.Anything, id).Return(nil, nil, service.ErrDocumentNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("backing file missing", func(t *testing.T) {
		id := uuid.New().String()
		mockSvc.On("Download", mock.Anything, id).Return(nil, nil, service.ErrFileMissing).Once()

		req := httptest.NewRequest(http.MethodGet, "/api/documents/"+id+"/download", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		var res errorPayload
		json.NewDecoder(resp.Body).Decode(&res)
		assert.Equal(t, "FILE_NOT_FOUND", res.Error.Code)
		mockSvc.AssertExpectations(t)
	})
}
