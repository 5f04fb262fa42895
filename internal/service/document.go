package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"doctrack/internal/model"
	"doctrack/internal/opener"
	"doctrack/internal/repository"
	"doctrack/internal/storage"
)

// allowedTypePrefixes is the declared content-type whitelist for uploads.
// It is a prefix gate, deliberately minimal; file magic bytes are not
// inspected.
var allowedTypePrefixes = []string{
	"image/",
	"application/pdf",
	"application/msword",
	"application/vnd.openxmlformats-officedocument",
	"application/vnd.ms-excel",
	"text/",
}

// DocumentFilter holds the optional listing criteria. All present criteria
// are combined with AND; absent ones impose no constraint. Dates are applied
// at day granularity: StartDate from its midnight, EndDate including its
// whole day.
type DocumentFilter struct {
	Search    string
	FileType  string
	StartDate *time.Time
	EndDate   *time.Time
}

// DocumentListResult is the service-level DTO for paginated documents.
type DocumentListResult struct {
	Items []model.DocumentDTO `json:"data"`
	Total int                 `json:"total"`
	Page  int                 `json:"page"`
	Size  int                 `json:"size"`
}

// DocumentService defines the use cases for handling documents.
//
// Reads racing a concurrent delete of the same document are unguarded: a
// reader may transiently observe metadata whose backing file is already gone.
type DocumentService interface {
	// Upload validates the file, writes its bytes to the blob store and then
	// persists metadata. If the metadata write fails, the stored bytes are
	// deleted best-effort before the error is returned.
	Upload(ctx context.Context, companyID string, r io.Reader, originalFileName, contentType string, size int64) (*model.DocumentDTO, error)

	// ListByCompany returns a page of the company's documents matching the filter.
	ListByCompany(ctx context.Context, companyID string, f DocumentFilter, page, size int) (*DocumentListResult, error)

	// Get returns the external representation of a document.
	Get(ctx context.Context, id string) (*model.DocumentDTO, error)

	// GetDocument returns the full internal record including the storage path.
	GetDocument(ctx context.Context, id string) (*model.Document, error)

	// Download returns the raw file bytes alongside the internal record, so
	// the caller can present the original file name.
	Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error)

	// Open hands the backing file to the OS-default handler.
	Open(ctx context.Context, id string) error

	// Delete removes the backing file, then the metadata record. An I/O
	// failure removing the file aborts the delete with the record intact; a
	// file that is already gone does not.
	Delete(ctx context.Context, id string) error
}

type documentService struct {
	store     storage.Storage
	open      opener.Opener
	companies repository.CompanyRepository
	documents repository.DocumentRepository
	maxBytes  int64
}

// NewDocumentService constructs a new DocumentService. maxBytes caps the
// declared upload size.
func NewDocumentService(store storage.Storage, open opener.Opener, companies repository.CompanyRepository, documents repository.DocumentRepository, maxBytes int64) DocumentService {
	return &documentService{
		store:     store,
		open:      open,
		companies: companies,
		documents: documents,
		maxBytes:  maxBytes,
	}
}

func typeAllowed(contentType string) bool {
	for _, prefix := range allowedTypePrefixes {
		if strings.HasPrefix(contentType, prefix) {
			return true
		}
	}
	return false
}

// dayStart truncates a timestamp to midnight in its own location.
func dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func toDocumentDTO(d *model.Document, companyName string) *model.DocumentDTO {
	return &model.DocumentDTO{
		ID:               d.ID,
		FileName:         d.FileName,
		OriginalFileName: d.OriginalFileName,
		FileType:         d.FileType,
		Size:             d.Size,
		UploadedAt:       d.UploadedAt,
		CompanyID:        d.CompanyID,
		CompanyName:      companyName,
	}
}

func (s *documentService) findCompany(ctx context.Context, id string) (*model.Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *documentService) findDocument(ctx context.Context, id string) (*model.Document, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	doc, err := s.documents.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDocumentNotFound
		}
		return nil, err
	}
	return doc, nil
}

func (s *documentService) Upload(ctx context.Context, companyID string, r io.Reader, originalFileName, contentType string, size int64) (*model.DocumentDTO, error) {
	if r == nil {
		return nil, ErrReaderNil
	}

	company, err := s.findCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	if !typeAllowed(contentType) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidFileType, contentType)
	}
	if size > s.maxBytes {
		return nil, fmt.Errorf("%w: %d bytes (limit %d)", ErrFileSizeExceeded, size, s.maxBytes)
	}

	// Millisecond timestamp prefix keeps stored names collision-free while
	// preserving the original name for display.
	original := filepath.Base(originalFileName)
	genName := fmt.Sprintf("%d_%s", time.Now().UnixMilli(), original)

	info, err := s.store.Save(ctx, genName, r, size, contentType)
	if err != nil {
		if errors.Is(err, storage.ErrCreateDir) {
			return nil, fmt.Errorf("%w: %v", ErrUploadDir, err)
		}
		return nil, fmt.Errorf("%w: %v", ErrFileUpload, err)
	}

	doc := &model.Document{
		ID:               uuid.New().String(),
		FileName:         genName,
		OriginalFileName: original,
		FilePath:         info.Path,
		FileType:         contentType,
		Size:             info.Size,
		UploadedAt:       time.Now().UTC(),
		CompanyID:        company.ID,
	}
	stored, err := s.documents.Create(ctx, doc)
	if err != nil {
		// Compensating delete: the metadata write failed, so the just-written
		// bytes must not linger. Secondary errors are ignored; the original
		// failure propagates.
		_ = s.store.Remove(ctx, info.Path)
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	return toDocumentDTO(stored, company.Name), nil
}

func (s *documentService) ListByCompany(ctx context.Context, companyID string, f DocumentFilter, page, size int) (*DocumentListResult, error) {
	company, err := s.findCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}

	repoFilter := repository.DocumentFilter{
		Search:   strings.TrimSpace(f.Search),
		FileType: f.FileType,
	}
	if f.StartDate != nil {
		start := dayStart(*f.StartDate)
		repoFilter.UploadedAtOrAfter = &start
	}
	if f.EndDate != nil {
		// Exclusive bound one day past midnight makes the end date inclusive
		// of its entire day.
		end := dayStart(*f.EndDate).AddDate(0, 0, 1)
		repoFilter.UploadedBefore = &end
	}

	page, size, pq := normalizePage(page, size)
	res, err := s.documents.ListByCompany(ctx, company.ID, repoFilter, pq)
	if err != nil {
		return nil, err
	}

	items := make([]model.DocumentDTO, 0, len(res.Items))
	for i := range res.Items {
		items = append(items, *toDocumentDTO(&res.Items[i], company.Name))
	}

	return &DocumentListResult{Items: items, Total: res.Total, Page: page, Size: size}, nil
}

func (s *documentService) Get(ctx context.Context, id string) (*model.DocumentDTO, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, err
	}
	company, err := s.findCompany(ctx, doc.CompanyID)
	if err != nil {
		return nil, err
	}
	return toDocumentDTO(doc, company.Name), nil
}

func (s *documentService) GetDocument(ctx context.Context, id string) (*model.Document, error) {
	return s.findDocument(ctx, id)
}

func (s *documentService) Download(ctx context.Context, id string) (io.ReadCloser, *model.Document, error) {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return nil, nil, err
	}

	exists, err := s.store.Exists(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, err
	}
	if !exists {
		return nil, nil, fmt.Errorf("%w: %s", ErrFileMissing, doc.FileName)
	}

	rc, err := s.store.Open(ctx, doc.FilePath)
	if err != nil {
		return nil, nil, fmt.Errorf("open blob: %w", err)
	}
	return rc, doc, nil
}

func (s *documentService) Open(ctx context.Context, id string) error {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return err
	}

	exists, err := s.store.Exists(ctx, doc.FilePath)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrFileMissing, doc.FileName)
	}

	if err := s.open.Open(ctx, doc.FilePath); err != nil {
		return fmt.Errorf("%w: %v", ErrFileOpen, err)
	}
	return nil
}

func (s *documentService) Delete(ctx context.Context, id string) error {
	doc, err := s.findDocument(ctx, id)
	if err != nil {
		return err
	}

	// Remove the bytes first. Absence is tolerated; a real I/O failure aborts
	// with the metadata intact so the delete can be retried.
	if err := s.store.Remove(ctx, doc.FilePath); err != nil {
		return fmt.Errorf("%w: %v", ErrFileDelete, err)
	}

	if err := s.documents.Delete(ctx, id); err != nil {
		return fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	return nil
}
