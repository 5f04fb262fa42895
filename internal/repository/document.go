package repository

import (
	"context"
	"time"

	"doctrack/internal/model"
)

// DocumentFilter holds the optional criteria for listing a company's
// documents. Zero-valued fields impose no constraint; present fields are
// combined with AND by the implementation.
type DocumentFilter struct {
	// Search matches original_filename as a case-insensitive substring.
	Search string
	// FileType is an exact content-type match.
	FileType string
	// UploadedAtOrAfter is an inclusive lower bound on uploaded_at.
	UploadedAtOrAfter *time.Time
	// UploadedBefore is an exclusive upper bound on uploaded_at.
	UploadedBefore *time.Time
}

// DocumentRepository defines data access for documents using SQL queries only.
type DocumentRepository interface {
	// Create inserts a new document record and returns the stored row.
	Create(ctx context.Context, doc *model.Document) (*model.Document, error)

	// FindByID returns a document by its ID. Returns sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Document, error)

	// ListByCompany returns a page of the company's documents matching the
	// filter, newest first, and the total count under the same filter.
	ListByCompany(ctx context.Context, companyID string, f DocumentFilter, pq PageQuery) (*PageResult[model.Document], error)

	// CountByCompany returns the number of documents referencing the company.
	CountByCompany(ctx context.Context, companyID string) (int, error)

	// Delete removes a document by ID. Returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error
}
