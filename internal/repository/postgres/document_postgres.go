package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"doctrack/internal/model"
	"doctrack/internal/repository"
)

// DocumentPostgres is a PostgreSQL implementation of repository.DocumentRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type DocumentPostgres struct {
	db *sql.DB
}

// NewDocumentPostgres creates a new DocumentPostgres repository.
func NewDocumentPostgres(db *sql.DB) *DocumentPostgres {
	return &DocumentPostgres{db: db}
}

var _ repository.DocumentRepository = (*DocumentPostgres)(nil)

const documentColumns = "id, file_name, original_filename, file_path, file_type, size, uploaded_at, company_id"

func scanDocument(row interface{ Scan(...any) error }) (*model.Document, error) {
	var d model.Document
	if err := row.Scan(
		&d.ID,
		&d.FileName,
		&d.OriginalFileName,
		&d.FilePath,
		&d.FileType,
		&d.Size,
		&d.UploadedAt,
		&d.CompanyID,
	); err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a new document row and returns the stored record.
func (r *DocumentPostgres) Create(ctx context.Context, doc *model.Document) (*model.Document, error) {
	const q = `
		INSERT INTO documents (id, file_name, original_filename, file_path, file_type, size, uploaded_at, company_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + documentColumns
	row := r.db.QueryRowContext(ctx, q,
		doc.ID,
		doc.FileName,
		doc.OriginalFileName,
		doc.FilePath,
		doc.FileType,
		doc.Size,
		doc.UploadedAt,
		doc.CompanyID,
	)
	return scanDocument(row)
}

// FindByID fetches a single document by its ID.
func (r *DocumentPostgres) FindByID(ctx context.Context, id string) (*model.Document, error) {
	const q = `SELECT ` + documentColumns + ` FROM documents WHERE id = $1`
	return scanDocument(r.db.QueryRowContext(ctx, q, id))
}

// buildFilter turns the optional criteria into a WHERE clause. The company
// match is always present; the rest are appended only when set, so the result
// is a strict conjunction of the provided criteria.
func buildFilter(companyID string, f repository.DocumentFilter) (string, []any) {
	conds := []string{"company_id = $1"}
	args := []any{companyID}

	if f.Search != "" {
		args = append(args, f.Search)
		conds = append(conds, fmt.Sprintf("original_filename ILIKE '%%' || $%d || '%%'", len(args)))
	}
	if f.FileType != "" {
		args = append(args, f.FileType)
		conds = append(conds, fmt.Sprintf("file_type = $%d", len(args)))
	}
	if f.UploadedAtOrAfter != nil {
		args = append(args, *f.UploadedAtOrAfter)
		conds = append(conds, fmt.Sprintf("uploaded_at >= $%d", len(args)))
	}
	if f.UploadedBefore != nil {
		args = append(args, *f.UploadedBefore)
		conds = append(conds, fmt.Sprintf("uploaded_at < $%d", len(args)))
	}

	return "WHERE " + strings.Join(conds, " AND "), args
}

// ListByCompany returns the company's documents matching the filter, newest
// first, along with the total count under the same filter.
func (r *DocumentPostgres) ListByCompany(ctx context.Context, companyID string, f repository.DocumentFilter, pq repository.PageQuery) (*repository.PageResult[model.Document], error) {
	where, args := buildFilter(companyID, f)

	var total int
	qCount := "SELECT COUNT(*) FROM documents " + where
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	qList := fmt.Sprintf(
		"SELECT %s FROM documents %s ORDER BY uploaded_at DESC, id DESC LIMIT $%d OFFSET $%d",
		documentColumns, where, len(args)+1, len(args)+2,
	)
	args = append(args, pq.Limit, pq.Offset)

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Document, 0)
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Document]{Items: items, Total: total}, nil
}

// CountByCompany returns the number of documents referencing the company.
func (r *DocumentPostgres) CountByCompany(ctx context.Context, companyID string) (int, error) {
	const q = `SELECT COUNT(*) FROM documents WHERE company_id = $1`
	var n int
	if err := r.db.QueryRowContext(ctx, q, companyID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

// Delete removes a document by ID. It does not return an error if the row does not exist.
func (r *DocumentPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM documents WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}
