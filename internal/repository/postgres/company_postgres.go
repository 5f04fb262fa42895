package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"doctrack/internal/model"
	"doctrack/internal/repository"
)

// CompanyPostgres is a PostgreSQL implementation of repository.CompanyRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type CompanyPostgres struct {
	db *sql.DB
}

// NewCompanyPostgres creates a new CompanyPostgres repository.
func NewCompanyPostgres(db *sql.DB) *CompanyPostgres {
	return &CompanyPostgres{db: db}
}

var _ repository.CompanyRepository = (*CompanyPostgres)(nil)

const companyColumns = "id, name, address, phone, email, created_at"

// companySortColumns whitelists the columns a caller may order by. Anything
// else falls back to name.
var companySortColumns = map[string]string{
	"":           "name",
	"name":       "name",
	"email":      "email",
	"created_at": "created_at",
}

func scanCompany(row interface{ Scan(...any) error }) (*model.Company, error) {
	var c model.Company
	if err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.Phone,
		&c.Email,
		&c.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// Create inserts a new company row and returns the stored record.
func (r *CompanyPostgres) Create(ctx context.Context, c *model.Company) (*model.Company, error) {
	const q = `
		INSERT INTO companies (id, name, address, phone, email, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + companyColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.Name,
		c.Address,
		c.Phone,
		c.Email,
		c.CreatedAt,
	)
	return scanCompany(row)
}

// FindByID fetches a single company by its ID.
func (r *CompanyPostgres) FindByID(ctx context.Context, id string) (*model.Company, error) {
	const q = `SELECT ` + companyColumns + ` FROM companies WHERE id = $1`
	return scanCompany(r.db.QueryRowContext(ctx, q, id))
}

// Update overwrites the mutable fields of an existing company.
func (r *CompanyPostgres) Update(ctx context.Context, c *model.Company) (*model.Company, error) {
	const q = `
		UPDATE companies
		SET name = $2, address = $3, phone = $4, email = $5
		WHERE id = $1
		RETURNING ` + companyColumns
	row := r.db.QueryRowContext(ctx, q,
		c.ID,
		c.Name,
		c.Address,
		c.Phone,
		c.Email,
	)
	return scanCompany(row)
}

// Delete removes a company by ID. It does not return an error if the row does not exist.
func (r *CompanyPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM companies WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	_, _ = res.RowsAffected()
	return nil
}

// List returns a page of companies and the total count. An optional search
// term restricts the result to names containing it, case-insensitively.
func (r *CompanyPostgres) List(ctx context.Context, q repository.CompanyListQuery) (*repository.PageResult[model.Company], error) {
	where := ""
	args := []any{}
	if q.Search != "" {
		where = "WHERE name ILIKE '%' || $1 || '%'"
		args = append(args, q.Search)
	}

	var total int
	qCount := "SELECT COUNT(*) FROM companies " + where
	if err := r.db.QueryRowContext(ctx, qCount, args...).Scan(&total); err != nil {
		return nil, err
	}

	dir := "ASC"
	if q.Sort.Desc {
		dir = "DESC"
	}
	col, ok := companySortColumns[q.Sort.Field]
	if !ok {
		col = "name"
	}

	qList := fmt.Sprintf(
		"SELECT %s FROM companies %s ORDER BY %s %s, id ASC LIMIT $%d OFFSET $%d",
		companyColumns, where, col, dir, len(args)+1, len(args)+2,
	)
	args = append(args, q.Page.Limit, q.Page.Offset)

	rows, err := r.db.QueryContext(ctx, qList, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Company, 0)
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &repository.PageResult[model.Company]{Items: items, Total: total}, nil
}
