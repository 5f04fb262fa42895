package repository

import (
	"context"

	"doctrack/internal/model"
)

// CompanySort specifies ordering for company listings. Field is validated
// against a column whitelist by the implementation; the zero value means
// name ascending.
type CompanySort struct {
	Field string
	Desc  bool
}

// CompanyListQuery combines pagination, ordering and the optional
// case-insensitive name search.
type CompanyListQuery struct {
	Page   PageQuery
	Sort   CompanySort
	Search string
}

// CompanyRepository defines data access for companies using SQL queries only.
// No business logic here — strictly persistence operations.
type CompanyRepository interface {
	// Create inserts a new company record and returns the stored row.
	Create(ctx context.Context, c *model.Company) (*model.Company, error)

	// FindByID returns a company by its ID. Returns sql.ErrNoRows when absent.
	FindByID(ctx context.Context, id string) (*model.Company, error)

	// Update overwrites the mutable fields of an existing company.
	Update(ctx context.Context, c *model.Company) (*model.Company, error)

	// Delete removes a company by ID. Returns nil if the row was deleted or did not exist.
	Delete(ctx context.Context, id string) error

	// List returns a page of companies matching the query and the total row count.
	List(ctx context.Context, q CompanyListQuery) (*PageResult[model.Company], error)
}
