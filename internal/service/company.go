package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"doctrack/internal/model"
	"doctrack/internal/repository"
)

const (
	defaultPageSize = 10
	maxPageSize     = 100
)

// CompanyListQuery holds the caller-facing listing parameters. Page is
// 1-based; zero values fall back to page 1 and the default size.
type CompanyListQuery struct {
	Page     int
	Size     int
	SortBy   string
	SortDesc bool
	Search   string
}

// CompanyListResult is the service-level DTO for paginated companies.
type CompanyListResult struct {
	Items []model.CompanyDTO `json:"data"`
	Total int                `json:"total"`
	Page  int                `json:"page"`
	Size  int                `json:"size"`
}

// CompanyService defines the use cases for managing companies.
type CompanyService interface {
	// Create validates and persists a new company.
	Create(ctx context.Context, in model.CompanyInput) (*model.CompanyDTO, error)

	// Update renames an existing company. Only the name is mutable.
	Update(ctx context.Context, id string, in model.CompanyInput) (*model.CompanyDTO, error)

	// Delete removes a company. It is rejected while documents still
	// reference the company.
	Delete(ctx context.Context, id string) error

	// Get returns a single company with its document count.
	Get(ctx context.Context, id string) (*model.CompanyDTO, error)

	// List returns a page of companies, optionally restricted to names
	// containing the search term, each annotated with its document count.
	List(ctx context.Context, q CompanyListQuery) (*CompanyListResult, error)
}

type companyService struct {
	companies repository.CompanyRepository
	documents repository.DocumentRepository
}

// NewCompanyService constructs a new CompanyService.
func NewCompanyService(companies repository.CompanyRepository, documents repository.DocumentRepository) CompanyService {
	return &companyService{companies: companies, documents: documents}
}

// normalizePage clamps 1-based page/size inputs and derives limit/offset.
func normalizePage(page, size int) (int, int, repository.PageQuery) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}
	return page, size, repository.PageQuery{Limit: size, Offset: (page - 1) * size}
}

func toCompanyDTO(c *model.Company, documentCount int) *model.CompanyDTO {
	return &model.CompanyDTO{
		ID:            c.ID,
		Name:          c.Name,
		Address:       c.Address,
		Phone:         c.Phone,
		Email:         c.Email,
		CreatedAt:     c.CreatedAt,
		DocumentCount: documentCount,
	}
}

func (s *companyService) findCompany(ctx context.Context, id string) (*model.Company, error) {
	c, err := s.companies.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCompanyNotFound
		}
		return nil, err
	}
	return c, nil
}

func (s *companyService) Create(ctx context.Context, in model.CompanyInput) (*model.CompanyDTO, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	c := &model.Company{
		ID:        uuid.New().String(),
		Name:      name,
		Address:   in.Address,
		Phone:     in.Phone,
		Email:     in.Email,
		CreatedAt: time.Now().UTC(),
	}
	stored, err := s.companies.Create(ctx, c)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}
	// A freshly created company has no documents yet.
	return toCompanyDTO(stored, 0), nil
}

func (s *companyService) Update(ctx context.Context, id string, in model.CompanyInput) (*model.CompanyDTO, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	existing, err := s.findCompany(ctx, id)
	if err != nil {
		return nil, err
	}

	existing.Name = name
	updated, err := s.companies.Update(ctx, existing)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabase, err)
	}

	count, err := s.documents.CountByCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCompanyDTO(updated, count), nil
}

func (s *companyService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrIDRequired
	}
	if _, err := s.findCompany(ctx, id); err != nil {
		return err
	}

	count, err := s.documents.CountByCompany(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return fmt.Errorf("%w: %d remaining", ErrCompanyHasDocuments, count)
	}

	return s.companies.Delete(ctx, id)
}

func (s *companyService) Get(ctx context.Context, id string) (*model.CompanyDTO, error) {
	if id == "" {
		return nil, ErrIDRequired
	}
	c, err := s.findCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	count, err := s.documents.CountByCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCompanyDTO(c, count), nil
}

func (s *companyService) List(ctx context.Context, q CompanyListQuery) (*CompanyListResult, error) {
	page, size, pq := normalizePage(q.Page, q.Size)

	res, err := s.companies.List(ctx, repository.CompanyListQuery{
		Page:   pq,
		Sort:   repository.CompanySort{Field: q.SortBy, Desc: q.SortDesc},
		Search: strings.TrimSpace(q.Search),
	})
	if err != nil {
		return nil, err
	}

	items := make([]model.CompanyDTO, 0, len(res.Items))
	for i := range res.Items {
		count, err := s.documents.CountByCompany(ctx, res.Items[i].ID)
		if err != nil {
			return nil, err
		}
		items = append(items, *toCompanyDTO(&res.Items[i], count))
	}

	return &CompanyListResult{Items: items, Total: res.Total, Page: page, Size: size}, nil
}
