package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"doctrack/internal/model"
	"doctrack/internal/repository"
	repoMocks "doctrack/internal/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newCompanyFixture() (*repoMocks.MockCompanyRepository, *repoMocks.MockDocumentRepository, CompanyService) {
	mCompanies := new(repoMocks.MockCompanyRepository)
	mDocuments := new(repoMocks.MockDocumentRepository)
	return mCompanies, mDocuments, NewCompanyService(mCompanies, mDocuments)
}

func TestCompanyService_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mCompanies, _, svc := newCompanyFixture()
		mCompanies.On("Create", ctx, mock.MatchedBy(func(c *model.Company) bool {
			return c.ID != "" && c.Name == "ACME Corp" && !c.CreatedAt.IsZero()
		})).Return(&model.Company{ID: "gen-id", Name: "ACME Corp", CreatedAt: time.Now()}, nil)

		dto, err := svc.Create(ctx, model.CompanyInput{Name: "  ACME Corp  "})

		require.NoError(t, err)
		assert.Equal(t, "gen-id", dto.ID)
		assert.Equal(t, 0, dto.DocumentCount)
		mCompanies.AssertExpectations(t)
	})

	t.Run("blank name", func(t *testing.T) {
		mCompanies, _, svc := newCompanyFixture()

		dto, err := svc.Create(ctx, model.CompanyInput{Name: "   "})

		assert.ErrorIs(t, err, ErrNameRequired)
		assert.Nil(t, dto)
		mCompanies.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("repository error", func(t *testing.T) {
		mCompanies, _, svc := newCompanyFixture()
		mCompanies.On("Create", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := svc.Create(ctx, model.CompanyInput{Name: "ACME Corp"})

		assert.ErrorIs(t, err, ErrDatabase)
	})
}

func TestCompanyService_Update(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path mutates name only", func(t *testing.T) {
		mCompanies, mDocuments, svc := newCompanyFixture()
		mCompanies.On("FindByID", ctx, "company-1").
			Return(&model.Company{ID: "company-1", Name: "Old Name", Address: "1 Main St"}, nil)
		mCompanies.On("Update", ctx, mock.MatchedBy(func(c *model.Company) bool {
			return c.ID == "company-1" && c.Name == "New Name" && c.Address == "1 Main St"
		})).Return(&model.Company{ID: "company-1", Name: "New Name", Address: "1 Main St"}, nil)
		mDocuments.On("CountByCompany", ctx, "company-1").Return(2, nil)

		dto, err := svc.Update(ctx, "company-1", model.CompanyInput{Name: "New Name"})

		require.NoError(t, err)
		assert.Equal(t, "New Name", dto.Name)
		assert.Equal(t, 2, dto.DocumentCount)
	})

	t.Run("not found", func(t *testing.T) {
		mCompanies, _, svc := newCompanyFixture()
		mCompanies.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Update(ctx, "missing", model.CompanyInput{Name: "New Name"})

		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})

	t.Run("blank name", func(t *testing.T) {
		_, _, svc := newCompanyFixture()
		_, err := svc.Update(ctx, "company-1", model.CompanyInput{Name: ""})
		assert.ErrorIs(t, err, ErrNameRequired)
	})

	t.Run("empty id", func(t *testing.T) {
		_, _, svc := newCompanyFixture()
		_, err := svc.Update(ctx, "", model.CompanyInput{Name: "New Name"})
		assert.ErrorIs(t, err, ErrIDRequired)
	})
}

func TestCompanyService_Delete(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mCompanies, mDocuments, svc := newCompanyFixture()
		mCompanies.On("FindByID", ctx, "company-1").Return(&model.Company{ID: "company-1"}, nil)
		mDocuments.On("CountByCompany", ctx, "company-1").Return(0, nil)
		mCompanies.On("Delete", ctx, "company-1").Return(nil)

		assert.NoError(t, svc.Delete(ctx, "company-1"))
		mCompanies.AssertExpectations(t)
	})

	t.Run("rejected while documents remain", func(t *testing.T) {
		mCompanies, mDocuments, svc := newCompanyFixture()
		mCompanies.On("FindByID", ctx, "company-1").Return(&model.Company{ID: "company-1"}, nil)
		mDocuments.On("CountByCompany", ctx, "company-1").Return(3, nil)

		assert.ErrorIs(t, svc.Delete(ctx, "company-1"), ErrCompanyHasDocuments)
		mCompanies.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("not found", func(t *testing.T) {
		mCompanies, _, svc := newCompanyFixture()
		mCompanies.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		assert.ErrorIs(t, svc.Delete(ctx, "missing"), ErrCompanyNotFound)
	})
}

func TestCompanyService_Get(t *testing.T) {
	ctx := context.Background()

	t.Run("happy path", func(t *testing.T) {
		mCompanies, mDocuments, svc := newCompanyFixture()
		mCompanies.On("FindByID", ctx, "company-1").
			Return(&model.Company{ID: "company-1", Name: "ACME Corp"}, nil)
		mDocuments.On("CountByCompany", ctx, "company-1").Return(5, nil)

		dto, err := svc.Get(ctx, "company-1")

		require.NoError(t, err)
		assert.Equal(t, "ACME Corp", dto.Name)
		assert.Equal(t, 5, dto.DocumentCount)
	})

	t.Run("not found", func(t *testing.T) {
		mCompanies, _, svc := newCompanyFixture()
		mCompanies.On("FindByID", ctx, "missing").Return(nil, sql.ErrNoRows)

		_, err := svc.Get(ctx, "missing")
		assert.ErrorIs(t, err, ErrCompanyNotFound)
	})
}

func TestCompanyService_List(t *testing.T) {
	ctx := context.Background()

	t.Run("annotates each company with its document count", func(t *testing.T) {
		mCompanies, mDocuments, svc := newCompanyFixture()
		mCompanies.On("List", ctx, repository.CompanyListQuery{
			Page:   repository.PageQuery{Limit: 10, Offset: 0},
			Search: "acme",
		}).Return(&repository.PageResult[model.Company]{
			Items: []model.Company{
				{ID: "a", Name: "ACME Corp"},
				{ID: "b", Name: "Global Acme Ltd"},
			},
			Total: 2,
		}, nil)
		mDocuments.On("CountByCompany", ctx, "a").Return(4, nil)
		mDocuments.On("CountByCompany", ctx, "b").Return(0, nil)

		res, err := svc.List(ctx, CompanyListQuery{Page: 1, Size: 10, Search: "acme"})

		require.NoError(t, err)
		assert.Equal(t, 2, res.Total)
		require.Len(t, res.Items, 2)
		assert.Equal(t, 4, res.Items[0].DocumentCount)
		assert.Equal(t, 0, res.Items[1].DocumentCount)
	})

	t.Run("pagination defaults", func(t *testing.T) {
		mCompanies, _, svc := newCompanyFixture()
		mCompanies.On("List", ctx, repository.CompanyListQuery{
			Page: repository.PageQuery{Limit: 10, Offset: 0},
		}).Return(&repository.PageResult[model.Company]{Items: []model.Company{}, Total: 0}, nil)

		res, err := svc.List(ctx, CompanyListQuery{Page: 0, Size: -3})

		require.NoError(t, err)
		assert.Equal(t, 1, res.Page)
		assert.Equal(t, 10, res.Size)
	})

	t.Run("size capped", func(t *testing.T) {
		mCompanies, _, svc := newCompanyFixture()
		mCompanies.On("List", ctx, repository.CompanyListQuery{
			Page: repository.PageQuery{Limit: 100, Offset: 100},
		}).Return(&repository.PageResult[model.Company]{Items: []model.Company{}, Total: 0}, nil)

		res, err := svc.List(ctx, CompanyListQuery{Page: 2, Size: 5000})

		require.NoError(t, err)
		assert.Equal(t, 100, res.Size)
	})

	t.Run("repository error", func(t *testing.T) {
		mCompanies, _, svc := newCompanyFixture()
		mCompanies.On("List", ctx, mock.Anything).Return(nil, errors.New("db fail"))

		_, err := svc.List(ctx, CompanyListQuery{})
		assert.Error(t, err)
	})
}
