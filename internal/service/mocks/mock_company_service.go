package mocks

import (
	"context"

	"doctrack/internal/model"
	"doctrack/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockCompanyService struct {
	mock.Mock
}

func (m *MockCompanyService) Create(ctx context.Context, in model.CompanyInput) (*model.CompanyDTO, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyDTO), args.Error(1)
}

func (m *MockCompanyService) Update(ctx context.Context, id string, in model.CompanyInput) (*model.CompanyDTO, error) {
	args := m.Called(ctx, id, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyDTO), args.Error(1)
}

func (m *MockCompanyService) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCompanyService) Get(ctx context.Context, id string) (*model.CompanyDTO, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.CompanyDTO), args.Error(1)
}

func (m *MockCompanyService) List(ctx context.Context, q service.CompanyListQuery) (*service.CompanyListResult, error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.CompanyListResult), args.Error(1)
}
