package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockOpener struct {
	mock.Mock
}

func (m *MockOpener) Open(ctx context.Context, path string) error {
	args := m.Called(ctx, path)
	return args.Error(0)
}
