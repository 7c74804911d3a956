package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
	"rev-shortener/types"
)

// MockURLService is a mock URLService interface
type MockURLService struct {
	mock.Mock
}

func (m *MockURLService) Shorten(ctx context.Context, longURL string) (types.URLData, error) {
	args := m.Called(ctx, longURL)
	return args.Get(0).(types.URLData), args.Error(1)
}

func (m *MockURLService) Resolve(ctx context.Context, shortURL string) (types.URLData, error) {
	args := m.Called(ctx, shortURL)
	return args.Get(0).(types.URLData), args.Error(1)
}

func (m *MockURLService) ResolveID(ctx context.Context, identifier string) (types.URLData, error) {
	args := m.Called(ctx, identifier)
	return args.Get(0).(types.URLData), args.Error(1)
}

func (m *MockURLService) Stats(ctx context.Context) (types.Stats, error) {
	args := m.Called(ctx)
	return args.Get(0).(types.Stats), args.Error(1)
}
