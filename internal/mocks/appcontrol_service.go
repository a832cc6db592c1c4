package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"portail-rh/internal/domain"
)

type AppControlService struct {
	mock.Mock
}

func (m *AppControlService) Get(ctx context.Context) (*domain.AppControl, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppControl), args.Error(1)
}

func (m *AppControlService) Set(ctx context.Context, actor *domain.User, input domain.UpdateAppControlInput) (*domain.AppControl, error) {
	args := m.Called(ctx, actor, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AppControl), args.Error(1)
}
