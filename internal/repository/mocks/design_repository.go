// Package mocks provides testify mocks for the repository interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"room-decorator/internal/domain"
)

// DesignRepository is a mock of repository.DesignRepository.
type DesignRepository struct {
	mock.Mock
}

func (m *DesignRepository) Save(ctx context.Context, design *domain.Design) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}

func (m *DesignRepository) FindByID(ctx context.Context, designID string) (*domain.Design, error) {
	args := m.Called(ctx, designID)
	if design, ok := args.Get(0).(*domain.Design); ok {
		return design, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DesignRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Design, error) {
	args := m.Called(ctx, userID)
	if designs, ok := args.Get(0).([]*domain.Design); ok {
		return designs, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *DesignRepository) Delete(ctx context.Context, design *domain.Design) error {
	args := m.Called(ctx, design)
	return args.Error(0)
}
