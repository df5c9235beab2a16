package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"room-decorator/internal/domain"
)

// ThemeRepository is a mock of repository.ThemeRepository.
type ThemeRepository struct {
	mock.Mock
}

func (m *ThemeRepository) Save(ctx context.Context, theme *domain.Theme) error {
	args := m.Called(ctx, theme)
	return args.Error(0)
}

func (m *ThemeRepository) FindByID(ctx context.Context, themeID string) (*domain.Theme, error) {
	args := m.Called(ctx, themeID)
	if theme, ok := args.Get(0).(*domain.Theme); ok {
		return theme, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ThemeRepository) CurrentID(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *ThemeRepository) SetCurrentID(ctx context.Context, themeID string) error {
	args := m.Called(ctx, themeID)
	return args.Error(0)
}

func (m *ThemeRepository) Archive(ctx context.Context, themeID string) error {
	args := m.Called(ctx, themeID)
	return args.Error(0)
}

func (m *ThemeRepository) ArchivedIDs(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}
