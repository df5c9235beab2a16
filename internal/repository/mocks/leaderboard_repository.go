package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// LeaderboardRepository is a mock of repository.LeaderboardRepository.
type LeaderboardRepository struct {
	mock.Mock
}

func (m *LeaderboardRepository) Register(ctx context.Context, themeID, designID string, score float64) error {
	args := m.Called(ctx, themeID, designID, score)
	return args.Error(0)
}

func (m *LeaderboardRepository) IncrementScore(ctx context.Context, themeID, designID string, delta float64) (float64, error) {
	args := m.Called(ctx, themeID, designID, delta)
	return args.Get(0).(float64), args.Error(1)
}

func (m *LeaderboardRepository) Top(ctx context.Context, themeID string, start, stop int64) ([]string, error) {
	args := m.Called(ctx, themeID, start, stop)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *LeaderboardRepository) Rank(ctx context.Context, themeID, designID string) (int64, error) {
	args := m.Called(ctx, themeID, designID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *LeaderboardRepository) Remove(ctx context.Context, themeID, designID string) error {
	args := m.Called(ctx, themeID, designID)
	return args.Error(0)
}
