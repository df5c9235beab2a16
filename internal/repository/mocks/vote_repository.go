package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"room-decorator/internal/domain"
)

// VoteRepository is a mock of repository.VoteRepository.
type VoteRepository struct {
	mock.Mock
}

func (m *VoteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	args := m.Called(ctx, vote)
	return args.Error(0)
}

func (m *VoteRepository) Find(ctx context.Context, designID, userID string) (*domain.Vote, error) {
	args := m.Called(ctx, designID, userID)
	if vote, ok := args.Get(0).(*domain.Vote); ok {
		return vote, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *VoteRepository) Delete(ctx context.Context, designID, userID string) error {
	args := m.Called(ctx, designID, userID)
	return args.Error(0)
}
