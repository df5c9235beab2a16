package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// SubmissionRepository is a mock of repository.SubmissionRepository.
type SubmissionRepository struct {
	mock.Mock
}

func (m *SubmissionRepository) AddSubmission(ctx context.Context, themeID, designID string) error {
	args := m.Called(ctx, themeID, designID)
	return args.Error(0)
}

func (m *SubmissionRepository) Submissions(ctx context.Context, themeID string) ([]string, error) {
	args := m.Called(ctx, themeID)
	if ids, ok := args.Get(0).([]string); ok {
		return ids, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *SubmissionRepository) MarkSubmitter(ctx context.Context, themeID, userID string) error {
	args := m.Called(ctx, themeID, userID)
	return args.Error(0)
}

func (m *SubmissionRepository) HasSubmitter(ctx context.Context, themeID, userID string) (bool, error) {
	args := m.Called(ctx, themeID, userID)
	return args.Bool(0), args.Error(1)
}
