package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"room-decorator/internal/domain"
	"room-decorator/internal/infra/persistence/kv"
	memorystate "room-decorator/internal/infra/state/memory"
	"room-decorator/internal/repository/mocks"
	"room-decorator/internal/service"
)

type submissionFixture struct {
	submissions *service.SubmissionService
	designs     *kv.DesignRepository
	leaderboard *kv.LeaderboardRepository
}

func newSubmissionFixture(t *testing.T) *submissionFixture {
	t.Helper()
	store := memorystate.NewStore()
	designs := kv.NewDesignRepository(store)
	return &submissionFixture{
		submissions: service.NewSubmissionService(designs, kv.NewSubmissionRepository(store), kv.NewLeaderboardRepository(store)),
		designs:     designs,
		leaderboard: kv.NewLeaderboardRepository(store),
	}
}

func (f *submissionFixture) seedDesign(t *testing.T, id, userID, themeID string) *domain.Design {
	t.Helper()
	design := domain.NewDesign(id, userID, userID, themeID)
	require.NoError(t, f.designs.Save(context.Background(), design))
	return design
}

func TestSubmissionService_SubmitDesign(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()
	f.seedDesign(t, "d1", "u1", "theme-school")

	submitted, err := f.submissions.SubmitDesign(ctx, "u1", "d1")
	require.NoError(t, err)
	assert.True(t, submitted.Submitted)

	stored, _ := f.designs.FindByID(ctx, "d1")
	assert.True(t, stored.Submitted, "submitted flag persisted")

	has, err := f.submissions.HasUserSubmitted(ctx, "u1", "theme-school")
	require.NoError(t, err)
	assert.True(t, has)

	designs, err := f.submissions.GetSubmittedDesigns(ctx, "theme-school", 0, 0)
	require.NoError(t, err)
	require.Len(t, designs, 1)
	assert.Equal(t, "d1", designs[0].ID)
}

func TestSubmissionService_SecondDesignSameThemeConflicts(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()
	f.seedDesign(t, "d1", "u1", "theme-school")
	f.seedDesign(t, "d2", "u1", "theme-school")

	_, err := f.submissions.SubmitDesign(ctx, "u1", "d1")
	require.NoError(t, err)

	_, err = f.submissions.SubmitDesign(ctx, "u1", "d2")
	assert.ErrorIs(t, err, service.ErrAlreadySubmitted)

	stored, _ := f.designs.FindByID(ctx, "d2")
	assert.False(t, stored.Submitted, "conflicting submission applied nothing")
}

func TestSubmissionService_ResubmitSameDesignIsIdempotent(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()
	f.seedDesign(t, "d1", "u1", "theme-school")

	_, err := f.submissions.SubmitDesign(ctx, "u1", "d1")
	require.NoError(t, err)
	_, err = f.submissions.SubmitDesign(ctx, "u1", "d1")
	require.NoError(t, err, "same design id overwrites, no conflict")

	designs, _ := f.submissions.GetSubmittedDesigns(ctx, "theme-school", 0, 0)
	assert.Len(t, designs, 1)
}

func TestSubmissionService_DifferentThemesAreIndependent(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()
	f.seedDesign(t, "d1", "u1", "theme-school")
	f.seedDesign(t, "d2", "u1", "theme-office")

	_, err := f.submissions.SubmitDesign(ctx, "u1", "d1")
	require.NoError(t, err)
	_, err = f.submissions.SubmitDesign(ctx, "u1", "d2")
	require.NoError(t, err, "one submission per user is scoped per theme")
}

func TestSubmissionService_SubmitChecks(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()
	f.seedDesign(t, "d1", "u1", "theme-school")

	_, err := f.submissions.SubmitDesign(ctx, "u2", "d1")
	assert.ErrorIs(t, err, service.ErrNotOwner)

	_, err = f.submissions.SubmitDesign(ctx, "u1", "ghost")
	assert.ErrorIs(t, err, service.ErrDesignNotFound)
}

func TestSubmissionService_PaginationNeverOverlaps(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()
	ids := []string{"d1", "d2", "d3", "d4", "d5"}
	for i, id := range ids {
		user := string(rune('a' + i))
		f.seedDesign(t, id, user, "theme-school")
		_, err := f.submissions.SubmitDesign(ctx, user, id)
		require.NoError(t, err)
	}

	seen := map[string]bool{}
	for offset := 0; offset < len(ids); offset += 2 {
		page, err := f.submissions.GetSubmittedDesigns(ctx, "theme-school", 2, offset)
		require.NoError(t, err)
		for _, design := range page {
			assert.False(t, seen[design.ID], "design %s appeared on two pages", design.ID)
			seen[design.ID] = true
		}
	}
	assert.Len(t, seen, len(ids), "all submissions covered exactly once")

	page, err := f.submissions.GetSubmittedDesigns(ctx, "theme-school", 2, 99)
	require.NoError(t, err)
	assert.Empty(t, page, "offset past the end is an empty page")
}

func TestSubmissionService_GetUserDesigns_StrictIsolation(t *testing.T) {
	f := newSubmissionFixture(t)
	ctx := context.Background()
	f.seedDesign(t, "d1", "u1", "theme-school")
	f.seedDesign(t, "d2", "u2", "theme-school")
	f.seedDesign(t, "d3", "u1", "theme-office")
	_, err := f.submissions.SubmitDesign(ctx, "u2", "d2")
	require.NoError(t, err)

	designs, err := f.submissions.GetUserDesigns(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, designs, 2)
	for _, d := range designs {
		assert.Equal(t, "u1", d.UserID)
	}
}

func TestSubmissionService_StoreFailureSurfacesAsInternal(t *testing.T) {
	designRepo := new(mocks.DesignRepository)
	submissionRepo := new(mocks.SubmissionRepository)
	leaderboardRepo := new(mocks.LeaderboardRepository)
	submissions := service.NewSubmissionService(designRepo, submissionRepo, leaderboardRepo)
	ctx := context.Background()

	design := domain.NewDesign("d1", "u1", "alice", "theme-school")
	designRepo.On("FindByID", ctx, "d1").Return(design, nil).Once()
	submissionRepo.On("HasSubmitter", ctx, "theme-school", "u1").
		Return(false, errors.New("connection refused")).Once()

	_, err := submissions.SubmitDesign(ctx, "u1", "d1")
	assert.ErrorIs(t, err, service.ErrInternal)

	designRepo.AssertExpectations(t)
	submissionRepo.AssertExpectations(t)
	designRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}
