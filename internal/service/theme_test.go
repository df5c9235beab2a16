package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-decorator/internal/domain"
	"room-decorator/internal/infra/persistence/kv"
	memorystate "room-decorator/internal/infra/state/memory"
	"room-decorator/internal/service"
)

type themeFixture struct {
	themes *service.ThemeService
	repo   *kv.ThemeRepository
}

func newThemeFixture(t *testing.T, duration time.Duration) *themeFixture {
	t.Helper()
	repo := kv.NewThemeRepository(memorystate.NewStore())
	return &themeFixture{
		themes: service.NewThemeService(repo, duration),
		repo:   repo,
	}
}

// seedCurrent installs a theme as current with an explicit window, so
// tests can place it in the past without waiting.
func (f *themeFixture) seedCurrent(t *testing.T, theme *domain.Theme) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, f.repo.Save(ctx, theme))
	require.NoError(t, f.repo.SetCurrentID(ctx, theme.ID))
}

func TestThemeService_EnsureCurrentTheme_ActivatesCycleHead(t *testing.T) {
	f := newThemeFixture(t, time.Hour)
	ctx := context.Background()

	_, err := f.themes.GetCurrentTheme(ctx)
	assert.ErrorIs(t, err, service.ErrThemeNotFound)

	theme, err := f.themes.EnsureCurrentTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, "School", theme.Name)
	assert.True(t, theme.Active)
	assert.Equal(t, theme.StartTime+time.Hour.Milliseconds(), theme.EndTime)

	again, err := f.themes.EnsureCurrentTheme(ctx)
	require.NoError(t, err)
	assert.Equal(t, theme.ID, again.ID, "second call reuses the current theme")
}

func TestThemeService_RotateIfExpired_NoOpWhileLive(t *testing.T) {
	f := newThemeFixture(t, time.Hour)
	ctx := context.Background()

	_, err := f.themes.EnsureCurrentTheme(ctx)
	require.NoError(t, err)

	current, rotated, err := f.themes.RotateIfExpired(ctx)
	require.NoError(t, err)
	assert.False(t, rotated)
	assert.Equal(t, "theme-school", current.ID)
}

func TestThemeService_RotateIfExpired_SchoolToOffice(t *testing.T) {
	f := newThemeFixture(t, time.Hour)
	ctx := context.Background()

	now := domain.NowMillis()
	f.seedCurrent(t, &domain.Theme{
		ID:        "theme-school",
		Name:      "School",
		StartTime: now - 2*time.Hour.Milliseconds(),
		EndTime:   now - time.Hour.Milliseconds(),
		Active:    true,
	})

	current, rotated, err := f.themes.RotateIfExpired(ctx)
	require.NoError(t, err)
	assert.True(t, rotated)
	assert.Equal(t, "Office", current.Name)

	id, err := f.repo.CurrentID(ctx)
	require.NoError(t, err)
	assert.Equal(t, "theme-office", id, "current pointer repointed")

	archived, err := f.themes.ArchivedThemeIDs(ctx)
	require.NoError(t, err)
	assert.Contains(t, archived, "theme-school")

	school, err := f.themes.GetTheme(ctx, "theme-school")
	require.NoError(t, err)
	assert.False(t, school.Active, "archived theme deactivated, not deleted")
}

func TestThemeService_RotationWrapsPastEndOfCycle(t *testing.T) {
	f := newThemeFixture(t, time.Hour)
	ctx := context.Background()

	now := domain.NowMillis()
	f.seedCurrent(t, &domain.Theme{
		ID:      "theme-rooftop-garden",
		Name:    "Rooftop Garden",
		EndTime: now - 1,
		Active:  true,
	})

	current, rotated, err := f.themes.RotateIfExpired(ctx)
	require.NoError(t, err)
	assert.True(t, rotated)
	assert.Equal(t, "theme-school", current.ID, "cycle wraps back to the head")
}

func TestThemeService_RepeatedRotationIsIdempotentWhileLive(t *testing.T) {
	f := newThemeFixture(t, time.Hour)
	ctx := context.Background()

	now := domain.NowMillis()
	f.seedCurrent(t, &domain.Theme{ID: "theme-school", Name: "School", EndTime: now - 1, Active: true})

	_, rotated, err := f.themes.RotateIfExpired(ctx)
	require.NoError(t, err)
	require.True(t, rotated)

	// The new window is fresh, so an immediate re-check must not rotate
	// again even when the scheduler fires back to back.
	current, rotated, err := f.themes.RotateIfExpired(ctx)
	require.NoError(t, err)
	assert.False(t, rotated)
	assert.Equal(t, "theme-office", current.ID)
}

func TestThemeService_GetTimeRemaining(t *testing.T) {
	f := newThemeFixture(t, time.Hour)

	now := domain.NowMillis()
	live := &domain.Theme{ID: "theme-school", EndTime: now + 5000}
	remaining := f.themes.GetTimeRemaining(live)
	assert.Greater(t, remaining, int64(0))
	assert.LessOrEqual(t, remaining, int64(5000))

	expired := &domain.Theme{ID: "theme-office", EndTime: now - 5000}
	assert.Equal(t, int64(0), f.themes.GetTimeRemaining(expired), "never negative")
}

func TestThemeService_ArchiveGrowsAcrossRotations(t *testing.T) {
	f := newThemeFixture(t, time.Hour)
	ctx := context.Background()

	_, err := f.themes.EnsureCurrentTheme(ctx)
	require.NoError(t, err)

	for _, want := range []string{"theme-office", "theme-beach-house", "theme-space-station"} {
		current, err := f.themes.GetCurrentTheme(ctx)
		require.NoError(t, err)
		expired := *current
		expired.EndTime = domain.NowMillis() - 1
		require.NoError(t, f.repo.Save(ctx, &expired))

		next, rotated, err := f.themes.RotateIfExpired(ctx)
		require.NoError(t, err)
		require.True(t, rotated)
		assert.Equal(t, want, next.ID)
	}

	archived, err := f.themes.ArchivedThemeIDs(ctx)
	require.NoError(t, err)
	assert.Len(t, archived, 3, "every finished theme is archived exactly once")
}
