package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"room-decorator/internal/domain"
	"room-decorator/internal/repository"
)

// DefaultThemeDuration is the window a theme stays current after
// activation when no override is configured.
const DefaultThemeDuration = 24 * time.Hour

// rotationCycle is the fixed ordered list of daily prompts. Rotation
// wraps back to the head after the last entry. Ids are stable slugs so
// the cycle position survives restarts.
var rotationCycle = []domain.Theme{
	{ID: "theme-school", Name: "School", Description: "Decorate a classroom corner that makes you want to study."},
	{ID: "theme-office", Name: "Office", Description: "Build the workspace of your dreams (or nightmares)."},
	{ID: "theme-beach-house", Name: "Beach House", Description: "Salt in the air, sand on the floor."},
	{ID: "theme-space-station", Name: "Space Station", Description: "Zero gravity, maximum style."},
	{ID: "theme-cozy-cabin", Name: "Cozy Cabin", Description: "Firewood, blankets, and no Wi-Fi."},
	{ID: "theme-rooftop-garden", Name: "Rooftop Garden", Description: "Green space above the city noise."},
}

// ThemeService owns the single current-theme pointer and the lifecycle
// Inactive -> Active -> Expired -> Archived. Archival is additive and
// permanent; expired themes are deactivated, never deleted.
type ThemeService struct {
	themeRepo repository.ThemeRepository
	duration  time.Duration
}

// NewThemeService creates a ThemeService whose activations last the
// given duration (DefaultThemeDuration when non-positive).
func NewThemeService(themeRepo repository.ThemeRepository, duration time.Duration) *ThemeService {
	if themeRepo == nil {
		panic("theme repository cannot be nil for ThemeService")
	}
	if duration <= 0 {
		duration = DefaultThemeDuration
	}
	return &ThemeService{themeRepo: themeRepo, duration: duration}
}

// GetCurrentTheme returns the theme the current pointer names, or
// ErrThemeNotFound when none has been activated yet.
func (s *ThemeService) GetCurrentTheme(ctx context.Context) (*domain.Theme, error) {
	id, err := s.themeRepo.CurrentID(ctx)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrThemeNotFound
		}
		logrus.WithError(err).Error("Failed to read current theme pointer")
		return nil, ErrInternal
	}
	theme, err := s.themeRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrThemeNotFound
		}
		logrus.WithError(err).WithField("theme_id", id).Error("Failed to load current theme")
		return nil, ErrInternal
	}
	return theme, nil
}

// GetTheme returns the theme by id, current or archived.
func (s *ThemeService) GetTheme(ctx context.Context, themeID string) (*domain.Theme, error) {
	theme, err := s.themeRepo.FindByID(ctx, themeID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrThemeNotFound
		}
		logrus.WithError(err).WithField("theme_id", themeID).Error("Failed to load theme")
		return nil, ErrInternal
	}
	return theme, nil
}

// EnsureCurrentTheme returns the current theme, activating the head of
// the rotation cycle first if no theme has ever been activated.
func (s *ThemeService) EnsureCurrentTheme(ctx context.Context) (*domain.Theme, error) {
	theme, err := s.GetCurrentTheme(ctx)
	if err == nil {
		return theme, nil
	}
	if !errors.Is(err, ErrThemeNotFound) {
		return nil, err
	}
	head := rotationCycle[0]
	if err := s.ActivateNext(ctx, &head); err != nil {
		return nil, err
	}
	return &head, nil
}

// ActivateNext deactivates and archives the current theme (when one
// exists), then activates newTheme with a fresh window and repoints the
// current pointer to it.
func (s *ThemeService) ActivateNext(ctx context.Context, newTheme *domain.Theme) error {
	current, err := s.GetCurrentTheme(ctx)
	if err != nil && !errors.Is(err, ErrThemeNotFound) {
		return err
	}
	if current != nil {
		current.Active = false
		if err := s.themeRepo.Save(ctx, current); err != nil {
			return fmt.Errorf("deactivate theme %s: %w", current.ID, err)
		}
		if err := s.themeRepo.Archive(ctx, current.ID); err != nil {
			return fmt.Errorf("archive theme %s: %w", current.ID, err)
		}
	}

	now := domain.NowMillis()
	newTheme.StartTime = now
	newTheme.EndTime = now + s.duration.Milliseconds()
	newTheme.Active = true
	if err := s.themeRepo.Save(ctx, newTheme); err != nil {
		return fmt.Errorf("activate theme %s: %w", newTheme.ID, err)
	}
	if err := s.themeRepo.SetCurrentID(ctx, newTheme.ID); err != nil {
		return fmt.Errorf("repoint current theme to %s: %w", newTheme.ID, err)
	}

	fields := logrus.Fields{"theme_id": newTheme.ID, "theme_name": newTheme.Name}
	if current != nil {
		fields["archived_theme_id"] = current.ID
	}
	logrus.WithFields(fields).Info("Theme activated")
	return nil
}

// RotateIfExpired runs the rotation policy: initialize the cycle head if
// no theme is current, no-op while the current theme is live, otherwise
// activate the next theme in the cycle. It returns the theme that is
// current afterwards and whether a rotation happened.
func (s *ThemeService) RotateIfExpired(ctx context.Context) (*domain.Theme, bool, error) {
	current, err := s.GetCurrentTheme(ctx)
	if errors.Is(err, ErrThemeNotFound) {
		theme, err := s.EnsureCurrentTheme(ctx)
		return theme, theme != nil, err
	}
	if err != nil {
		return nil, false, err
	}
	if !current.Expired(domain.NowMillis()) {
		return current, false, nil
	}

	next := s.successor(current.ID)
	if err := s.ActivateNext(ctx, &next); err != nil {
		return nil, false, err
	}
	return &next, true, nil
}

// GetTimeRemaining returns the milliseconds until the theme expires,
// clamped at zero.
func (s *ThemeService) GetTimeRemaining(theme *domain.Theme) int64 {
	return theme.TimeRemaining(domain.NowMillis())
}

// ArchivedThemeIDs returns every archived theme id.
func (s *ThemeService) ArchivedThemeIDs(ctx context.Context) ([]string, error) {
	ids, err := s.themeRepo.ArchivedIDs(ctx)
	if err != nil {
		logrus.WithError(err).Error("Failed to list archived themes")
		return nil, ErrInternal
	}
	return ids, nil
}

// successor returns a copy of the cycle entry after the given id,
// wrapping past the end. Unknown ids restart the cycle at the head.
func (s *ThemeService) successor(currentID string) domain.Theme {
	for i, theme := range rotationCycle {
		if theme.ID == currentID {
			return rotationCycle[(i+1)%len(rotationCycle)]
		}
	}
	return rotationCycle[0]
}
