package repository

import (
	"context"

	"room-decorator/internal/domain"
)

// ThemeRepository persists Theme records, the single current-theme
// pointer, and the permanent archive of past theme ids.
type ThemeRepository interface {
	// Save writes the theme blob.
	Save(ctx context.Context, theme *domain.Theme) error

	// FindByID returns the theme, or ErrNotFound.
	FindByID(ctx context.Context, themeID string) (*domain.Theme, error)

	// CurrentID returns the id the current pointer names, or ErrNotFound
	// when no theme has been activated yet.
	CurrentID(ctx context.Context) (string, error)

	// SetCurrentID repoints the current pointer.
	SetCurrentID(ctx context.Context, themeID string) error

	// Archive records themeID in the archived set. Archival is additive;
	// ids are never removed.
	Archive(ctx context.Context, themeID string) error

	// ArchivedIDs returns every archived theme id, sorted ascending.
	ArchivedIDs(ctx context.Context) ([]string, error)
}
