package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"room-decorator/internal/domain"
	"room-decorator/internal/repository"
)

// ThemeRepository stores themes as JSON blobs under theme:{id}, the
// current pointer under theme:current, and archived ids in the
// theme:archived set.
type ThemeRepository struct {
	store repository.Store
}

// NewThemeRepository creates a ThemeRepository over the given store.
func NewThemeRepository(store repository.Store) *ThemeRepository {
	if store == nil {
		panic("store cannot be nil for ThemeRepository")
	}
	return &ThemeRepository{store: store}
}

func (r *ThemeRepository) Save(ctx context.Context, theme *domain.Theme) error {
	blob, err := json.Marshal(theme)
	if err != nil {
		return fmt.Errorf("kv: marshal theme %s: %w", theme.ID, err)
	}
	if err := r.store.Set(ctx, themeKey(theme.ID), string(blob)); err != nil {
		return fmt.Errorf("kv: save theme %s: %w", theme.ID, err)
	}
	return nil
}

func (r *ThemeRepository) FindByID(ctx context.Context, themeID string) (*domain.Theme, error) {
	blob, err := r.store.Get(ctx, themeKey(themeID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("kv: load theme %s: %w", themeID, err)
	}
	var theme domain.Theme
	if err := json.Unmarshal([]byte(blob), &theme); err != nil {
		return nil, fmt.Errorf("kv: unmarshal theme %s: %w", themeID, err)
	}
	return &theme, nil
}

func (r *ThemeRepository) CurrentID(ctx context.Context) (string, error) {
	id, err := r.store.Get(ctx, currentThemeKey)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return "", repository.ErrNotFound
		}
		return "", fmt.Errorf("kv: load current theme pointer: %w", err)
	}
	return id, nil
}

func (r *ThemeRepository) SetCurrentID(ctx context.Context, themeID string) error {
	if err := r.store.Set(ctx, currentThemeKey, themeID); err != nil {
		return fmt.Errorf("kv: set current theme pointer: %w", err)
	}
	return nil
}

func (r *ThemeRepository) Archive(ctx context.Context, themeID string) error {
	if err := r.store.AddToSet(ctx, archivedThemeKey, themeID); err != nil {
		return fmt.Errorf("kv: archive theme %s: %w", themeID, err)
	}
	return nil
}

func (r *ThemeRepository) ArchivedIDs(ctx context.Context) ([]string, error) {
	ids, err := r.store.SetMembers(ctx, archivedThemeKey)
	if err != nil {
		return nil, fmt.Errorf("kv: list archived themes: %w", err)
	}
	sort.Strings(ids)
	return ids, nil
}
