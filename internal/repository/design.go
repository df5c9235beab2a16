package repository

import (
	"context"

	"room-decorator/internal/domain"
)

// DesignRepository persists Design records and the per-user ownership
// index.
type DesignRepository interface {
	// Save writes the design blob and ensures it is indexed under its
	// owner.
	Save(ctx context.Context, design *domain.Design) error

	// FindByID returns the design, or ErrNotFound.
	FindByID(ctx context.Context, designID string) (*domain.Design, error)

	// FindByUser returns every design owned by userID, ordered by
	// creation time ascending. Never returns another user's designs.
	FindByUser(ctx context.Context, userID string) ([]*domain.Design, error)

	// Delete removes the design blob and its ownership index entry.
	Delete(ctx context.Context, design *domain.Design) error
}
