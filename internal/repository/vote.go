package repository

import (
	"context"

	"room-decorator/internal/domain"
)

// VoteRepository persists one Vote record per (design, user) pair.
// Saving over an existing pair replaces the record in place.
type VoteRepository interface {
	// Save writes the vote under its (design, user) key.
	Save(ctx context.Context, vote *domain.Vote) error

	// Find returns the pair's current vote, or ErrNotFound.
	Find(ctx context.Context, designID, userID string) (*domain.Vote, error)

	// Delete removes the pair's vote record.
	Delete(ctx context.Context, designID, userID string) error
}
