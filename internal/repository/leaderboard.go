package repository

import "context"

// LeaderboardRepository maintains the per-theme ranking sorted set:
// member = design id, score = vote count. Score updates go through the
// store's atomic increment so concurrent votes never lose a delta.
type LeaderboardRepository interface {
	// Register inserts or overwrites designID with the given score.
	// Submission registers a design at its current vote count.
	Register(ctx context.Context, themeID, designID string, score float64) error

	// IncrementScore atomically applies delta to designID's score and
	// returns the new score.
	IncrementScore(ctx context.Context, themeID, designID string, delta float64) (float64, error)

	// Top returns design ids ordered by score descending (ties by id
	// ascending), ranks start through stop inclusive; stop -1 means all.
	Top(ctx context.Context, themeID string, start, stop int64) ([]string, error)

	// Rank returns designID's 0-based descending rank, or ErrNotFound.
	Rank(ctx context.Context, themeID, designID string) (int64, error)

	// Remove drops designID from the theme's ranking.
	Remove(ctx context.Context, themeID, designID string) error
}
