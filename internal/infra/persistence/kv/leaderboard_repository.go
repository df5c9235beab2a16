package kv

import (
	"context"
	"errors"
	"fmt"

	"room-decorator/internal/repository"
)

// LeaderboardRepository keeps the per-theme ranking in the
// leaderboard:{themeId} sorted set: member = design id, score = vote
// count. Score changes use the store's atomic increment so concurrent
// votes on one design never lose a delta.
type LeaderboardRepository struct {
	store repository.Store
}

// NewLeaderboardRepository creates a LeaderboardRepository over the store.
func NewLeaderboardRepository(store repository.Store) *LeaderboardRepository {
	if store == nil {
		panic("store cannot be nil for LeaderboardRepository")
	}
	return &LeaderboardRepository{store: store}
}

func (r *LeaderboardRepository) Register(ctx context.Context, themeID, designID string, score float64) error {
	if err := r.store.AddScored(ctx, leaderboardKey(themeID), designID, score); err != nil {
		return fmt.Errorf("kv: register %s on leaderboard %s: %w", designID, themeID, err)
	}
	return nil
}

func (r *LeaderboardRepository) IncrementScore(ctx context.Context, themeID, designID string, delta float64) (float64, error) {
	score, err := r.store.IncrementScore(ctx, leaderboardKey(themeID), designID, delta)
	if err != nil {
		return 0, fmt.Errorf("kv: adjust score of %s on leaderboard %s: %w", designID, themeID, err)
	}
	return score, nil
}

func (r *LeaderboardRepository) Top(ctx context.Context, themeID string, start, stop int64) ([]string, error) {
	ids, err := r.store.RangeDescending(ctx, leaderboardKey(themeID), start, stop)
	if err != nil {
		return nil, fmt.Errorf("kv: range leaderboard %s: %w", themeID, err)
	}
	return ids, nil
}

func (r *LeaderboardRepository) Rank(ctx context.Context, themeID, designID string) (int64, error) {
	rank, err := r.store.RankDescending(ctx, leaderboardKey(themeID), designID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return 0, repository.ErrNotFound
		}
		return 0, fmt.Errorf("kv: rank %s on leaderboard %s: %w", designID, themeID, err)
	}
	return rank, nil
}

func (r *LeaderboardRepository) Remove(ctx context.Context, themeID, designID string) error {
	if err := r.store.RemoveScored(ctx, leaderboardKey(themeID), designID); err != nil {
		return fmt.Errorf("kv: remove %s from leaderboard %s: %w", designID, themeID, err)
	}
	return nil
}
