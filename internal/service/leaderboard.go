package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"room-decorator/internal/domain"
	"room-decorator/internal/repository"
)

// LeaderboardService derives ranked views over a theme's submissions
// from the leaderboard sorted set. Ordering is vote count descending
// with ties broken by design id ascending; ranks are dense and 1-based.
// Each entry re-reads its design blob at view time, so username and vote
// count always mirror the design record within a single read.
type LeaderboardService struct {
	designRepo      repository.DesignRepository
	leaderboardRepo repository.LeaderboardRepository
}

// NewLeaderboardService wires a LeaderboardService.
func NewLeaderboardService(
	designRepo repository.DesignRepository,
	leaderboardRepo repository.LeaderboardRepository,
) *LeaderboardService {
	if designRepo == nil || leaderboardRepo == nil {
		panic("repositories cannot be nil for LeaderboardService")
	}
	return &LeaderboardService{designRepo: designRepo, leaderboardRepo: leaderboardRepo}
}

// GetTopDesigns returns up to n ranked entries for the theme.
// n <= 0 means the full board.
func (s *LeaderboardService) GetTopDesigns(ctx context.Context, themeID string, n int) ([]domain.LeaderboardEntry, error) {
	entries, err := s.GetLeaderboardByTheme(ctx, themeID)
	if err != nil {
		return nil, err
	}
	if n > 0 && n < len(entries) {
		entries = entries[:n]
	}
	return entries, nil
}

// GetLeaderboardByTheme returns the full ranked list for the theme.
func (s *LeaderboardService) GetLeaderboardByTheme(ctx context.Context, themeID string) ([]domain.LeaderboardEntry, error) {
	ids, err := s.leaderboardRepo.Top(ctx, themeID, 0, -1)
	if err != nil {
		logrus.WithError(err).WithField("theme_id", themeID).Error("Failed to range leaderboard")
		return nil, ErrInternal
	}

	entries := make([]domain.LeaderboardEntry, 0, len(ids))
	for _, id := range ids {
		design, err := s.designRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				logrus.WithFields(logrus.Fields{"design_id": id, "theme_id": themeID}).
					Warn("Leaderboard references a missing design")
				continue
			}
			logrus.WithError(err).WithField("design_id", id).Error("Failed to load ranked design")
			return nil, ErrInternal
		}
		entries = append(entries, domain.LeaderboardEntry{
			Rank:      len(entries) + 1,
			Design:    design,
			Username:  design.Username,
			VoteCount: design.VoteCount,
		})
	}
	return entries, nil
}
