package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"

	"room-decorator/internal/domain"
	"room-decorator/internal/repository"
)

// SubmissionService locks a design in for the theme gallery: flips the
// one-way submitted flag, indexes the design per theme, records the
// one-submission-per-user-per-theme fact and seeds the leaderboard entry.
type SubmissionService struct {
	designRepo      repository.DesignRepository
	submissionRepo  repository.SubmissionRepository
	leaderboardRepo repository.LeaderboardRepository
}

// NewSubmissionService wires a SubmissionService.
func NewSubmissionService(
	designRepo repository.DesignRepository,
	submissionRepo repository.SubmissionRepository,
	leaderboardRepo repository.LeaderboardRepository,
) *SubmissionService {
	if designRepo == nil || submissionRepo == nil || leaderboardRepo == nil {
		panic("repositories cannot be nil for SubmissionService")
	}
	return &SubmissionService{
		designRepo:      designRepo,
		submissionRepo:  submissionRepo,
		leaderboardRepo: leaderboardRepo,
	}
}

// SubmitDesign submits the caller's design under its theme. A second
// submission for the same theme with a different design fails with
// ErrAlreadySubmitted; re-submitting the same design is an idempotent
// overwrite.
func (s *SubmissionService) SubmitDesign(ctx context.Context, userID, designID string) (*domain.Design, error) {
	design, err := s.designRepo.FindByID(ctx, designID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDesignNotFound
		}
		logrus.WithError(err).WithField("design_id", designID).Error("Failed to load design for submission")
		return nil, ErrInternal
	}
	if design.UserID != userID {
		return nil, ErrNotOwner
	}

	if !design.Submitted {
		taken, err := s.submissionRepo.HasSubmitter(ctx, design.ThemeID, userID)
		if err != nil {
			logrus.WithError(err).WithField("theme_id", design.ThemeID).Error("Failed to check submitter fact")
			return nil, ErrInternal
		}
		if taken {
			return nil, ErrAlreadySubmitted
		}
	}

	design.MarkSubmitted()
	if err := s.designRepo.Save(ctx, design); err != nil {
		logrus.WithError(err).WithField("design_id", designID).Error("Failed to persist submitted design")
		return nil, ErrInternal
	}
	if err := s.submissionRepo.AddSubmission(ctx, design.ThemeID, design.ID); err != nil {
		return nil, fmt.Errorf("index submission: %w", err)
	}
	if err := s.submissionRepo.MarkSubmitter(ctx, design.ThemeID, userID); err != nil {
		return nil, fmt.Errorf("mark submitter: %w", err)
	}
	if err := s.leaderboardRepo.Register(ctx, design.ThemeID, design.ID, float64(design.VoteCount)); err != nil {
		return nil, fmt.Errorf("seed leaderboard entry: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"design_id": design.ID,
		"user_id":   userID,
		"theme_id":  design.ThemeID,
	}).Info("Design submitted")
	return design, nil
}

// HasUserSubmitted reports whether the user has already submitted a
// design for the theme.
func (s *SubmissionService) HasUserSubmitted(ctx context.Context, userID, themeID string) (bool, error) {
	taken, err := s.submissionRepo.HasSubmitter(ctx, themeID, userID)
	if err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{"user_id": userID, "theme_id": themeID}).
			Error("Failed to check submitter fact")
		return false, ErrInternal
	}
	return taken, nil
}

// GetSubmittedDesigns returns one page of a theme's submissions. The
// underlying index is sorted by design id, so sequential offsets never
// return overlapping pages. limit <= 0 means no limit.
func (s *SubmissionService) GetSubmittedDesigns(ctx context.Context, themeID string, limit, offset int) ([]*domain.Design, error) {
	ids, err := s.submissionRepo.Submissions(ctx, themeID)
	if err != nil {
		logrus.WithError(err).WithField("theme_id", themeID).Error("Failed to list submissions")
		return nil, ErrInternal
	}
	if offset < 0 {
		offset = 0
	}
	if offset >= len(ids) {
		return []*domain.Design{}, nil
	}
	ids = ids[offset:]
	if limit > 0 && limit < len(ids) {
		ids = ids[:limit]
	}

	designs := make([]*domain.Design, 0, len(ids))
	for _, id := range ids {
		design, err := s.designRepo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				logrus.WithFields(logrus.Fields{"design_id": id, "theme_id": themeID}).
					Warn("Submission index references a missing design")
				continue
			}
			logrus.WithError(err).WithField("design_id", id).Error("Failed to load submitted design")
			return nil, ErrInternal
		}
		designs = append(designs, design)
	}
	return designs, nil
}

// GetUserDesigns returns every design owned by userID and nothing else.
func (s *SubmissionService) GetUserDesigns(ctx context.Context, userID string) ([]*domain.Design, error) {
	designs, err := s.designRepo.FindByUser(ctx, userID)
	if err != nil {
		logrus.WithError(err).WithField("user_id", userID).Error("Failed to list user designs")
		return nil, ErrInternal
	}
	return designs, nil
}
