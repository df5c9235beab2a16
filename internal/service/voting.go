package service

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"room-decorator/internal/domain"
	"room-decorator/internal/repository"
)

// VotingService records one active vote per (voter, design) pair and
// keeps the design's vote count consistent with the recorded votes.
//
// The count lives in two places: the design blob (a last-writer-wins
// mirror used for display) and the theme leaderboard sorted set, which is
// updated with the store's atomic increment and therefore never loses a
// delta under concurrent votes.
type VotingService struct {
	designRepo      repository.DesignRepository
	voteRepo        repository.VoteRepository
	leaderboardRepo repository.LeaderboardRepository
}

// NewVotingService wires a VotingService.
func NewVotingService(
	designRepo repository.DesignRepository,
	voteRepo repository.VoteRepository,
	leaderboardRepo repository.LeaderboardRepository,
) *VotingService {
	if designRepo == nil || voteRepo == nil || leaderboardRepo == nil {
		panic("repositories cannot be nil for VotingService")
	}
	return &VotingService{
		designRepo:      designRepo,
		voteRepo:        voteRepo,
		leaderboardRepo: leaderboardRepo,
	}
}

// CastVote records a first vote on a design: +1 for an upvote, -1 for a
// downvote. Voting on your own design fails with ErrSelfVote; a second
// vote on the same design fails with ErrDuplicateVote (use ChangeVote).
func (s *VotingService) CastVote(ctx context.Context, voterID, designID string, voteType domain.VoteType) (*domain.Design, error) {
	if !voteType.Valid() {
		return nil, ErrInvalidVoteType
	}
	design, err := s.loadVotable(ctx, voterID, designID)
	if err != nil {
		return nil, err
	}
	if _, err := s.voteRepo.Find(ctx, designID, voterID); err == nil {
		return nil, ErrDuplicateVote
	} else if !errors.Is(err, repository.ErrNotFound) {
		logrus.WithError(err).WithField("design_id", designID).Error("Failed to check existing vote")
		return nil, ErrInternal
	}

	vote := &domain.Vote{
		UserID:    voterID,
		DesignID:  designID,
		VoteType:  voteType,
		Timestamp: domain.NowMillis(),
	}
	if err := s.voteRepo.Save(ctx, vote); err != nil {
		logrus.WithError(err).WithField("design_id", designID).Error("Failed to save vote")
		return nil, ErrInternal
	}
	return s.applyDelta(ctx, design, voteType.Delta())
}

// ChangeVote flips an existing vote to newType. Same type is a no-op,
// not an error; a flip moves the count by two.
func (s *VotingService) ChangeVote(ctx context.Context, voterID, designID string, newType domain.VoteType) (*domain.Design, error) {
	if !newType.Valid() {
		return nil, ErrInvalidVoteType
	}
	design, err := s.loadVotable(ctx, voterID, designID)
	if err != nil {
		return nil, err
	}
	existing, err := s.findVote(ctx, designID, voterID)
	if err != nil {
		return nil, err
	}
	if existing.VoteType == newType {
		return design, nil
	}

	existing.VoteType = newType
	existing.Timestamp = domain.NowMillis()
	if err := s.voteRepo.Save(ctx, existing); err != nil {
		logrus.WithError(err).WithField("design_id", designID).Error("Failed to replace vote")
		return nil, ErrInternal
	}
	// Flipping takes back the old delta and applies the new one.
	return s.applyDelta(ctx, design, 2*newType.Delta())
}

// RemoveVote withdraws an existing vote and reverses its delta.
func (s *VotingService) RemoveVote(ctx context.Context, voterID, designID string) (*domain.Design, error) {
	design, err := s.loadVotable(ctx, voterID, designID)
	if err != nil {
		return nil, err
	}
	existing, err := s.findVote(ctx, designID, voterID)
	if err != nil {
		return nil, err
	}
	if err := s.voteRepo.Delete(ctx, designID, voterID); err != nil {
		logrus.WithError(err).WithField("design_id", designID).Error("Failed to delete vote")
		return nil, ErrInternal
	}
	return s.applyDelta(ctx, design, -existing.VoteType.Delta())
}

// ToggleVote is the desired-state entry used by the vote endpoint: no
// existing vote casts one, the same type removes it, a different type
// flips it. It returns the design and the voter's vote after the change
// (nil when removed).
func (s *VotingService) ToggleVote(ctx context.Context, voterID, designID string, voteType domain.VoteType) (*domain.Design, *domain.Vote, error) {
	if !voteType.Valid() {
		return nil, nil, ErrInvalidVoteType
	}
	existing, err := s.GetUserVote(ctx, voterID, designID)
	if err != nil {
		return nil, nil, err
	}
	switch {
	case existing == nil:
		design, err := s.CastVote(ctx, voterID, designID, voteType)
		if err != nil {
			return nil, nil, err
		}
		vote, _ := s.GetUserVote(ctx, voterID, designID)
		return design, vote, nil
	case existing.VoteType == voteType:
		design, err := s.RemoveVote(ctx, voterID, designID)
		if err != nil {
			return nil, nil, err
		}
		return design, nil, nil
	default:
		design, err := s.ChangeVote(ctx, voterID, designID, voteType)
		if err != nil {
			return nil, nil, err
		}
		vote, _ := s.GetUserVote(ctx, voterID, designID)
		return design, vote, nil
	}
}

// GetUserVote returns the voter's current vote on the design, or nil.
func (s *VotingService) GetUserVote(ctx context.Context, voterID, designID string) (*domain.Vote, error) {
	vote, err := s.voteRepo.Find(ctx, designID, voterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		logrus.WithError(err).WithField("design_id", designID).Error("Failed to load vote")
		return nil, ErrInternal
	}
	return vote, nil
}

// loadVotable loads the design and enforces the voting gates: it must
// exist, be submitted, and not belong to the voter.
func (s *VotingService) loadVotable(ctx context.Context, voterID, designID string) (*domain.Design, error) {
	design, err := s.designRepo.FindByID(ctx, designID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDesignNotFound
		}
		logrus.WithError(err).WithField("design_id", designID).Error("Failed to load design for voting")
		return nil, ErrInternal
	}
	// Unsubmitted designs are not votable and not visible to other users.
	if !design.Submitted {
		return nil, ErrDesignNotFound
	}
	if design.UserID == voterID {
		return nil, ErrSelfVote
	}
	return design, nil
}

func (s *VotingService) findVote(ctx context.Context, designID, voterID string) (*domain.Vote, error) {
	vote, err := s.voteRepo.Find(ctx, designID, voterID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrVoteNotFound
		}
		logrus.WithError(err).WithField("design_id", designID).Error("Failed to load vote")
		return nil, ErrInternal
	}
	return vote, nil
}

// applyDelta rewrites the design blob with the adjusted count and applies
// the same delta to the leaderboard score atomically.
func (s *VotingService) applyDelta(ctx context.Context, design *domain.Design, delta int) (*domain.Design, error) {
	design.VoteCount += delta
	if err := s.designRepo.Save(ctx, design); err != nil {
		logrus.WithError(err).WithField("design_id", design.ID).Error("Failed to persist vote count")
		return nil, ErrInternal
	}
	if _, err := s.leaderboardRepo.IncrementScore(ctx, design.ThemeID, design.ID, float64(delta)); err != nil {
		logrus.WithError(err).WithFields(logrus.Fields{
			"design_id": design.ID,
			"theme_id":  design.ThemeID,
		}).Error("Failed to adjust leaderboard score")
		return nil, ErrInternal
	}
	return design, nil
}
