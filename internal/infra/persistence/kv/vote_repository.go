package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"room-decorator/internal/domain"
	"room-decorator/internal/repository"
)

// VoteRepository stores one vote blob per (design, user) pair under
// votes:{designId}:{userId}. A second save for the same pair replaces
// the record, which is what keeps the pair unique.
type VoteRepository struct {
	store repository.Store
}

// NewVoteRepository creates a VoteRepository over the given store.
func NewVoteRepository(store repository.Store) *VoteRepository {
	if store == nil {
		panic("store cannot be nil for VoteRepository")
	}
	return &VoteRepository{store: store}
}

func (r *VoteRepository) Save(ctx context.Context, vote *domain.Vote) error {
	blob, err := json.Marshal(vote)
	if err != nil {
		return fmt.Errorf("kv: marshal vote %s/%s: %w", vote.DesignID, vote.UserID, err)
	}
	if err := r.store.Set(ctx, voteKey(vote.DesignID, vote.UserID), string(blob)); err != nil {
		return fmt.Errorf("kv: save vote %s/%s: %w", vote.DesignID, vote.UserID, err)
	}
	return nil
}

func (r *VoteRepository) Find(ctx context.Context, designID, userID string) (*domain.Vote, error) {
	blob, err := r.store.Get(ctx, voteKey(designID, userID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("kv: load vote %s/%s: %w", designID, userID, err)
	}
	var vote domain.Vote
	if err := json.Unmarshal([]byte(blob), &vote); err != nil {
		return nil, fmt.Errorf("kv: unmarshal vote %s/%s: %w", designID, userID, err)
	}
	return &vote, nil
}

func (r *VoteRepository) Delete(ctx context.Context, designID, userID string) error {
	if err := r.store.Delete(ctx, voteKey(designID, userID)); err != nil {
		return fmt.Errorf("kv: delete vote %s/%s: %w", designID, userID, err)
	}
	return nil
}
