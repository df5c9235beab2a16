package kv

import (
	"context"
	"fmt"
	"sort"

	"room-decorator/internal/repository"
)

// SubmissionRepository indexes submitted design ids per theme under
// submissions:{themeId} and the one-way submitter fact under
// theme:{themeId}:submitters.
type SubmissionRepository struct {
	store repository.Store
}

// NewSubmissionRepository creates a SubmissionRepository over the store.
func NewSubmissionRepository(store repository.Store) *SubmissionRepository {
	if store == nil {
		panic("store cannot be nil for SubmissionRepository")
	}
	return &SubmissionRepository{store: store}
}

func (r *SubmissionRepository) AddSubmission(ctx context.Context, themeID, designID string) error {
	if err := r.store.AddToSet(ctx, submissionsKey(themeID), designID); err != nil {
		return fmt.Errorf("kv: index submission %s for theme %s: %w", designID, themeID, err)
	}
	return nil
}

// Submissions returns ids sorted ascending: the set itself is unordered,
// and pagination needs a stable order so sequential pages never overlap.
func (r *SubmissionRepository) Submissions(ctx context.Context, themeID string) ([]string, error) {
	ids, err := r.store.SetMembers(ctx, submissionsKey(themeID))
	if err != nil {
		return nil, fmt.Errorf("kv: list submissions for theme %s: %w", themeID, err)
	}
	sort.Strings(ids)
	return ids, nil
}

func (r *SubmissionRepository) MarkSubmitter(ctx context.Context, themeID, userID string) error {
	if err := r.store.AddToSet(ctx, submittersKey(themeID), userID); err != nil {
		return fmt.Errorf("kv: mark submitter %s for theme %s: %w", userID, themeID, err)
	}
	return nil
}

func (r *SubmissionRepository) HasSubmitter(ctx context.Context, themeID, userID string) (bool, error) {
	ok, err := r.store.IsSetMember(ctx, submittersKey(themeID), userID)
	if err != nil {
		return false, fmt.Errorf("kv: check submitter %s for theme %s: %w", userID, themeID, err)
	}
	return ok, nil
}
