package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/sirupsen/logrus"

	"room-decorator/internal/domain"
	"room-decorator/internal/repository"
)

// DesignRepository stores designs as JSON blobs under design:{id} and
// maintains the user:{id}:designs ownership index.
type DesignRepository struct {
	store repository.Store
}

// NewDesignRepository creates a DesignRepository over the given store.
func NewDesignRepository(store repository.Store) *DesignRepository {
	if store == nil {
		panic("store cannot be nil for DesignRepository")
	}
	return &DesignRepository{store: store}
}

func (r *DesignRepository) Save(ctx context.Context, design *domain.Design) error {
	blob, err := json.Marshal(design)
	if err != nil {
		return fmt.Errorf("kv: marshal design %s: %w", design.ID, err)
	}
	if err := r.store.Set(ctx, designKey(design.ID), string(blob)); err != nil {
		return fmt.Errorf("kv: save design %s: %w", design.ID, err)
	}
	if err := r.store.AddToSet(ctx, userDesignsKey(design.UserID), design.ID); err != nil {
		return fmt.Errorf("kv: index design %s for user %s: %w", design.ID, design.UserID, err)
	}
	return nil
}

func (r *DesignRepository) FindByID(ctx context.Context, designID string) (*domain.Design, error) {
	blob, err := r.store.Get(ctx, designKey(designID))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("kv: load design %s: %w", designID, err)
	}
	var design domain.Design
	if err := json.Unmarshal([]byte(blob), &design); err != nil {
		return nil, fmt.Errorf("kv: unmarshal design %s: %w", designID, err)
	}
	return &design, nil
}

// FindByUser resolves the ownership index and loads each design. Index
// entries whose blob has gone missing are skipped with a warning rather
// than failing the whole listing.
func (r *DesignRepository) FindByUser(ctx context.Context, userID string) ([]*domain.Design, error) {
	ids, err := r.store.SetMembers(ctx, userDesignsKey(userID))
	if err != nil {
		return nil, fmt.Errorf("kv: list designs for user %s: %w", userID, err)
	}
	designs := make([]*domain.Design, 0, len(ids))
	for _, id := range ids {
		design, err := r.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				logrus.WithFields(logrus.Fields{"design_id": id, "user_id": userID}).
					Warn("dangling design id in user index")
				continue
			}
			return nil, err
		}
		designs = append(designs, design)
	}
	sort.Slice(designs, func(i, j int) bool {
		if designs[i].CreatedAt != designs[j].CreatedAt {
			return designs[i].CreatedAt < designs[j].CreatedAt
		}
		return designs[i].ID < designs[j].ID
	})
	return designs, nil
}

func (r *DesignRepository) Delete(ctx context.Context, design *domain.Design) error {
	if err := r.store.Delete(ctx, designKey(design.ID)); err != nil {
		return fmt.Errorf("kv: delete design %s: %w", design.ID, err)
	}
	if err := r.store.RemoveFromSet(ctx, userDesignsKey(design.UserID), design.ID); err != nil {
		return fmt.Errorf("kv: unindex design %s for user %s: %w", design.ID, design.UserID, err)
	}
	return nil
}
