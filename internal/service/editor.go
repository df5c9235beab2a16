package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"room-decorator/internal/domain"
	"room-decorator/internal/repository"
)

// Z-index adjustment directions accepted by AdjustZIndex.
const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// EditorService applies layout mutations to a design: placing, moving,
// rotating, layering and removing assets, and changing the background
// color. Every mutation is a load-mutate-save cycle against the design
// repository; the whole blob is rewritten, last writer wins.
type EditorService struct {
	designRepo repository.DesignRepository
	canvas     domain.Canvas
}

// NewEditorService creates an EditorService bounded by the given canvas.
func NewEditorService(designRepo repository.DesignRepository, canvas domain.Canvas) *EditorService {
	if designRepo == nil {
		panic("design repository cannot be nil for EditorService")
	}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		canvas = domain.DefaultCanvas
	}
	return &EditorService{designRepo: designRepo, canvas: canvas}
}

// Canvas returns the bounds mutations are clamped to.
func (s *EditorService) Canvas() domain.Canvas {
	return s.canvas
}

// CreateDesign mints a new empty design for the owner under the given
// theme and persists it.
func (s *EditorService) CreateDesign(ctx context.Context, userID, username, themeID string) (*domain.Design, error) {
	design := domain.NewDesign(uuid.NewString(), userID, username, themeID)
	if err := s.designRepo.Save(ctx, design); err != nil {
		return nil, fmt.Errorf("create design: %w", err)
	}
	logrus.WithFields(logrus.Fields{
		"design_id": design.ID,
		"user_id":   userID,
		"theme_id":  themeID,
	}).Info("Design created")
	return design, nil
}

// GetDesign returns a design visible to the requester: the owner always
// sees it, everyone else only once it is submitted.
func (s *EditorService) GetDesign(ctx context.Context, requesterID, designID string) (*domain.Design, error) {
	design, err := s.load(ctx, designID)
	if err != nil {
		return nil, err
	}
	if design.UserID != requesterID && !design.Submitted {
		return nil, ErrDesignNotFound
	}
	return design, nil
}

// SaveDesign upserts a client-held design blob for its owner. Identity
// fields, the submitted flag and the vote count are never taken from the
// client; for an existing design they come from the stored record.
func (s *EditorService) SaveDesign(ctx context.Context, userID, username string, incoming *domain.Design) (*domain.Design, error) {
	if !domain.IsValidHexColor(incoming.BackgroundColor) {
		return nil, ErrInvalidColor
	}
	design := incoming
	existing, err := s.load(ctx, incoming.ID)
	switch {
	case err == nil:
		if existing.UserID != userID {
			return nil, ErrNotOwner
		}
		if existing.Submitted {
			return nil, ErrDesignLocked
		}
		existing.BackgroundColor = incoming.BackgroundColor
		existing.Assets = incoming.Assets
		design = existing
	case errors.Is(err, ErrDesignNotFound):
		if design.ID == "" {
			design.ID = uuid.NewString()
		}
		design.UserID = userID
		design.CreatedAt = domain.NowMillis()
		design.Submitted = false
		design.VoteCount = 0
	default:
		return nil, err
	}
	design.Username = username
	s.clampAssets(design)
	design.UpdatedAt = domain.NowMillis()
	if err := s.designRepo.Save(ctx, design); err != nil {
		return nil, fmt.Errorf("save design %s: %w", design.ID, err)
	}
	return design, nil
}

// PlaceAsset appends a sprite at (x, y). Out-of-range coordinates are
// clamped to the canvas, never rejected.
func (s *EditorService) PlaceAsset(ctx context.Context, userID, designID, assetID string, x, y int) (*domain.Design, error) {
	design, err := s.loadEditable(ctx, userID, designID)
	if err != nil {
		return nil, err
	}
	design.PlaceAsset(assetID, x, y, s.canvas)
	return s.persist(ctx, design)
}

// MoveAsset repositions the asset at index, clamped to the canvas.
func (s *EditorService) MoveAsset(ctx context.Context, userID, designID string, index, x, y int) (*domain.Design, error) {
	design, err := s.loadEditable(ctx, userID, designID)
	if err != nil {
		return nil, err
	}
	if err := design.MoveAsset(index, x, y, s.canvas); err != nil {
		return nil, ErrInvalidAssetIndex
	}
	return s.persist(ctx, design)
}

// RotateAsset turns the asset at index a quarter turn clockwise.
func (s *EditorService) RotateAsset(ctx context.Context, userID, designID string, index int) (*domain.Design, error) {
	design, err := s.loadEditable(ctx, userID, designID)
	if err != nil {
		return nil, err
	}
	if err := design.RotateAsset(index); err != nil {
		return nil, ErrInvalidAssetIndex
	}
	return s.persist(ctx, design)
}

// RemoveAsset deletes the asset at index. Indices of later assets shift
// down by one, so clients must refresh their selection afterwards.
func (s *EditorService) RemoveAsset(ctx context.Context, userID, designID string, index int) (*domain.Design, error) {
	design, err := s.loadEditable(ctx, userID, designID)
	if err != nil {
		return nil, err
	}
	if err := design.RemoveAsset(index); err != nil {
		return nil, ErrInvalidAssetIndex
	}
	return s.persist(ctx, design)
}

// AdjustZIndex raises or lowers the asset at index by one layer. Lowering
// floors at zero.
func (s *EditorService) AdjustZIndex(ctx context.Context, userID, designID string, index int, direction string) (*domain.Design, error) {
	if direction != DirectionUp && direction != DirectionDown {
		return nil, ErrInvalidDirection
	}
	design, err := s.loadEditable(ctx, userID, designID)
	if err != nil {
		return nil, err
	}
	if err := design.AdjustZIndex(index, direction == DirectionUp); err != nil {
		return nil, ErrInvalidAssetIndex
	}
	return s.persist(ctx, design)
}

// UpdateBackgroundColor overwrites the background with a validated
// #RRGGBB color.
func (s *EditorService) UpdateBackgroundColor(ctx context.Context, userID, designID, color string) (*domain.Design, error) {
	design, err := s.loadEditable(ctx, userID, designID)
	if err != nil {
		return nil, err
	}
	if err := design.SetBackgroundColor(color); err != nil {
		return nil, ErrInvalidColor
	}
	return s.persist(ctx, design)
}

// DeleteDesign removes an unsubmitted design owned by the caller.
func (s *EditorService) DeleteDesign(ctx context.Context, userID, designID string) error {
	design, err := s.loadEditable(ctx, userID, designID)
	if err != nil {
		return err
	}
	if err := s.designRepo.Delete(ctx, design); err != nil {
		return fmt.Errorf("delete design %s: %w", designID, err)
	}
	logrus.WithFields(logrus.Fields{"design_id": designID, "user_id": userID}).Info("Design deleted")
	return nil
}

func (s *EditorService) load(ctx context.Context, designID string) (*domain.Design, error) {
	design, err := s.designRepo.FindByID(ctx, designID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrDesignNotFound
		}
		logrus.WithError(err).WithField("design_id", designID).Error("Failed to load design")
		return nil, ErrInternal
	}
	return design, nil
}

func (s *EditorService) loadEditable(ctx context.Context, userID, designID string) (*domain.Design, error) {
	design, err := s.load(ctx, designID)
	if err != nil {
		return nil, err
	}
	if design.UserID != userID {
		return nil, ErrNotOwner
	}
	if design.Submitted {
		return nil, ErrDesignLocked
	}
	return design, nil
}

func (s *EditorService) persist(ctx context.Context, design *domain.Design) (*domain.Design, error) {
	if err := s.designRepo.Save(ctx, design); err != nil {
		logrus.WithError(err).WithField("design_id", design.ID).Error("Failed to persist design mutation")
		return nil, ErrInternal
	}
	return design, nil
}

func (s *EditorService) clampAssets(design *domain.Design) {
	for i := range design.Assets {
		if design.Assets[i].X < 0 {
			design.Assets[i].X = 0
		} else if design.Assets[i].X > s.canvas.Width {
			design.Assets[i].X = s.canvas.Width
		}
		if design.Assets[i].Y < 0 {
			design.Assets[i].Y = 0
		} else if design.Assets[i].Y > s.canvas.Height {
			design.Assets[i].Y = s.canvas.Height
		}
		design.Assets[i].Rotation = ((design.Assets[i].Rotation % 360) + 360) % 360
		if design.Assets[i].Rotation%domain.RotationStep != 0 {
			design.Assets[i].Rotation = 0
		}
		if design.Assets[i].ZIndex < 0 {
			design.Assets[i].ZIndex = 0
		}
	}
}
