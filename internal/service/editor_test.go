package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-decorator/internal/domain"
	"room-decorator/internal/infra/persistence/kv"
	memorystate "room-decorator/internal/infra/state/memory"
	"room-decorator/internal/service"
)

func newEditor(t *testing.T) (*service.EditorService, *kv.DesignRepository) {
	t.Helper()
	store := memorystate.NewStore()
	repo := kv.NewDesignRepository(store)
	return service.NewEditorService(repo, domain.Canvas{Width: 800, Height: 600}), repo
}

func TestEditorService_CreateDesign(t *testing.T) {
	editor, repo := newEditor(t)
	ctx := context.Background()

	design, err := editor.CreateDesign(ctx, "u1", "alice", "theme-school")
	require.NoError(t, err)
	assert.NotEmpty(t, design.ID)
	assert.Equal(t, "u1", design.UserID)
	assert.Equal(t, "alice", design.Username)
	assert.Equal(t, "theme-school", design.ThemeID)
	assert.Equal(t, "#FFFFFF", design.BackgroundColor)
	assert.False(t, design.Submitted)
	assert.Equal(t, design.CreatedAt, design.UpdatedAt)

	stored, err := repo.FindByID(ctx, design.ID)
	require.NoError(t, err)
	assert.Equal(t, design.ID, stored.ID)
}

func TestEditorService_PlaceAsset_ClampsAndPersists(t *testing.T) {
	editor, repo := newEditor(t)
	ctx := context.Background()
	design, _ := editor.CreateDesign(ctx, "u1", "alice", "theme-school")

	updated, err := editor.PlaceAsset(ctx, "u1", design.ID, "chair", -50, 700)
	require.NoError(t, err)
	require.Len(t, updated.Assets, 1)
	assert.Equal(t, 0, updated.Assets[0].X)
	assert.Equal(t, 600, updated.Assets[0].Y)

	stored, _ := repo.FindByID(ctx, design.ID)
	assert.Len(t, stored.Assets, 1, "mutation persisted")
}

func TestEditorService_MutationsRequireOwnership(t *testing.T) {
	editor, _ := newEditor(t)
	ctx := context.Background()
	design, _ := editor.CreateDesign(ctx, "u1", "alice", "theme-school")

	_, err := editor.PlaceAsset(ctx, "u2", design.ID, "chair", 0, 0)
	assert.ErrorIs(t, err, service.ErrNotOwner)

	_, err = editor.UpdateBackgroundColor(ctx, "u2", design.ID, "#112233")
	assert.ErrorIs(t, err, service.ErrNotOwner)
}

func TestEditorService_UnknownDesign(t *testing.T) {
	editor, _ := newEditor(t)
	ctx := context.Background()

	_, err := editor.PlaceAsset(ctx, "u1", "ghost", "chair", 0, 0)
	assert.ErrorIs(t, err, service.ErrDesignNotFound)

	_, err = editor.RotateAsset(ctx, "u1", "ghost", 0)
	assert.ErrorIs(t, err, service.ErrDesignNotFound)
}

func TestEditorService_SubmittedDesignIsLocked(t *testing.T) {
	editor, repo := newEditor(t)
	ctx := context.Background()
	design, _ := editor.CreateDesign(ctx, "u1", "alice", "theme-school")

	design.MarkSubmitted()
	require.NoError(t, repo.Save(ctx, design))

	_, err := editor.PlaceAsset(ctx, "u1", design.ID, "chair", 0, 0)
	assert.ErrorIs(t, err, service.ErrDesignLocked)

	_, err = editor.UpdateBackgroundColor(ctx, "u1", design.ID, "#112233")
	assert.ErrorIs(t, err, service.ErrDesignLocked)

	err = editor.DeleteDesign(ctx, "u1", design.ID)
	assert.ErrorIs(t, err, service.ErrDesignLocked)
}

func TestEditorService_InvalidIndexAndDirection(t *testing.T) {
	editor, _ := newEditor(t)
	ctx := context.Background()
	design, _ := editor.CreateDesign(ctx, "u1", "alice", "theme-school")

	_, err := editor.MoveAsset(ctx, "u1", design.ID, 0, 10, 10)
	assert.ErrorIs(t, err, service.ErrInvalidAssetIndex)

	_, err = editor.RemoveAsset(ctx, "u1", design.ID, -1)
	assert.ErrorIs(t, err, service.ErrInvalidAssetIndex)

	_, err = editor.AdjustZIndex(ctx, "u1", design.ID, 0, "sideways")
	assert.ErrorIs(t, err, service.ErrInvalidDirection)
}

func TestEditorService_UpdateBackgroundColor(t *testing.T) {
	editor, repo := newEditor(t)
	ctx := context.Background()
	design, _ := editor.CreateDesign(ctx, "u1", "alice", "theme-school")

	updated, err := editor.UpdateBackgroundColor(ctx, "u1", design.ID, "#1A2b3C")
	require.NoError(t, err)
	assert.Equal(t, "#1A2b3C", updated.BackgroundColor)

	stored, _ := repo.FindByID(ctx, design.ID)
	assert.Equal(t, "#1A2b3C", stored.BackgroundColor)

	_, err = editor.UpdateBackgroundColor(ctx, "u1", design.ID, "red")
	assert.ErrorIs(t, err, service.ErrInvalidColor)
}

func TestEditorService_RemoveAssetCountLaw(t *testing.T) {
	editor, _ := newEditor(t)
	ctx := context.Background()
	design, _ := editor.CreateDesign(ctx, "u1", "alice", "theme-school")

	for i := 0; i < 3; i++ {
		updated, err := editor.PlaceAsset(ctx, "u1", design.ID, "chair", i, i)
		require.NoError(t, err)
		assert.Len(t, updated.Assets, i+1, "each placement grows the count by one")
	}

	updated, err := editor.RemoveAsset(ctx, "u1", design.ID, 1)
	require.NoError(t, err)
	assert.Len(t, updated.Assets, 2, "removal shrinks the count by one")
}

func TestEditorService_SaveDesign_NewAndUpdate(t *testing.T) {
	editor, _ := newEditor(t)
	ctx := context.Background()

	incoming := &domain.Design{
		BackgroundColor: "#ABCDEF",
		Assets: []domain.PlacedAsset{
			{AssetID: "chair", X: -10, Y: 9999, Rotation: 93, ZIndex: -2},
		},
	}
	saved, err := editor.SaveDesign(ctx, "u1", "alice", incoming)
	require.NoError(t, err)
	assert.NotEmpty(t, saved.ID)
	assert.Equal(t, "u1", saved.UserID)
	assert.Equal(t, 0, saved.Assets[0].X, "client coordinates clamped")
	assert.Equal(t, 600, saved.Assets[0].Y)
	assert.Equal(t, 0, saved.Assets[0].Rotation, "off-grid rotation reset")
	assert.Equal(t, 0, saved.Assets[0].ZIndex)

	update := &domain.Design{
		ID:              saved.ID,
		UserID:          "someone-else", // ignored: identity comes from the caller
		BackgroundColor: "#001122",
		Assets:          []domain.PlacedAsset{},
		VoteCount:       999, // ignored: never client-writable
	}
	resaved, err := editor.SaveDesign(ctx, "u1", "alice", update)
	require.NoError(t, err)
	assert.Equal(t, "u1", resaved.UserID)
	assert.Equal(t, "#001122", resaved.BackgroundColor)
	assert.Equal(t, 0, resaved.VoteCount)
	assert.Equal(t, saved.CreatedAt, resaved.CreatedAt)
}

func TestEditorService_SaveDesign_WrongOwner(t *testing.T) {
	editor, _ := newEditor(t)
	ctx := context.Background()
	design, _ := editor.CreateDesign(ctx, "u1", "alice", "theme-school")

	_, err := editor.SaveDesign(ctx, "u2", "bob", &domain.Design{
		ID: design.ID, BackgroundColor: "#112233",
	})
	assert.ErrorIs(t, err, service.ErrNotOwner)
}

func TestEditorService_GetDesign_Visibility(t *testing.T) {
	editor, repo := newEditor(t)
	ctx := context.Background()
	design, _ := editor.CreateDesign(ctx, "u1", "alice", "theme-school")

	_, err := editor.GetDesign(ctx, "u2", design.ID)
	assert.ErrorIs(t, err, service.ErrDesignNotFound, "unsubmitted designs are private")

	owned, err := editor.GetDesign(ctx, "u1", design.ID)
	require.NoError(t, err)
	assert.Equal(t, design.ID, owned.ID)

	design.MarkSubmitted()
	require.NoError(t, repo.Save(ctx, design))
	visible, err := editor.GetDesign(ctx, "u2", design.ID)
	require.NoError(t, err)
	assert.Equal(t, design.ID, visible.ID)
}
