package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"room-decorator/internal/domain"
)

func TestPlaceAsset_ClampsToCanvas(t *testing.T) {
	canvas := domain.Canvas{Width: 800, Height: 600}
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")

	tests := []struct {
		name         string
		x, y         int
		wantX, wantY int
	}{
		{"inside canvas", 100, 200, 100, 200},
		{"negative x, overflowing y", -50, 700, 0, 600},
		{"both negative", -1, -1, 0, 0},
		{"both overflowing", 10000, 10000, 800, 600},
		{"on the edge", 800, 600, 800, 600},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			asset := design.PlaceAsset("chair", tt.x, tt.y, canvas)
			assert.Equal(t, tt.wantX, asset.X)
			assert.Equal(t, tt.wantY, asset.Y)
		})
	}
}

func TestPlaceAsset_ZIndexStrictlyIncreases(t *testing.T) {
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")
	first := design.PlaceAsset("chair", 10, 10, domain.DefaultCanvas)
	second := design.PlaceAsset("lamp", 20, 20, domain.DefaultCanvas)

	assert.Equal(t, 0, first.ZIndex, "first asset starts at layer 0")
	assert.Greater(t, second.ZIndex, first.ZIndex)
}

func TestPlaceAsset_ZIndexAboveManuallyRaisedAsset(t *testing.T) {
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")
	design.PlaceAsset("chair", 10, 10, domain.DefaultCanvas)
	// Lift the only asset a few layers, then place another.
	require.NoError(t, design.AdjustZIndex(0, true))
	require.NoError(t, design.AdjustZIndex(0, true))
	next := design.PlaceAsset("lamp", 20, 20, domain.DefaultCanvas)

	assert.Equal(t, 3, next.ZIndex)
}

func TestMoveAsset_ClampsAndPreservesLayering(t *testing.T) {
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")
	design.PlaceAsset("chair", 10, 10, domain.DefaultCanvas)
	require.NoError(t, design.RotateAsset(0))

	require.NoError(t, design.MoveAsset(0, -50, 700, domain.DefaultCanvas))

	assert.Equal(t, 0, design.Assets[0].X)
	assert.Equal(t, 600, design.Assets[0].Y)
	assert.Equal(t, 90, design.Assets[0].Rotation, "rotation untouched by move")
	assert.Equal(t, 0, design.Assets[0].ZIndex, "z-index untouched by move")
}

func TestMoveAsset_InvalidIndex(t *testing.T) {
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")
	design.PlaceAsset("chair", 10, 10, domain.DefaultCanvas)

	assert.ErrorIs(t, design.MoveAsset(-1, 0, 0, domain.DefaultCanvas), domain.ErrAssetIndexOutOfRange)
	assert.ErrorIs(t, design.MoveAsset(1, 0, 0, domain.DefaultCanvas), domain.ErrAssetIndexOutOfRange)
}

func TestRotateAsset_QuarterTurnsWrap(t *testing.T) {
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")
	design.PlaceAsset("chair", 10, 10, domain.DefaultCanvas)

	for _, want := range []int{90, 180, 270, 0, 90} {
		require.NoError(t, design.RotateAsset(0))
		assert.Equal(t, want, design.Assets[0].Rotation)
	}
}

func TestRemoveAsset_ShiftsLaterIndices(t *testing.T) {
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")
	design.PlaceAsset("chair", 1, 1, domain.DefaultCanvas)
	design.PlaceAsset("lamp", 2, 2, domain.DefaultCanvas)
	design.PlaceAsset("rug", 3, 3, domain.DefaultCanvas)

	require.NoError(t, design.RemoveAsset(1))

	require.Len(t, design.Assets, 2)
	assert.Equal(t, "chair", design.Assets[0].AssetID)
	assert.Equal(t, "rug", design.Assets[1].AssetID, "later asset shifted down one index")
}

func TestAdjustZIndex_UpThenDownRestoresOriginal(t *testing.T) {
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")
	design.PlaceAsset("chair", 1, 1, domain.DefaultCanvas)
	design.PlaceAsset("lamp", 2, 2, domain.DefaultCanvas)
	original := design.Assets[1].ZIndex

	require.NoError(t, design.AdjustZIndex(1, true))
	require.NoError(t, design.AdjustZIndex(1, false))

	assert.Equal(t, original, design.Assets[1].ZIndex)
}

func TestAdjustZIndex_DownFloorsAtZero(t *testing.T) {
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")
	design.PlaceAsset("chair", 1, 1, domain.DefaultCanvas)

	require.NoError(t, design.AdjustZIndex(0, false))
	assert.Equal(t, 0, design.Assets[0].ZIndex)
}

func TestSetBackgroundColor(t *testing.T) {
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")

	valid := []string{"#000000", "#FFFFFF", "#a1B2c3", "#123abc"}
	for _, color := range valid {
		require.NoError(t, design.SetBackgroundColor(color))
		assert.Equal(t, color, design.BackgroundColor)
	}

	invalid := []string{"", "FFFFFF", "#FFF", "#GGGGGG", "#1234567", "blue"}
	for _, color := range invalid {
		assert.ErrorIs(t, design.SetBackgroundColor(color), domain.ErrInvalidColor, "color %q", color)
	}
}

func TestMutations_BumpUpdatedAt(t *testing.T) {
	design := domain.NewDesign("d1", "u1", "alice", "theme-school")
	design.UpdatedAt = design.CreatedAt - 10 // force a visible bump

	design.PlaceAsset("chair", 1, 1, domain.DefaultCanvas)
	assert.GreaterOrEqual(t, design.UpdatedAt, design.CreatedAt)
}

func TestTheme_TimeRemaining(t *testing.T) {
	theme := &domain.Theme{ID: "t1", StartTime: 1000, EndTime: 5000}

	assert.Equal(t, int64(4000), theme.TimeRemaining(1000))
	assert.Equal(t, int64(1), theme.TimeRemaining(4999))
	assert.Equal(t, int64(0), theme.TimeRemaining(5000), "clamped at zero")
	assert.Equal(t, int64(0), theme.TimeRemaining(9000))

	assert.False(t, theme.Expired(4999))
	assert.True(t, theme.Expired(5000))
}

func TestVoteType(t *testing.T) {
	assert.True(t, domain.VoteUp.Valid())
	assert.True(t, domain.VoteDown.Valid())
	assert.False(t, domain.VoteType("sideways").Valid())

	assert.Equal(t, 1, domain.VoteUp.Delta())
	assert.Equal(t, -1, domain.VoteDown.Delta())
}
