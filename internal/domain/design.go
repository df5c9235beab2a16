package domain

import (
	"errors"
	"regexp"
	"time"
)

// Canvas bounds asset coordinates. Placements outside the canvas are
// clamped to its edges, never rejected.
type Canvas struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// DefaultCanvas matches the room viewport rendered by the UI.
var DefaultCanvas = Canvas{Width: 800, Height: 600}

// Rotation steps are quarter turns only.
const RotationStep = 90

var hexColorPattern = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

var (
	// ErrInvalidColor is returned for background colors that are not
	// "#RRGGBB" hex strings.
	ErrInvalidColor = errors.New("background color must be a #RRGGBB hex string")
	// ErrAssetIndexOutOfRange is returned when an asset index does not
	// address an asset on the design.
	ErrAssetIndexOutOfRange = errors.New("asset index out of range")
)

// PlacedAsset is one sprite instance on the canvas. Assets are addressed
// by their position in the owning design's list; indices shift down after
// a removal and are not stable identifiers.
type PlacedAsset struct {
	AssetID  string `json:"assetId"`
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Rotation int    `json:"rotation"`
	ZIndex   int    `json:"zIndex"`
}

// Design is one room layout owned by a single user under a single theme.
type Design struct {
	ID              string        `json:"id"`
	UserID          string        `json:"userId"`
	Username        string        `json:"username"`
	ThemeID         string        `json:"themeId"`
	BackgroundColor string        `json:"backgroundColor"`
	Assets          []PlacedAsset `json:"assets"`
	CreatedAt       int64         `json:"createdAt"`
	UpdatedAt       int64         `json:"updatedAt"`
	Submitted       bool          `json:"submitted"`
	VoteCount       int           `json:"voteCount"`
}

// NewDesign creates an empty design for the given owner and theme.
func NewDesign(id, userID, username, themeID string) *Design {
	now := NowMillis()
	return &Design{
		ID:              id,
		UserID:          userID,
		Username:        username,
		ThemeID:         themeID,
		BackgroundColor: "#FFFFFF",
		Assets:          []PlacedAsset{},
		CreatedAt:       now,
		UpdatedAt:       now,
	}
}

// NowMillis returns the current time as epoch milliseconds, the timestamp
// unit used across all stored records.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}

// IsValidHexColor reports whether color is a 6-digit "#"-prefixed hex string.
func IsValidHexColor(color string) bool {
	return hexColorPattern.MatchString(color)
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func (d *Design) touch() {
	d.UpdatedAt = NowMillis()
}

func (d *Design) checkIndex(index int) error {
	if index < 0 || index >= len(d.Assets) {
		return ErrAssetIndexOutOfRange
	}
	return nil
}

// nextZIndex is max(existing zIndex)+1, or 0 for the first asset.
func (d *Design) nextZIndex() int {
	if len(d.Assets) == 0 {
		return 0
	}
	max := d.Assets[0].ZIndex
	for _, a := range d.Assets[1:] {
		if a.ZIndex > max {
			max = a.ZIndex
		}
	}
	return max + 1
}

// PlaceAsset appends a new asset at (x, y) clamped to the canvas, with
// rotation 0 and a z-index above every existing asset.
func (d *Design) PlaceAsset(assetID string, x, y int, canvas Canvas) PlacedAsset {
	asset := PlacedAsset{
		AssetID: assetID,
		X:       clamp(x, 0, canvas.Width),
		Y:       clamp(y, 0, canvas.Height),
		ZIndex:  d.nextZIndex(),
	}
	d.Assets = append(d.Assets, asset)
	d.touch()
	return asset
}

// MoveAsset overwrites the asset's coordinates, clamped to the canvas.
// Rotation and z-index are untouched.
func (d *Design) MoveAsset(index, x, y int, canvas Canvas) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.Assets[index].X = clamp(x, 0, canvas.Width)
	d.Assets[index].Y = clamp(y, 0, canvas.Height)
	d.touch()
	return nil
}

// RotateAsset advances the asset's rotation by a quarter turn, wrapping
// back to 0 after 270.
func (d *Design) RotateAsset(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.Assets[index].Rotation = (d.Assets[index].Rotation + RotationStep) % 360
	d.touch()
	return nil
}

// RemoveAsset deletes the asset at index. Subsequent assets shift down one
// position, so callers must re-fetch indices afterwards.
func (d *Design) RemoveAsset(index int) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	d.Assets = append(d.Assets[:index], d.Assets[index+1:]...)
	d.touch()
	return nil
}

// AdjustZIndex moves the asset one layer up or down. Down stops at 0; up
// is unbounded.
func (d *Design) AdjustZIndex(index int, up bool) error {
	if err := d.checkIndex(index); err != nil {
		return err
	}
	if up {
		d.Assets[index].ZIndex++
	} else if d.Assets[index].ZIndex > 0 {
		d.Assets[index].ZIndex--
	}
	d.touch()
	return nil
}

// SetBackgroundColor validates and overwrites the background color.
func (d *Design) SetBackgroundColor(color string) error {
	if !IsValidHexColor(color) {
		return ErrInvalidColor
	}
	d.BackgroundColor = color
	d.touch()
	return nil
}

// MarkSubmitted flips the one-way submitted flag.
func (d *Design) MarkSubmitted() {
	d.Submitted = true
	d.touch()
}
