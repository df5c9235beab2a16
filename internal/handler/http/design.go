package http

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"room-decorator/internal/domain"
	"room-decorator/internal/middleware"
	"room-decorator/internal/service"
)

// DesignHandler serves the editing surface: design CRUD, asset
// mutations, background changes and submission.
type DesignHandler struct {
	editor      *service.EditorService
	submissions *service.SubmissionService
	themes      *service.ThemeService
	autosave    *service.AutosaveScheduler
}

// NewDesignHandler creates a DesignHandler.
func NewDesignHandler(
	editor *service.EditorService,
	submissions *service.SubmissionService,
	themes *service.ThemeService,
	autosave *service.AutosaveScheduler,
) *DesignHandler {
	return &DesignHandler{
		editor:      editor,
		submissions: submissions,
		themes:      themes,
		autosave:    autosave,
	}
}

// CreateDesign starts an empty design under the current theme.
func (h *DesignHandler) CreateDesign(c *gin.Context) {
	userID, username, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	theme, err := h.themes.EnsureCurrentTheme(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	design, err := h.editor.CreateDesign(c.Request.Context(), userID, username, theme.ID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusCreated, design)
}

// GetDesign returns one design visible to the caller.
func (h *DesignHandler) GetDesign(c *gin.Context) {
	userID, _, _ := middleware.Identity(c)
	design, err := h.editor.GetDesign(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, design)
}

// SaveDesignRequest is the upsert payload held by the editing client.
type SaveDesignRequest struct {
	Design   domain.Design `json:"design" binding:"required"`
	Debounce bool          `json:"debounce"`
}

// SaveDesign upserts the client-held blob. Auto-save ticks set debounce,
// which coalesces rapid saves of one design into a single write after
// the quiet period; explicit saves persist immediately.
func (h *DesignHandler) SaveDesign(c *gin.Context) {
	userID, username, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	var req SaveDesignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: design payload is required")
		return
	}

	if req.Debounce && req.Design.ID != "" {
		incoming := req.Design
		h.autosave.Schedule(incoming.ID, func() {
			if _, err := h.editor.SaveDesign(context.Background(), userID, username, &incoming); err != nil {
				logrus.WithError(err).WithField("design_id", incoming.ID).Warn("Debounced save failed")
			}
		})
		SuccessResponse(c, http.StatusAccepted, gin.H{"scheduled": true, "designId": incoming.ID})
		return
	}

	design, err := h.editor.SaveDesign(c.Request.Context(), userID, username, &req.Design)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, design)
}

// PlaceAssetRequest adds one sprite to the canvas.
type PlaceAssetRequest struct {
	AssetID string `json:"assetId" binding:"required"`
	X       int    `json:"x"`
	Y       int    `json:"y"`
}

// PlaceAsset appends a sprite; coordinates outside the canvas are
// clamped to its edges.
func (h *DesignHandler) PlaceAsset(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	var req PlaceAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: assetId is required")
		return
	}
	design, err := h.editor.PlaceAsset(c.Request.Context(), userID, c.Param("id"), req.AssetID, req.X, req.Y)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, design)
}

// MoveAssetRequest repositions an asset.
type MoveAssetRequest struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// MoveAsset repositions the indexed asset, clamped to the canvas.
func (h *DesignHandler) MoveAsset(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	index, err := assetIndex(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid asset index")
		return
	}
	var req MoveAssetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: x and y are required")
		return
	}
	design, err := h.editor.MoveAsset(c.Request.Context(), userID, c.Param("id"), index, req.X, req.Y)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, design)
}

// RotateAsset turns the indexed asset a quarter turn.
func (h *DesignHandler) RotateAsset(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	index, err := assetIndex(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid asset index")
		return
	}
	design, err := h.editor.RotateAsset(c.Request.Context(), userID, c.Param("id"), index)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, design)
}

// AdjustZIndexRequest moves an asset one layer up or down.
type AdjustZIndexRequest struct {
	Direction string `json:"direction" binding:"required"`
}

// AdjustZIndex changes the indexed asset's layer.
func (h *DesignHandler) AdjustZIndex(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	index, err := assetIndex(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid asset index")
		return
	}
	var req AdjustZIndexRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: direction is required")
		return
	}
	design, err := h.editor.AdjustZIndex(c.Request.Context(), userID, c.Param("id"), index, req.Direction)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, design)
}

// RemoveAsset deletes the indexed asset; later indices shift down.
func (h *DesignHandler) RemoveAsset(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	index, err := assetIndex(c)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid asset index")
		return
	}
	design, err := h.editor.RemoveAsset(c.Request.Context(), userID, c.Param("id"), index)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, design)
}

// BackgroundRequest changes the room background.
type BackgroundRequest struct {
	Color string `json:"color" binding:"required"`
}

// UpdateBackground sets a validated #RRGGBB background color.
func (h *DesignHandler) UpdateBackground(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	var req BackgroundRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: color is required")
		return
	}
	design, err := h.editor.UpdateBackgroundColor(c.Request.Context(), userID, c.Param("id"), req.Color)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, design)
}

// DeleteDesign removes an unsubmitted design owned by the caller.
func (h *DesignHandler) DeleteDesign(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	designID := c.Param("id")
	h.autosave.Cancel(designID)
	if err := h.editor.DeleteDesign(c.Request.Context(), userID, designID); err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"deleted": designID})
}

// SubmitRequest names the design to submit.
type SubmitRequest struct {
	DesignID string `json:"designId" binding:"required"`
}

// SubmitDesign locks the design in for the theme gallery. Any pending
// debounced save is flushed first so the submitted blob is current.
func (h *DesignHandler) SubmitDesign(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: designId is required")
		return
	}
	h.autosave.Flush(req.DesignID)
	design, err := h.submissions.SubmitDesign(c.Request.Context(), userID, req.DesignID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, design)
}

// MyDesigns lists every design owned by the caller.
func (h *DesignHandler) MyDesigns(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	designs, err := h.submissions.GetUserDesigns(c.Request.Context(), userID)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"designs": designs})
}

func assetIndex(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("index"))
}
