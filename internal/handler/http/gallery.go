package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"room-decorator/internal/domain"
	"room-decorator/internal/middleware"
	"room-decorator/internal/service"
)

// GalleryHandler serves the voting surface: submitted designs, votes and
// the leaderboard.
type GalleryHandler struct {
	submissions *service.SubmissionService
	voting      *service.VotingService
	leaderboard *service.LeaderboardService
	themes      *service.ThemeService
}

// NewGalleryHandler creates a GalleryHandler.
func NewGalleryHandler(
	submissions *service.SubmissionService,
	voting *service.VotingService,
	leaderboard *service.LeaderboardService,
	themes *service.ThemeService,
) *GalleryHandler {
	return &GalleryHandler{
		submissions: submissions,
		voting:      voting,
		leaderboard: leaderboard,
		themes:      themes,
	}
}

// Gallery returns one page of submitted designs for a theme, defaulting
// to the current theme.
func (h *GalleryHandler) Gallery(c *gin.Context) {
	themeID, err := h.resolveThemeID(c)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	limit := intQuery(c, "limit", 20)
	offset := intQuery(c, "offset", 0)
	designs, err := h.submissions.GetSubmittedDesigns(c.Request.Context(), themeID, limit, offset)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"themeId": themeID,
		"designs": designs,
		"limit":   limit,
		"offset":  offset,
	})
}

// VoteRequest names the design and the desired vote direction.
type VoteRequest struct {
	DesignID string `json:"designId" binding:"required"`
	VoteType string `json:"voteType" binding:"required"`
}

// Vote toggles the caller's vote on a design: first vote casts, the same
// direction again removes, the other direction flips.
func (h *GalleryHandler) Vote(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	var req VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, "Invalid input: designId and voteType are required")
		return
	}
	design, vote, err := h.voting.ToggleVote(c.Request.Context(), userID, req.DesignID, domain.VoteType(req.VoteType))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{
		"designId":  design.ID,
		"voteCount": design.VoteCount,
		"userVote":  vote,
	})
}

// MyVote returns the caller's current vote on a design, if any.
func (h *GalleryHandler) MyVote(c *gin.Context) {
	userID, _, ok := middleware.Identity(c)
	if !ok {
		HandleServiceError(c, service.ErrUnauthorized)
		return
	}
	vote, err := h.voting.GetUserVote(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"vote": vote})
}

// Leaderboard returns the ranked list for a theme, defaulting to the
// current theme; limit caps the number of entries.
func (h *GalleryHandler) Leaderboard(c *gin.Context) {
	themeID, err := h.resolveThemeID(c)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	limit := intQuery(c, "limit", 0)
	entries, err := h.leaderboard.GetTopDesigns(c.Request.Context(), themeID, limit)
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"themeId": themeID, "entries": entries})
}

func (h *GalleryHandler) resolveThemeID(c *gin.Context) (string, error) {
	if themeID := c.Query("themeId"); themeID != "" {
		return themeID, nil
	}
	theme, err := h.themes.EnsureCurrentTheme(c.Request.Context())
	if err != nil {
		return "", err
	}
	return theme.ID, nil
}

func intQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
