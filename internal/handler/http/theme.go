package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"room-decorator/internal/middleware"
	"room-decorator/internal/service"
)

// ThemeHandler serves app bootstrap and theme metadata.
type ThemeHandler struct {
	themes      *service.ThemeService
	submissions *service.SubmissionService
}

// NewThemeHandler creates a ThemeHandler.
func NewThemeHandler(themes *service.ThemeService, submissions *service.SubmissionService) *ThemeHandler {
	return &ThemeHandler{themes: themes, submissions: submissions}
}

// InitResponse is what the UI needs to boot: the current theme, its
// countdown, and who the caller is ("anonymous" when unauthenticated).
type InitResponse struct {
	Theme         interface{} `json:"theme"`
	TimeRemaining int64       `json:"timeRemainingMs"`
	UserID        string      `json:"userId,omitempty"`
	Username      string      `json:"username"`
	HasSubmitted  bool        `json:"hasSubmitted"`
}

// Init returns the current theme and caller identity. No auth required.
func (h *ThemeHandler) Init(c *gin.Context) {
	theme, err := h.themes.EnsureCurrentTheme(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	resp := InitResponse{
		Theme:         theme,
		TimeRemaining: h.themes.GetTimeRemaining(theme),
		Username:      middleware.AnonymousUser,
	}
	if userID, username, ok := middleware.Identity(c); ok {
		resp.UserID = userID
		resp.Username = username
		submitted, err := h.submissions.HasUserSubmitted(c.Request.Context(), userID, theme.ID)
		if err != nil {
			HandleServiceError(c, err)
			return
		}
		resp.HasSubmitted = submitted
	}
	SuccessResponse(c, http.StatusOK, resp)
}

// GetTheme returns one theme by id, current or archived.
func (h *ThemeHandler) GetTheme(c *gin.Context) {
	theme, err := h.themes.GetTheme(c.Request.Context(), c.Param("id"))
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, theme)
}

// ArchivedThemes lists every archived theme id.
func (h *ThemeHandler) ArchivedThemes(c *gin.Context) {
	ids, err := h.themes.ArchivedThemeIDs(c.Request.Context())
	if err != nil {
		HandleServiceError(c, err)
		return
	}
	SuccessResponse(c, http.StatusOK, gin.H{"themeIds": ids})
}
