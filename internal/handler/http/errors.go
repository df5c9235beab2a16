package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"room-decorator/internal/service"
)

// HandleServiceError maps business errors to HTTP statuses. Identity
// failures (401) and forbidden actions like self-votes (403) keep their
// own messages so the UI can distinguish a login prompt from a toast.
func HandleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		ErrorResponse(c, http.StatusUnauthorized, err.Error())
	case errors.Is(err, service.ErrSelfVote), errors.Is(err, service.ErrNotOwner):
		ErrorResponse(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrDesignNotFound),
		errors.Is(err, service.ErrThemeNotFound),
		errors.Is(err, service.ErrVoteNotFound):
		ErrorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrInvalidColor),
		errors.Is(err, service.ErrInvalidAssetIndex),
		errors.Is(err, service.ErrInvalidVoteType),
		errors.Is(err, service.ErrInvalidDirection):
		ErrorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrDuplicateVote),
		errors.Is(err, service.ErrAlreadySubmitted),
		errors.Is(err, service.ErrDesignLocked):
		ErrorResponse(c, http.StatusConflict, err.Error())
	default:
		logrus.WithError(err).Error("Unhandled internal server error")
		ErrorResponse(c, http.StatusInternalServerError, "An unexpected error occurred")
	}
}
