package worker

import (
	"context"
	"time"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"

	"room-decorator/internal/service"
)

// RotationCheckHandler processes the periodic theme-rotation task. The
// rotation policy itself is idempotent, so overlapping runs converge on
// the same current theme.
type RotationCheckHandler struct {
	themes *service.ThemeService
}

// NewRotationCheckHandler creates the handler.
func NewRotationCheckHandler(themes *service.ThemeService) *RotationCheckHandler {
	if themes == nil {
		panic("ThemeService cannot be nil for RotationCheckHandler")
	}
	return &RotationCheckHandler{themes: themes}
}

// ProcessTask implements asynq.Handler.
func (h *RotationCheckHandler) ProcessTask(ctx context.Context, t *asynq.Task) error {
	logCtx := logrus.WithField("task_type", t.Type())

	checkCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	current, rotated, err := h.themes.RotateIfExpired(checkCtx)
	if err != nil {
		logCtx.WithError(err).Error("Theme rotation check failed")
		return err
	}
	if rotated {
		logCtx.WithFields(logrus.Fields{
			"theme_id":   current.ID,
			"theme_name": current.Name,
		}).Info("Theme rotated")
	} else {
		logCtx.WithField("theme_id", current.ID).Debug("Current theme still live, no rotation")
	}
	return nil
}
