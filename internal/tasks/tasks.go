package tasks

import "encoding/json"

// Task type names registered with the asynq scheduler and worker.
const (
	// TypeThemeRotationCheck runs the theme rotation policy: archive an
	// expired current theme and activate its successor.
	TypeThemeRotationCheck = "theme:rotate_check"
)

// ThemeRotationCheckPayload is empty today; the handler reads everything
// it needs from the store. Kept as a struct so the payload can grow
// without changing the task signature.
type ThemeRotationCheckPayload struct{}

// NewThemeRotationCheckTask serializes the rotation-check payload.
func NewThemeRotationCheckTask() ([]byte, error) {
	return json.Marshal(ThemeRotationCheckPayload{})
}
