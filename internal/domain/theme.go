package domain

// Theme is a timeboxed design prompt. At most one theme is current at a
// time; past themes are archived and never deleted.
type Theme struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	StartTime   int64  `json:"startTime"`
	EndTime     int64  `json:"endTime"`
	Active      bool   `json:"active"`
}

// Expired reports whether the theme's window has closed at the given
// epoch-millisecond instant.
func (t *Theme) Expired(nowMillis int64) bool {
	return nowMillis >= t.EndTime
}

// TimeRemaining returns the milliseconds until expiry, clamped at 0.
func (t *Theme) TimeRemaining(nowMillis int64) int64 {
	if remaining := t.EndTime - nowMillis; remaining > 0 {
		return remaining
	}
	return 0
}
