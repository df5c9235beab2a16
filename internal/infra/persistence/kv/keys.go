package kv

import "fmt"

// Key builders for the stored record layout. The layout is load-bearing:
// deployments that integrate with existing stored data rely on these
// exact shapes (any namespace prefix is applied by the store itself).

func designKey(designID string) string {
	return fmt.Sprintf("design:%s", designID)
}

func userDesignsKey(userID string) string {
	return fmt.Sprintf("user:%s:designs", userID)
}

func themeKey(themeID string) string {
	return fmt.Sprintf("theme:%s", themeID)
}

const (
	currentThemeKey  = "theme:current"
	archivedThemeKey = "theme:archived"
)

func submittersKey(themeID string) string {
	return fmt.Sprintf("theme:%s:submitters", themeID)
}

func voteKey(designID, userID string) string {
	return fmt.Sprintf("votes:%s:%s", designID, userID)
}

func submissionsKey(themeID string) string {
	return fmt.Sprintf("submissions:%s", themeID)
}

func leaderboardKey(themeID string) string {
	return fmt.Sprintf("leaderboard:%s", themeID)
}
