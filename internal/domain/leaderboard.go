package domain

// LeaderboardEntry is a derived ranking row. Rank is dense and 1-based;
// Username and VoteCount mirror the referenced design's fields at read
// time.
type LeaderboardEntry struct {
	Rank      int     `json:"rank"`
	Design    *Design `json:"design"`
	Username  string  `json:"username"`
	VoteCount int     `json:"voteCount"`
}
