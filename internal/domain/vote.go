package domain

// VoteType is the direction of a vote.
type VoteType string

const (
	VoteUp   VoteType = "upvote"
	VoteDown VoteType = "downvote"
)

// Valid reports whether t is one of the two known vote types.
func (t VoteType) Valid() bool {
	return t == VoteUp || t == VoteDown
}

// Delta is the vote's contribution to a design's count: +1 or -1.
func (t VoteType) Delta() int {
	if t == VoteUp {
		return 1
	}
	return -1
}

// Vote is one user's current stance on one design. Exactly one vote
// record exists per (user, design) pair; changing a vote replaces the
// record in place.
type Vote struct {
	UserID    string   `json:"userId"`
	DesignID  string   `json:"designId"`
	VoteType  VoteType `json:"voteType"`
	Timestamp int64    `json:"timestamp"`
}
