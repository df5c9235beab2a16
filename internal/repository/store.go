package repository

import "context"

// Store is the flat key-value contract every repository is built on.
// Values are opaque strings; records are serialized to JSON before they
// reach the store. Implementations must return ErrNotFound for absent
// keys and members, never a driver-specific error.
type Store interface {
	// Get returns the value at key, or ErrNotFound.
	Get(ctx context.Context, key string) (string, error)

	// Set writes value at key, overwriting any previous value.
	Set(ctx context.Context, key, value string) error

	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error

	// AddToSet adds members to the unordered set at key.
	AddToSet(ctx context.Context, key string, members ...string) error

	// RemoveFromSet removes members from the set at key.
	RemoveFromSet(ctx context.Context, key string, members ...string) error

	// SetMembers returns all members of the set at key. An absent set is
	// an empty slice, not an error.
	SetMembers(ctx context.Context, key string) ([]string, error)

	// IsSetMember reports whether member is in the set at key.
	IsSetMember(ctx context.Context, key, member string) (bool, error)

	// AddScored inserts or updates member with the given score in the
	// sorted set at key.
	AddScored(ctx context.Context, key, member string, score float64) error

	// IncrementScore atomically adds delta to member's score in the
	// sorted set at key, creating the member at delta if absent, and
	// returns the new score.
	IncrementScore(ctx context.Context, key, member string, delta float64) (float64, error)

	// RemoveScored removes member from the sorted set at key.
	RemoveScored(ctx context.Context, key, member string) error

	// RangeDescending returns members of the sorted set at key ordered by
	// score descending (ties ordered by member ascending), from rank
	// start to stop inclusive; stop of -1 means the end of the set.
	RangeDescending(ctx context.Context, key string, start, stop int64) ([]string, error)

	// RankDescending returns member's 0-based rank in descending score
	// order, or ErrNotFound if member is absent.
	RankDescending(ctx context.Context, key, member string) (int64, error)
}
