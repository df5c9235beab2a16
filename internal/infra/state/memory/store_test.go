package memorystate_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	memorystate "room-decorator/internal/infra/state/memory"
	"room-decorator/internal/repository"
)

func TestStore_GetSetDelete(t *testing.T) {
	store := memorystate.NewStore()
	ctx := context.Background()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	value, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v1", value)

	require.NoError(t, store.Set(ctx, "k", "v2"))
	value, _ = store.Get(ctx, "k")
	assert.Equal(t, "v2", value, "set overwrites")

	require.NoError(t, store.Delete(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	assert.NoError(t, store.Delete(ctx, "k"), "deleting an absent key is not an error")
}

func TestStore_Sets(t *testing.T) {
	store := memorystate.NewStore()
	ctx := context.Background()

	members, err := store.SetMembers(ctx, "s")
	require.NoError(t, err)
	assert.Empty(t, members, "absent set reads as empty")

	require.NoError(t, store.AddToSet(ctx, "s", "b", "a", "b"))
	members, _ = store.SetMembers(ctx, "s")
	assert.Equal(t, []string{"a", "b"}, members, "deduplicated and sorted")

	ok, _ := store.IsSetMember(ctx, "s", "a")
	assert.True(t, ok)
	ok, _ = store.IsSetMember(ctx, "s", "z")
	assert.False(t, ok)

	require.NoError(t, store.RemoveFromSet(ctx, "s", "a"))
	members, _ = store.SetMembers(ctx, "s")
	assert.Equal(t, []string{"b"}, members)
}

func TestStore_SortedSetOrdering(t *testing.T) {
	store := memorystate.NewStore()
	ctx := context.Background()

	require.NoError(t, store.AddScored(ctx, "z", "low", 1))
	require.NoError(t, store.AddScored(ctx, "z", "high", 10))
	require.NoError(t, store.AddScored(ctx, "z", "tie-b", 5))
	require.NoError(t, store.AddScored(ctx, "z", "tie-a", 5))

	members, err := store.RangeDescending(ctx, "z", 0, -1)
	require.NoError(t, err)
	assert.Equal(t, []string{"high", "tie-a", "tie-b", "low"}, members,
		"score descending, ties by member ascending")

	members, _ = store.RangeDescending(ctx, "z", 1, 2)
	assert.Equal(t, []string{"tie-a", "tie-b"}, members)

	members, _ = store.RangeDescending(ctx, "z", 10, 20)
	assert.Empty(t, members, "range past the end is empty")
}

func TestStore_IncrementScoreIsCumulative(t *testing.T) {
	store := memorystate.NewStore()
	ctx := context.Background()

	score, err := store.IncrementScore(ctx, "z", "m", 1)
	require.NoError(t, err)
	assert.Equal(t, float64(1), score, "absent member starts from zero")

	score, _ = store.IncrementScore(ctx, "z", "m", -3)
	assert.Equal(t, float64(-2), score)
}

func TestStore_RankDescending(t *testing.T) {
	store := memorystate.NewStore()
	ctx := context.Background()

	require.NoError(t, store.AddScored(ctx, "z", "first", 9))
	require.NoError(t, store.AddScored(ctx, "z", "second", 3))

	rank, err := store.RankDescending(ctx, "z", "first")
	require.NoError(t, err)
	assert.Equal(t, int64(0), rank)

	rank, _ = store.RankDescending(ctx, "z", "second")
	assert.Equal(t, int64(1), rank)

	_, err = store.RankDescending(ctx, "z", "absent")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, store.RemoveScored(ctx, "z", "first"))
	rank, _ = store.RankDescending(ctx, "z", "second")
	assert.Equal(t, int64(0), rank)
}
