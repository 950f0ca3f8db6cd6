package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storyloom.com/storyloom/store"
)

func TestToggleUserFollow(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	a := createUser(t, st, "ana")
	b := createUser(t, st, "bo")

	following, err := e.ToggleUserFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, following)

	is, err := e.IsFollowingUser(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.True(t, is)

	// Directed edge: b does not follow a.
	is, err = e.IsFollowingUser(ctx, b.ID, a.ID)
	require.NoError(t, err)
	assert.False(t, is)

	following, err = e.ToggleUserFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestSelfFollowRejected(t *testing.T) {
	e, st := newTestEngine(t)
	a := createUser(t, st, "ana")
	_, err := e.ToggleUserFollow(context.Background(), a.ID, a.ID)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestFollowMissingUser(t *testing.T) {
	e, st := newTestEngine(t)
	a := createUser(t, st, "ana")
	_, err := e.ToggleUserFollow(context.Background(), a.ID, 999)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestToggleStoryFollow(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	reader := createUser(t, st, "bo")
	s, _ := createPublishedStory(t, e, author.ID, "Ashes")

	following, err := e.ToggleStoryFollow(ctx, reader.ID, s.ID, true)
	require.NoError(t, err)
	assert.True(t, following)

	is, err := e.IsFollowingStory(ctx, reader.ID, s.ID)
	require.NoError(t, err)
	assert.True(t, is)

	following, err = e.ToggleStoryFollow(ctx, reader.ID, s.ID, false)
	require.NoError(t, err)
	assert.False(t, following)
}

func TestFollowerEnumeration(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	a := createUser(t, st, "ana")
	b := createUser(t, st, "bo")
	c := createUser(t, st, "cy")

	_, err := e.ToggleUserFollow(ctx, b.ID, a.ID)
	require.NoError(t, err)
	_, err = e.ToggleUserFollow(ctx, c.ID, a.ID)
	require.NoError(t, err)
	_, err = e.ToggleUserFollow(ctx, a.ID, b.ID)
	require.NoError(t, err)

	followers, err := e.Followers(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, followers, 2)
	for _, u := range followers {
		assert.Empty(t, u.Password)
	}

	following, err := e.Following(ctx, a.ID)
	require.NoError(t, err)
	require.Len(t, following, 1)
	assert.Equal(t, b.ID, following[0].ID)
}
