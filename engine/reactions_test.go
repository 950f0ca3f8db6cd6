package engine

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storyloom.com/storyloom/store"
)

func TestToggleChapterLike(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	reader := createUser(t, st, "bo")
	s, chID := createPublishedStory(t, e, author.ID, "Ashes")

	liked, err := e.ToggleChapterLike(ctx, reader.ID, chID)
	require.NoError(t, err)
	assert.True(t, liked)
	assert.Equal(t, 1, getChapter(t, st, chID).Likes)
	assert.Equal(t, 1, getStory(t, st, s.ID).TotalLikes)

	has, err := e.HasUserLikedChapter(ctx, reader.ID, chID)
	require.NoError(t, err)
	assert.True(t, has)

	liked, err = e.ToggleChapterLike(ctx, reader.ID, chID)
	require.NoError(t, err)
	assert.False(t, liked)
	assert.Equal(t, 0, getChapter(t, st, chID).Likes)
	assert.Equal(t, 0, getStory(t, st, s.ID).TotalLikes)
}

func TestLikeCountsNeverGoNegative(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	s, chID := createPublishedStory(t, e, author.ID, "Ashes")

	// Interleaved like/unlike storm across users; counters must track
	// the row set and never dip below zero.
	users := make([]int64, 4)
	for i := range users {
		users[i] = createUser(t, st, fmt.Sprintf("reader%d", i)).ID
	}
	for round := 0; round < 3; round++ {
		for _, uid := range users {
			_, err := e.ToggleChapterLike(ctx, uid, chID)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, getChapter(t, st, chID).Likes, 0)
			assert.GreaterOrEqual(t, getStory(t, st, s.ID).TotalLikes, 0)
		}
	}
	// Odd number of toggles: everyone ends up liking.
	assert.Equal(t, 4, getChapter(t, st, chID).Likes)
	assert.Equal(t, 4, getStory(t, st, s.ID).TotalLikes)
}

func TestAnonymousCannotLike(t *testing.T) {
	e, st := newTestEngine(t)
	author := createUser(t, st, "ana")
	_, chID := createPublishedStory(t, e, author.ID, "Ashes")

	_, err := e.ToggleChapterLike(context.Background(), 0, chID)
	require.ErrorIs(t, err, ErrNotAuthorized)
}

func TestCommentReactionThreeCycle(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	reader := createUser(t, st, "bo")
	_, chID := createPublishedStory(t, e, author.ID, "Ashes")
	c, err := e.CreateComment(ctx, author.ID, chID, "thoughts?", nil)
	require.NoError(t, err)

	// like then like again: back to no reaction
	require.NoError(t, e.ReactToComment(ctx, reader.ID, c.ID, true))
	assert.Equal(t, 1, getComment(t, st, c.ID).Likes)
	require.NoError(t, e.ReactToComment(ctx, reader.ID, c.ID, true))
	assert.Equal(t, 0, getComment(t, st, c.ID).Likes)
	_, err = st.CommentReaction(ctx, reader.ID, c.ID)
	require.ErrorIs(t, err, store.ErrNotFound)

	// like then dislike: exactly one dislike, zero likes
	require.NoError(t, e.ReactToComment(ctx, reader.ID, c.ID, true))
	require.NoError(t, e.ReactToComment(ctx, reader.ID, c.ID, false))
	got := getComment(t, st, c.ID)
	assert.Equal(t, 0, got.Likes)
	assert.Equal(t, 1, got.Dislikes)
	r, err := st.CommentReaction(ctx, reader.ID, c.ID)
	require.NoError(t, err)
	assert.False(t, r.IsLike)
}

func TestModerationLatch(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	_, chID := createPublishedStory(t, e, author.ID, "Ashes")
	c, err := e.CreateComment(ctx, author.ID, chID, "controversial", nil)
	require.NoError(t, err)

	var haters []int64
	for i := 0; i < 10; i++ {
		u := createUser(t, st, fmt.Sprintf("critic%d", i))
		haters = append(haters, u.ID)
		require.NoError(t, e.ReactToComment(ctx, u.ID, c.ID, false))
	}

	got := getComment(t, st, c.ID)
	assert.Equal(t, 10, got.Dislikes)
	assert.True(t, got.IsHidden)

	// Likes never clear the latch.
	fan := createUser(t, st, "fan")
	require.NoError(t, e.ReactToComment(ctx, fan.ID, c.ID, true))
	assert.True(t, getComment(t, st, c.ID).IsHidden)

	// Neither does the dislike count dropping back under the line.
	for _, uid := range haters[:5] {
		require.NoError(t, e.ReactToComment(ctx, uid, c.ID, false))
	}
	got = getComment(t, st, c.ID)
	assert.Equal(t, 5, got.Dislikes)
	assert.True(t, got.IsHidden)
}

func TestHiddenCommentsFilteredFromListing(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	mod := createModerator(t, st, "mia")
	_, chID := createPublishedStory(t, e, author.ID, "Ashes")

	visible, err := e.CreateComment(ctx, author.ID, chID, "fine", nil)
	require.NoError(t, err)
	hidden, err := e.CreateComment(ctx, author.ID, chID, "bad", nil)
	require.NoError(t, err)
	require.NoError(t, st.SetCommentHidden(ctx, hidden.ID, true))

	comments, err := e.CommentsOnChapter(ctx, author.ID, chID)
	require.NoError(t, err)
	require.Len(t, comments, 1)
	assert.Equal(t, visible.ID, comments[0].ID)

	comments, err = e.CommentsOnChapter(ctx, mod.ID, chID)
	require.NoError(t, err)
	assert.Len(t, comments, 2)
}

func TestCreateCommentCountsAndReplies(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	reader := createUser(t, st, "bo")
	s, chID := createPublishedStory(t, e, author.ID, "Ashes")

	top, err := e.CreateComment(ctx, reader.ID, chID, "loved it", nil)
	require.NoError(t, err)
	assert.Equal(t, 1, getChapter(t, st, chID).Comments)
	assert.Equal(t, 1, getStory(t, st, s.ID).TotalComments)

	reply, err := e.CreateComment(ctx, author.ID, chID, "thanks!", &top.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, getChapter(t, st, chID).Comments)

	// One level of nesting only.
	_, err = e.CreateComment(ctx, reader.ID, chID, "np", &reply.ID)
	require.ErrorIs(t, err, ErrInvalidArgument)

	// Reply parent must belong to the same chapter.
	otherCh, err := e.CreateChapter(ctx, author.ID, s.ID, CreateChapterInput{
		Title: "Two", Content: "x", Publish: true,
	})
	require.NoError(t, err)
	_, err = e.CreateComment(ctx, reader.ID, otherCh, "cross", &top.ID)
	require.ErrorIs(t, err, ErrInvalidArgument)

	_, err = e.CreateComment(ctx, reader.ID, chID, "   ", nil)
	require.ErrorIs(t, err, ErrInvalidArgument)
}

func TestDeleteCommentSettlesCounts(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	reader := createUser(t, st, "bo")
	s, chID := createPublishedStory(t, e, author.ID, "Ashes")

	top, err := e.CreateComment(ctx, reader.ID, chID, "loved it", nil)
	require.NoError(t, err)
	_, err = e.CreateComment(ctx, author.ID, chID, "thanks!", &top.ID)
	require.NoError(t, err)
	require.Equal(t, 2, getChapter(t, st, chID).Comments)

	// Deleting the top comment removes its reply too.
	require.NoError(t, e.DeleteComment(ctx, reader.ID, top.ID))
	assert.Equal(t, 0, getChapter(t, st, chID).Comments)
	assert.Equal(t, 0, getStory(t, st, s.ID).TotalComments)
	_, err = st.CommentByID(ctx, top.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestDeleteCommentAuthorization(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	reader := createUser(t, st, "bo")
	mod := createModerator(t, st, "mia")
	_, chID := createPublishedStory(t, e, author.ID, "Ashes")

	c, err := e.CreateComment(ctx, reader.ID, chID, "mine", nil)
	require.NoError(t, err)

	require.ErrorIs(t, e.DeleteComment(ctx, author.ID, c.ID), ErrNotAuthorized)
	require.NoError(t, e.DeleteComment(ctx, mod.ID, c.ID))
}
