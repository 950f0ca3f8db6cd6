package engine

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"storyloom.com/storyloom/store"
)

func TestAuthenticatedViewsCountOnce(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	reader := createUser(t, st, "bo")
	s, chID := createPublishedStory(t, e, author.ID, "Ashes")

	for i := 0; i < 5; i++ {
		require.NoError(t, e.IncrementChapterViews(ctx, reader.ID, chID))
	}

	assert.Equal(t, 1, getChapter(t, st, chID).Views)
	assert.Equal(t, 1, getStory(t, st, s.ID).TotalViews)
}

func TestAnonymousViewsUncapped(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	s, chID := createPublishedStory(t, e, author.ID, "Ashes")

	for i := 0; i < 3; i++ {
		require.NoError(t, e.IncrementChapterViews(ctx, 0, chID))
	}

	assert.Equal(t, 3, getChapter(t, st, chID).Views)
	assert.Equal(t, 3, getStory(t, st, s.ID).TotalViews)
}

func TestViewsCountPerReader(t *testing.T) {
	e, st := newTestEngine(t)
	ctx := context.Background()
	author := createUser(t, st, "ana")
	a := createUser(t, st, "bo")
	b := createUser(t, st, "cy")
	s, chID := createPublishedStory(t, e, author.ID, "Ashes")

	require.NoError(t, e.IncrementChapterViews(ctx, a.ID, chID))
	require.NoError(t, e.IncrementChapterViews(ctx, b.ID, chID))
	require.NoError(t, e.IncrementChapterViews(ctx, a.ID, chID))

	assert.Equal(t, 2, getChapter(t, st, chID).Views)
	assert.Equal(t, 2, getStory(t, st, s.ID).TotalViews)
}

func TestViewMissingChapter(t *testing.T) {
	e, st := newTestEngine(t)
	reader := createUser(t, st, "bo")
	err := e.IncrementChapterViews(context.Background(), reader.ID, 42)
	require.ErrorIs(t, err, store.ErrNotFound)
}
