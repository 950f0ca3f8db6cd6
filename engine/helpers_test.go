package engine

import (
	"context"
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/require"
	"storyloom.com/storyloom/models"
	"storyloom.com/storyloom/store"
)

func newTestEngine(t *testing.T) (*Engine, *store.Memory) {
	t.Helper()
	st := store.NewMemory()
	return New(st, nil, log.New(io.Discard, "", 0)), st
}

func createUser(t *testing.T, st *store.Memory, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, DisplayName: username}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func createModerator(t *testing.T, st *store.Memory, username string) *models.User {
	t.Helper()
	u := &models.User{Username: username, DisplayName: username, IsModerator: true}
	require.NoError(t, st.CreateUser(context.Background(), u))
	return u
}

func createStory(t *testing.T, e *Engine, authorID int64, title string) *models.Story {
	t.Helper()
	s, err := e.CreateStory(context.Background(), authorID, StoryInput{Title: title, Genre: "fantasy"})
	require.NoError(t, err)
	return s
}

// createPublishedStory creates a story and publishes it together with
// its first chapter. Returns the story and the chapter ID.
func createPublishedStory(t *testing.T, e *Engine, authorID int64, title string) (*models.Story, int64) {
	t.Helper()
	ctx := context.Background()
	s := createStory(t, e, authorID, title)
	chID, err := e.CreateChapter(ctx, authorID, s.ID, CreateChapterInput{
		Title:           "Chapter One",
		Content:         "It begins.",
		Publish:         true,
		PublishStoryToo: true,
	})
	require.NoError(t, err)
	s, err = e.st.StoryByID(ctx, s.ID)
	require.NoError(t, err)
	return s, chID
}

func getStory(t *testing.T, st *store.Memory, id int64) *models.Story {
	t.Helper()
	s, err := st.StoryByID(context.Background(), id)
	require.NoError(t, err)
	return s
}

func getChapter(t *testing.T, st *store.Memory, id int64) *models.Chapter {
	t.Helper()
	c, err := st.ChapterByID(context.Background(), id)
	require.NoError(t, err)
	return c
}

func getComment(t *testing.T, st *store.Memory, id int64) *models.Comment {
	t.Helper()
	c, err := st.CommentByID(context.Background(), id)
	require.NoError(t, err)
	return c
}
