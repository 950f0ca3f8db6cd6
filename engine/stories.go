package engine

import (
	"context"
	"errors"
	"strings"
	"time"

	"storyloom.com/storyloom/models"
	"storyloom.com/storyloom/store"
)

type StoryInput struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genre       string   `json:"genre"`
	Tags        []string `json:"tags"`
	IsCompleted bool     `json:"is_completed"`
}

// CreateStory creates an unpublished story with zero chapters. Stories
// only become published through the combined publish path in
// CreateChapter/UpdateChapter.
func (e *Engine) CreateStory(ctx context.Context, actorID int64, in StoryInput) (*models.Story, error) {
	if actorID == 0 {
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrInvalidArgument
	}

	s := &models.Story{
		AuthorID:    actorID,
		Title:       in.Title,
		Description: in.Description,
		Genre:       in.Genre,
		Tags:        in.Tags,
		IsCompleted: in.IsCompleted,
	}
	if err := e.st.CreateStory(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

func (e *Engine) UpdateStory(ctx context.Context, actorID, storyID int64, in StoryInput) (*models.Story, error) {
	s, err := e.st.StoryByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if s.AuthorID != actorID {
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(in.Title) == "" {
		return nil, ErrInvalidArgument
	}

	s.Title = in.Title
	s.Description = in.Description
	s.Genre = in.Genre
	s.Tags = in.Tags
	s.IsCompleted = in.IsCompleted
	s.LastUpdated = time.Now().UTC()
	if err := e.st.UpdateStoryMeta(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Story returns a story if the actor may see it: published stories are
// public, drafts are visible to their author and moderators only.
func (e *Engine) Story(ctx context.Context, actorID, storyID int64) (*models.Story, error) {
	s, err := e.st.StoryByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if !s.IsPublished && s.AuthorID != actorID && !e.isModerator(ctx, actorID) {
		return nil, store.ErrNotFound
	}
	return s, nil
}

func (e *Engine) StoriesByAuthor(ctx context.Context, actorID, authorID int64) ([]models.Story, error) {
	stories, err := e.st.StoriesByAuthor(ctx, authorID)
	if err != nil {
		return nil, err
	}
	if actorID == authorID || e.isModerator(ctx, actorID) {
		return stories, nil
	}
	published := stories[:0]
	for _, s := range stories {
		if s.IsPublished {
			published = append(published, s)
		}
	}
	return published, nil
}

func (e *Engine) BrowseStories(ctx context.Context, limit, offset int) ([]models.Story, error) {
	return e.st.PublishedStories(ctx, clampLimit(limit), offset)
}

// DeleteStory removes a story and everything hanging off it: chapters
// with their likes, views and comments, story follows and reading
// progress. Author or moderator only.
func (e *Engine) DeleteStory(ctx context.Context, actorID, storyID int64) error {
	s, err := e.st.StoryByID(ctx, storyID)
	if err != nil {
		return err
	}
	if s.AuthorID != actorID && !e.isModerator(ctx, actorID) {
		return ErrNotAuthorized
	}
	return e.st.DeleteStory(ctx, storyID)
}

func (e *Engine) isModerator(ctx context.Context, actorID int64) bool {
	if actorID == 0 {
		return false
	}
	u, err := e.st.UserByID(ctx, actorID)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			e.log.Printf("moderator lookup for user %d: %v", actorID, err)
		}
		return false
	}
	return u.IsModerator
}

func clampLimit(limit int) int {
	if limit <= 0 {
		return 50
	}
	if limit > 200 {
		return 200
	}
	return limit
}
