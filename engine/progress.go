package engine

import (
	"context"

	"storyloom.com/storyloom/models"
)

// SaveProgress upserts the actor's reading position in a story.
func (e *Engine) SaveProgress(ctx context.Context, actorID, storyID, chapterID int64, position float64) (*models.ReadingProgress, error) {
	if actorID == 0 {
		return nil, ErrNotAuthorized
	}
	ch, err := e.st.ChapterByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if ch.StoryID != storyID {
		return nil, ErrInvalidArgument
	}

	p := &models.ReadingProgress{
		UserID:    actorID,
		StoryID:   storyID,
		ChapterID: chapterID,
		Position:  position,
	}
	if err := e.st.UpsertProgress(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (e *Engine) Progress(ctx context.Context, actorID, storyID int64) (*models.ReadingProgress, error) {
	if actorID == 0 {
		return nil, ErrNotAuthorized
	}
	return e.st.ProgressFor(ctx, actorID, storyID)
}
