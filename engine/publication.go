package engine

import (
	"context"
	"strings"
	"time"

	"storyloom.com/storyloom/models"
)

type CreateChapterInput struct {
	Title   string
	Content string
	// Publish requests the chapter start out published instead of the
	// default draft state.
	Publish bool
	// PublishStoryToo publishes an unpublished story together with its
	// first chapter in the same operation.
	PublishStoryToo bool
}

type UpdateChapterInput struct {
	Title           *string
	Content         *string
	IsPublished     *bool
	IsDraft         *bool
	PublishStoryToo bool
}

// CreateChapter appends a chapter to a story. The chapter number is
// count(existing)+1 and is never reassigned. Creating in published
// state requires the story to already be published, or the combined
// publish-story-with-first-chapter flag on the story's first chapter.
func (e *Engine) CreateChapter(ctx context.Context, actorID, storyID int64, in CreateChapterInput) (int64, error) {
	story, err := e.st.StoryByID(ctx, storyID)
	if err != nil {
		return 0, err
	}
	if story.AuthorID != actorID {
		return 0, ErrNotAuthorized
	}
	if strings.TrimSpace(in.Title) == "" {
		return 0, ErrInvalidArgument
	}

	count, err := e.st.CountChapters(ctx, storyID)
	if err != nil {
		return 0, err
	}

	combined := false
	if in.Publish && !story.IsPublished {
		if !in.PublishStoryToo || count != 0 {
			return 0, ErrInvalidStateTransition
		}
		combined = true
	}

	ch := &models.Chapter{
		StoryID:       storyID,
		Title:         in.Title,
		Content:       in.Content,
		ChapterNumber: count + 1,
		WordCount:     wordCount(in.Content),
		IsPublished:   in.Publish,
		IsDraft:       !in.Publish,
	}
	if err := e.st.CreateChapter(ctx, ch); err != nil {
		return 0, err
	}

	if in.Publish {
		e.applyChapterPublish(ctx, story, ch, combined)
	}
	return ch.ID, nil
}

// UpdateChapter edits content and moves the chapter between Draft and
// Published. Both directions are allowed; publishing a chapter of an
// unpublished story requires the combined flag and only the first
// chapter qualifies.
func (e *Engine) UpdateChapter(ctx context.Context, actorID, chapterID int64, in UpdateChapterInput) (int64, error) {
	ch, err := e.st.ChapterByID(ctx, chapterID)
	if err != nil {
		return 0, err
	}
	story, err := e.st.StoryByID(ctx, ch.StoryID)
	if err != nil {
		return 0, err
	}
	if story.AuthorID != actorID {
		return 0, ErrNotAuthorized
	}

	if in.Title != nil {
		if strings.TrimSpace(*in.Title) == "" {
			return 0, ErrInvalidArgument
		}
		ch.Title = *in.Title
	}
	if in.Content != nil {
		ch.Content = *in.Content
		ch.WordCount = wordCount(*in.Content)
	}

	wasPublished := ch.IsPublished
	wantPublished := wasPublished
	switch {
	case in.IsPublished != nil:
		wantPublished = *in.IsPublished
	case in.IsDraft != nil:
		wantPublished = !*in.IsDraft
	}

	combined := false
	if wantPublished && !wasPublished && !story.IsPublished {
		// Only the first chapter may carry the story with it; later
		// chapters never trigger story publication.
		if !in.PublishStoryToo || ch.ChapterNumber != 1 {
			return 0, ErrInvalidStateTransition
		}
		combined = true
	}

	ch.IsPublished = wantPublished
	ch.IsDraft = !wantPublished
	if err := e.st.UpdateChapterContent(ctx, ch); err != nil {
		return 0, err
	}

	switch {
	case wantPublished && !wasPublished:
		e.applyChapterPublish(ctx, story, ch, combined)
	case !wantPublished && wasPublished:
		e.applyChapterUnpublish(ctx, story.ID)
	}
	return ch.ID, nil
}

// applyChapterPublish settles the story side of a chapter entering the
// Published state: counter bump, freshness touch, fan-out. The combined
// path also flips the story itself to published and announces the story
// rather than the chapter.
func (e *Engine) applyChapterPublish(ctx context.Context, story *models.Story, ch *models.Chapter, combined bool) {
	if combined {
		if err := e.st.SetStoryPublication(ctx, story.ID, true); err != nil {
			e.log.Printf("publish story %d: %v", story.ID, err)
		}
	}
	if err := e.ledger.AdjustStory(ctx, story.ID, models.StoryCounterDelta{Chapters: 1}); err != nil {
		e.log.Printf("bump chapter count for story %d: %v", story.ID, err)
	}
	if err := e.st.TouchStory(ctx, story.ID, time.Now().UTC()); err != nil {
		e.log.Printf("touch story %d: %v", story.ID, err)
	}

	if combined {
		e.notifier.NewStory(ctx, story)
	} else {
		e.notifier.NewChapter(ctx, story, ch)
	}
}

// applyChapterUnpublish runs after every transition out of Published,
// including deletes: drop the published-chapter count and flip the
// story back to unpublished when no published chapter remains.
func (e *Engine) applyChapterUnpublish(ctx context.Context, storyID int64) {
	if err := e.ledger.AdjustStory(ctx, storyID, models.StoryCounterDelta{Chapters: -1}); err != nil {
		e.log.Printf("drop chapter count for story %d: %v", storyID, err)
	}
	e.cascadeUnpublish(ctx, storyID)
}

func (e *Engine) cascadeUnpublish(ctx context.Context, storyID int64) {
	remaining, err := e.st.CountPublishedChapters(ctx, storyID)
	if err != nil {
		e.log.Printf("cascade check for story %d: %v", storyID, err)
		return
	}
	if remaining > 0 {
		return
	}
	if err := e.st.SetStoryPublication(ctx, storyID, false); err != nil {
		e.log.Printf("cascade unpublish story %d: %v", storyID, err)
	}
}

// DeleteChapter removes a chapter and its engagement rows. The like,
// view and comment rows go first so no orphaned reaction rows survive,
// then the story aggregates are settled, then the chapter row itself is
// removed and the cascade-unpublish check runs.
func (e *Engine) DeleteChapter(ctx context.Context, actorID, chapterID int64) error {
	ch, err := e.st.ChapterByID(ctx, chapterID)
	if err != nil {
		return err
	}
	story, err := e.st.StoryByID(ctx, ch.StoryID)
	if err != nil {
		return err
	}
	if story.AuthorID != actorID && !e.isModerator(ctx, actorID) {
		return ErrNotAuthorized
	}

	if err := e.st.DeleteChapterEngagement(ctx, chapterID); err != nil {
		return err
	}
	if err := e.st.DeleteCommentsForChapter(ctx, chapterID); err != nil {
		return err
	}

	delta := models.StoryCounterDelta{Likes: -ch.Likes}
	if ch.IsPublished {
		delta.Chapters = -1
	}
	if err := e.ledger.AdjustStory(ctx, story.ID, delta); err != nil {
		return err
	}

	if err := e.st.DeleteChapter(ctx, chapterID); err != nil {
		return err
	}
	if ch.IsPublished {
		e.cascadeUnpublish(ctx, story.ID)
	}
	return nil
}

// Chapter returns a chapter if the actor may see it: published chapters
// of published stories are public, drafts belong to the author.
func (e *Engine) Chapter(ctx context.Context, actorID, chapterID int64) (*models.Chapter, error) {
	ch, err := e.st.ChapterByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}
	if ch.IsPublished {
		return ch, nil
	}
	story, err := e.st.StoryByID(ctx, ch.StoryID)
	if err != nil {
		return nil, err
	}
	if story.AuthorID != actorID && !e.isModerator(ctx, actorID) {
		return nil, ErrNotAuthorized
	}
	return ch, nil
}

// ChaptersOfStory lists a story's chapters in order. Drafts are
// included for the author and moderators only.
func (e *Engine) ChaptersOfStory(ctx context.Context, actorID, storyID int64) ([]models.Chapter, error) {
	story, err := e.st.StoryByID(ctx, storyID)
	if err != nil {
		return nil, err
	}
	chapters, err := e.st.ChaptersByStory(ctx, storyID)
	if err != nil {
		return nil, err
	}
	if story.AuthorID == actorID || e.isModerator(ctx, actorID) {
		return chapters, nil
	}
	visible := chapters[:0]
	for _, c := range chapters {
		if c.IsPublished {
			visible = append(visible, c)
		}
	}
	return visible, nil
}

func wordCount(content string) int {
	return len(strings.Fields(content))
}
