package engine

import (
	"context"

	"storyloom.com/storyloom/models"
)

// IncrementChapterViews counts a view. Authenticated readers are
// counted at most once per chapter via the (user, chapter) view row;
// anonymous traffic (actorID 0) increments unconditionally on every
// call.
func (e *Engine) IncrementChapterViews(ctx context.Context, actorID, chapterID int64) error {
	ch, err := e.st.ChapterByID(ctx, chapterID)
	if err != nil {
		return err
	}

	if actorID != 0 {
		seen, err := e.st.HasChapterView(ctx, actorID, chapterID)
		if err != nil {
			return err
		}
		if seen {
			return nil
		}
		if err := e.st.InsertChapterView(ctx, actorID, chapterID); err != nil {
			return err
		}
	}

	if err := e.ledger.AdjustChapter(ctx, chapterID, models.ChapterCounterDelta{Views: 1}); err != nil {
		return err
	}
	return e.ledger.AdjustStory(ctx, ch.StoryID, models.StoryCounterDelta{Views: 1})
}
