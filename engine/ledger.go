package engine

import (
	"context"

	"storyloom.com/storyloom/models"
	"storyloom.com/storyloom/store"
)

// Ledger is the single path through which every denormalized count
// moves. Counts are adjusted incrementally at the triggering event,
// never recomputed, and every decrement is clamped at zero by the store
// so a history of partial failures can only leave counts stale, never
// negative.
type Ledger struct {
	st store.Store
}

func (l Ledger) AdjustStory(ctx context.Context, storyID int64, d models.StoryCounterDelta) error {
	return l.st.AdjustStoryCounters(ctx, storyID, d)
}

func (l Ledger) AdjustChapter(ctx context.Context, chapterID int64, d models.ChapterCounterDelta) error {
	return l.st.AdjustChapterCounters(ctx, chapterID, d)
}

func (l Ledger) AdjustComment(ctx context.Context, commentID int64, likes, dislikes int) error {
	return l.st.AdjustCommentCounters(ctx, commentID, likes, dislikes)
}
