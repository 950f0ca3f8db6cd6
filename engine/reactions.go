package engine

import (
	"context"
	"errors"
	"strings"

	"storyloom.com/storyloom/models"
	"storyloom.com/storyloom/store"
)

// hideDislikeThreshold is the moderation latch: a comment reaching this
// many dislikes is hidden and never automatically unhidden.
const hideDislikeThreshold = 10

// ToggleChapterLike flips the actor's like on a chapter and reports the
// resulting state. The (user, chapter) row is the source of truth; the
// chapter and story counters follow it.
func (e *Engine) ToggleChapterLike(ctx context.Context, actorID, chapterID int64) (bool, error) {
	if actorID == 0 {
		return false, ErrNotAuthorized
	}
	ch, err := e.st.ChapterByID(ctx, chapterID)
	if err != nil {
		return false, err
	}

	liked, err := e.st.HasChapterLike(ctx, actorID, chapterID)
	if err != nil {
		return false, err
	}

	if liked {
		if err := e.st.DeleteChapterLike(ctx, actorID, chapterID); err != nil {
			return false, err
		}
		if err := e.ledger.AdjustChapter(ctx, chapterID, models.ChapterCounterDelta{Likes: -1}); err != nil {
			return false, err
		}
		if err := e.ledger.AdjustStory(ctx, ch.StoryID, models.StoryCounterDelta{Likes: -1}); err != nil {
			return false, err
		}
		return false, nil
	}

	if err := e.st.InsertChapterLike(ctx, actorID, chapterID); err != nil {
		return false, err
	}
	if err := e.ledger.AdjustChapter(ctx, chapterID, models.ChapterCounterDelta{Likes: 1}); err != nil {
		return false, err
	}
	if err := e.ledger.AdjustStory(ctx, ch.StoryID, models.StoryCounterDelta{Likes: 1}); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) HasUserLikedChapter(ctx context.Context, actorID, chapterID int64) (bool, error) {
	if actorID == 0 {
		return false, nil
	}
	return e.st.HasChapterLike(ctx, actorID, chapterID)
}

// ReactToComment cycles the actor's reaction on a comment through its
// three states: none -> liked/disliked on first react, same polarity
// toggles off, opposite polarity flips. After every write the comment
// is re-read and hidden once dislikes reach the threshold.
func (e *Engine) ReactToComment(ctx context.Context, actorID, commentID int64, isLike bool) error {
	if actorID == 0 {
		return ErrNotAuthorized
	}
	if _, err := e.st.CommentByID(ctx, commentID); err != nil {
		return err
	}

	existing, err := e.st.CommentReaction(ctx, actorID, commentID)
	switch {
	case errors.Is(err, store.ErrNotFound):
		r := &models.CommentReaction{UserID: actorID, CommentID: commentID, IsLike: isLike}
		if err := e.st.InsertCommentReaction(ctx, r); err != nil {
			return err
		}
		if err := e.adjustReactionCounters(ctx, commentID, isLike, 1); err != nil {
			return err
		}

	case err != nil:
		return err

	case existing.IsLike == isLike:
		if err := e.st.DeleteCommentReaction(ctx, actorID, commentID); err != nil {
			return err
		}
		if err := e.adjustReactionCounters(ctx, commentID, isLike, -1); err != nil {
			return err
		}

	default:
		if err := e.st.UpdateCommentReaction(ctx, actorID, commentID, isLike); err != nil {
			return err
		}
		// old polarity down, new polarity up, in one adjustment
		likes, dislikes := 1, -1
		if !isLike {
			likes, dislikes = -1, 1
		}
		if err := e.ledger.AdjustComment(ctx, commentID, likes, dislikes); err != nil {
			return err
		}
	}

	return e.applyModerationLatch(ctx, commentID)
}

func (e *Engine) adjustReactionCounters(ctx context.Context, commentID int64, isLike bool, delta int) error {
	if isLike {
		return e.ledger.AdjustComment(ctx, commentID, delta, 0)
	}
	return e.ledger.AdjustComment(ctx, commentID, 0, delta)
}

func (e *Engine) applyModerationLatch(ctx context.Context, commentID int64) error {
	c, err := e.st.CommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.Dislikes >= hideDislikeThreshold && !c.IsHidden {
		return e.st.SetCommentHidden(ctx, commentID, true)
	}
	return nil
}

// CreateComment posts a comment or a one-level reply on a chapter.
// Replies to replies are rejected. A reply notifies the parent
// comment's author unless they are replying to themselves.
func (e *Engine) CreateComment(ctx context.Context, actorID, chapterID int64, content string, parentCommentID *int64) (*models.Comment, error) {
	if actorID == 0 {
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidArgument
	}
	ch, err := e.st.ChapterByID(ctx, chapterID)
	if err != nil {
		return nil, err
	}

	var parent *models.Comment
	if parentCommentID != nil {
		parent, err = e.st.CommentByID(ctx, *parentCommentID)
		if err != nil {
			return nil, err
		}
		if parent.ChapterID != chapterID || parent.ParentCommentID != nil {
			return nil, ErrInvalidArgument
		}
	}

	c := &models.Comment{
		ChapterID:       chapterID,
		UserID:          actorID,
		Content:         content,
		ParentCommentID: parentCommentID,
	}
	if err := e.st.CreateComment(ctx, c); err != nil {
		return nil, err
	}

	if err := e.ledger.AdjustChapter(ctx, chapterID, models.ChapterCounterDelta{Comments: 1}); err != nil {
		e.log.Printf("bump comment count for chapter %d: %v", chapterID, err)
	}
	if err := e.ledger.AdjustStory(ctx, ch.StoryID, models.StoryCounterDelta{Comments: 1}); err != nil {
		e.log.Printf("bump comment count for story %d: %v", ch.StoryID, err)
	}

	if parent != nil {
		e.notifier.CommentReply(ctx, parent, c)
	}
	return c, nil
}

// DeleteComment removes a comment, its replies and every reaction on
// them. Author or moderator only.
func (e *Engine) DeleteComment(ctx context.Context, actorID, commentID int64) error {
	c, err := e.st.CommentByID(ctx, commentID)
	if err != nil {
		return err
	}
	if c.UserID != actorID && !e.isModerator(ctx, actorID) {
		return ErrNotAuthorized
	}

	removed, err := e.st.DeleteCommentCascade(ctx, commentID)
	if err != nil {
		return err
	}

	ch, err := e.st.ChapterByID(ctx, c.ChapterID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil
		}
		return err
	}
	if err := e.ledger.AdjustChapter(ctx, c.ChapterID, models.ChapterCounterDelta{Comments: -removed}); err != nil {
		e.log.Printf("drop comment count for chapter %d: %v", c.ChapterID, err)
	}
	if err := e.ledger.AdjustStory(ctx, ch.StoryID, models.StoryCounterDelta{Comments: -removed}); err != nil {
		e.log.Printf("drop comment count for story %d: %v", ch.StoryID, err)
	}
	return nil
}

// CommentsOnChapter lists a chapter's visible comments. Hidden comments
// are included for moderators.
func (e *Engine) CommentsOnChapter(ctx context.Context, actorID, chapterID int64) ([]models.Comment, error) {
	if _, err := e.st.ChapterByID(ctx, chapterID); err != nil {
		return nil, err
	}
	return e.st.CommentsByChapter(ctx, chapterID, e.isModerator(ctx, actorID))
}
