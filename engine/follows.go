package engine

import (
	"context"
	"errors"

	"storyloom.com/storyloom/models"
	"storyloom.com/storyloom/store"
)

// ToggleUserFollow flips the actor's follow edge toward another user
// and reports whether the actor now follows them. Self-follows are
// rejected.
func (e *Engine) ToggleUserFollow(ctx context.Context, actorID, targetID int64) (bool, error) {
	if actorID == 0 {
		return false, ErrNotAuthorized
	}
	if actorID == targetID {
		return false, ErrInvalidArgument
	}
	if _, err := e.st.UserByID(ctx, targetID); err != nil {
		return false, err
	}

	following, err := e.st.HasUserFollow(ctx, actorID, targetID)
	if err != nil {
		return false, err
	}
	if following {
		if err := e.st.DeleteUserFollow(ctx, actorID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}
	f := &models.Follow{FollowerID: actorID, FolloweeID: targetID}
	if err := e.st.InsertUserFollow(ctx, f); err != nil {
		return false, err
	}
	return true, nil
}

// ToggleStoryFollow flips the actor's follow edge toward a story.
// Authors may follow their own stories; they then receive their own
// chapter announcements.
func (e *Engine) ToggleStoryFollow(ctx context.Context, actorID, storyID int64, isFavorite bool) (bool, error) {
	if actorID == 0 {
		return false, ErrNotAuthorized
	}
	if _, err := e.st.StoryByID(ctx, storyID); err != nil {
		return false, err
	}

	following, err := e.st.HasStoryFollow(ctx, actorID, storyID)
	if err != nil {
		return false, err
	}
	if following {
		if err := e.st.DeleteStoryFollow(ctx, actorID, storyID); err != nil {
			return false, err
		}
		return false, nil
	}
	f := &models.StoryFollow{UserID: actorID, StoryID: storyID, IsFavorite: isFavorite}
	if err := e.st.InsertStoryFollow(ctx, f); err != nil {
		return false, err
	}
	return true, nil
}

func (e *Engine) IsFollowingUser(ctx context.Context, actorID, targetID int64) (bool, error) {
	if actorID == 0 {
		return false, nil
	}
	return e.st.HasUserFollow(ctx, actorID, targetID)
}

func (e *Engine) IsFollowingStory(ctx context.Context, actorID, storyID int64) (bool, error) {
	if actorID == 0 {
		return false, nil
	}
	return e.st.HasStoryFollow(ctx, actorID, storyID)
}

// Followers lists the users following userID.
func (e *Engine) Followers(ctx context.Context, userID int64) ([]models.User, error) {
	ids, err := e.st.UserFollowerIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.resolveUsers(ctx, ids)
}

// Following lists the users userID follows.
func (e *Engine) Following(ctx context.Context, userID int64) ([]models.User, error) {
	ids, err := e.st.UserFollowingIDs(ctx, userID)
	if err != nil {
		return nil, err
	}
	return e.resolveUsers(ctx, ids)
}

func (e *Engine) resolveUsers(ctx context.Context, ids []int64) ([]models.User, error) {
	users := make([]models.User, 0, len(ids))
	for _, id := range ids {
		u, err := e.st.UserByID(ctx, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				continue
			}
			return nil, err
		}
		u.Password = ""
		users = append(users, *u)
	}
	return users, nil
}
