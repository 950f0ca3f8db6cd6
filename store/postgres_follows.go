package store

import (
	"context"
	"fmt"

	"storyloom.com/storyloom/models"
)

func (p *Postgres) HasUserFollow(ctx context.Context, followerID, followeeID int64) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM user_follows WHERE follower_id = $1 AND followee_id = $2)`,
		followerID, followeeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has user follow: %w", err)
	}
	return exists, nil
}

func (p *Postgres) InsertUserFollow(ctx context.Context, f *models.Follow) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO user_follows (follower_id, followee_id)
		VALUES ($1, $2)
		ON CONFLICT (follower_id, followee_id) DO UPDATE SET follower_id = EXCLUDED.follower_id
		RETURNING id, created_at`,
		f.FollowerID, f.FolloweeID,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user follow: %w", err)
	}
	return nil
}

func (p *Postgres) DeleteUserFollow(ctx context.Context, followerID, followeeID int64) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM user_follows WHERE follower_id = $1 AND followee_id = $2`,
		followerID, followeeID)
	if err != nil {
		return fmt.Errorf("delete user follow: %w", err)
	}
	return nil
}

func (p *Postgres) UserFollowerIDs(ctx context.Context, userID int64) ([]int64, error) {
	return p.scanIDs(ctx, "user followers",
		`SELECT follower_id FROM user_follows WHERE followee_id = $1 ORDER BY created_at DESC`,
		userID)
}

func (p *Postgres) UserFollowingIDs(ctx context.Context, userID int64) ([]int64, error) {
	return p.scanIDs(ctx, "user following",
		`SELECT followee_id FROM user_follows WHERE follower_id = $1 ORDER BY created_at DESC`,
		userID)
}

func (p *Postgres) HasStoryFollow(ctx context.Context, userID, storyID int64) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM story_follows WHERE user_id = $1 AND story_id = $2)`,
		userID, storyID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has story follow: %w", err)
	}
	return exists, nil
}

func (p *Postgres) InsertStoryFollow(ctx context.Context, f *models.StoryFollow) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO story_follows (user_id, story_id, is_favorite)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, story_id) DO UPDATE SET is_favorite = EXCLUDED.is_favorite
		RETURNING id, created_at`,
		f.UserID, f.StoryID, f.IsFavorite,
	).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert story follow: %w", err)
	}
	return nil
}

func (p *Postgres) DeleteStoryFollow(ctx context.Context, userID, storyID int64) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM story_follows WHERE user_id = $1 AND story_id = $2`,
		userID, storyID)
	if err != nil {
		return fmt.Errorf("delete story follow: %w", err)
	}
	return nil
}

func (p *Postgres) StoryFollowerIDs(ctx context.Context, storyID int64) ([]int64, error) {
	return p.scanIDs(ctx, "story followers",
		`SELECT user_id FROM story_follows WHERE story_id = $1 ORDER BY created_at DESC`,
		storyID)
}

func (p *Postgres) scanIDs(ctx context.Context, op, query string, arg int64) ([]int64, error) {
	rows, err := p.db.QueryContext(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("%s scan: %w", op, err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s rows: %w", op, err)
	}
	return ids, nil
}
