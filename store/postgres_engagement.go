package store

import (
	"context"
	"fmt"

	"storyloom.com/storyloom/models"
)

func (p *Postgres) HasChapterLike(ctx context.Context, userID, chapterID int64) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM chapter_likes WHERE user_id = $1 AND chapter_id = $2)`,
		userID, chapterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has chapter like: %w", err)
	}
	return exists, nil
}

func (p *Postgres) InsertChapterLike(ctx context.Context, userID, chapterID int64) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO chapter_likes (user_id, chapter_id) VALUES ($1, $2)
		ON CONFLICT (user_id, chapter_id) DO NOTHING`,
		userID, chapterID)
	if err != nil {
		return fmt.Errorf("insert chapter like: %w", err)
	}
	return nil
}

func (p *Postgres) DeleteChapterLike(ctx context.Context, userID, chapterID int64) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM chapter_likes WHERE user_id = $1 AND chapter_id = $2`,
		userID, chapterID)
	if err != nil {
		return fmt.Errorf("delete chapter like: %w", err)
	}
	return nil
}

func (p *Postgres) HasChapterView(ctx context.Context, userID, chapterID int64) (bool, error) {
	var exists bool
	err := p.db.QueryRowContext(ctx, `
		SELECT EXISTS (SELECT 1 FROM chapter_views WHERE user_id = $1 AND chapter_id = $2)`,
		userID, chapterID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("has chapter view: %w", err)
	}
	return exists, nil
}

func (p *Postgres) InsertChapterView(ctx context.Context, userID, chapterID int64) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO chapter_views (user_id, chapter_id) VALUES ($1, $2)
		ON CONFLICT (user_id, chapter_id) DO NOTHING`,
		userID, chapterID)
	if err != nil {
		return fmt.Errorf("insert chapter view: %w", err)
	}
	return nil
}

func (p *Postgres) DeleteChapterEngagement(ctx context.Context, chapterID int64) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete chapter engagement begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM chapter_likes WHERE chapter_id = $1`, chapterID); err != nil {
		return fmt.Errorf("delete chapter likes: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM chapter_views WHERE chapter_id = $1`, chapterID); err != nil {
		return fmt.Errorf("delete chapter views: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete chapter engagement commit: %w", err)
	}
	return nil
}

func (p *Postgres) CommentReaction(ctx context.Context, userID, commentID int64) (*models.CommentReaction, error) {
	var r models.CommentReaction
	err := p.db.QueryRowContext(ctx, `
		SELECT id, user_id, comment_id, is_like, created_at
		FROM comment_reactions WHERE user_id = $1 AND comment_id = $2`,
		userID, commentID,
	).Scan(&r.ID, &r.UserID, &r.CommentID, &r.IsLike, &r.CreatedAt)
	if err != nil {
		return nil, notFound("comment reaction", err)
	}
	return &r, nil
}

func (p *Postgres) InsertCommentReaction(ctx context.Context, r *models.CommentReaction) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO comment_reactions (user_id, comment_id, is_like)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		r.UserID, r.CommentID, r.IsLike,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment reaction: %w", err)
	}
	return nil
}

func (p *Postgres) UpdateCommentReaction(ctx context.Context, userID, commentID int64, isLike bool) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE comment_reactions SET is_like = $1
		WHERE user_id = $2 AND comment_id = $3`,
		isLike, userID, commentID)
	return requireAffected("update comment reaction", res, err)
}

func (p *Postgres) DeleteCommentReaction(ctx context.Context, userID, commentID int64) error {
	_, err := p.db.ExecContext(ctx,
		`DELETE FROM comment_reactions WHERE user_id = $1 AND comment_id = $2`,
		userID, commentID)
	if err != nil {
		return fmt.Errorf("delete comment reaction: %w", err)
	}
	return nil
}
