package store

import (
	"context"
	"fmt"

	"storyloom.com/storyloom/models"
)

const commentColumns = `id, chapter_id, user_id, content, likes, dislikes,
	is_hidden, parent_comment_id, created_at`

func scanComment(row interface{ Scan(...any) error }) (*models.Comment, error) {
	var c models.Comment
	err := row.Scan(&c.ID, &c.ChapterID, &c.UserID, &c.Content, &c.Likes,
		&c.Dislikes, &c.IsHidden, &c.ParentCommentID, &c.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (p *Postgres) CreateComment(ctx context.Context, c *models.Comment) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO comments (chapter_id, user_id, content, parent_comment_id)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`,
		c.ChapterID, c.UserID, c.Content, c.ParentCommentID,
	).Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert comment: %w", err)
	}
	return nil
}

func (p *Postgres) CommentByID(ctx context.Context, id int64) (*models.Comment, error) {
	c, err := scanComment(p.db.QueryRowContext(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("comment by id", err)
	}
	return c, nil
}

func (p *Postgres) DeleteCommentCascade(ctx context.Context, id int64) (int, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("delete comment begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM comment_reactions
		WHERE comment_id = $1
		   OR comment_id IN (SELECT id FROM comments WHERE parent_comment_id = $1)`, id)
	if err != nil {
		return 0, fmt.Errorf("delete comment reactions: %w", err)
	}

	res, err := tx.ExecContext(ctx, `
		DELETE FROM comments WHERE id = $1 OR parent_comment_id = $1`, id)
	if err != nil {
		return 0, fmt.Errorf("delete comment: %w", err)
	}
	removed, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete comment rows affected: %w", err)
	}
	if removed == 0 {
		return 0, fmt.Errorf("delete comment: %w", ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("delete comment commit: %w", err)
	}
	return int(removed), nil
}

func (p *Postgres) CommentsByChapter(ctx context.Context, chapterID int64, includeHidden bool) ([]models.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE chapter_id = $1`
	if !includeHidden {
		query += ` AND is_hidden = false`
	}
	query += ` ORDER BY created_at ASC`

	rows, err := p.db.QueryContext(ctx, query, chapterID)
	if err != nil {
		return nil, fmt.Errorf("comments by chapter: %w", err)
	}
	defer rows.Close()

	var comments []models.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("comments rows: %w", err)
	}
	return comments, nil
}

func (p *Postgres) AdjustCommentCounters(ctx context.Context, id int64, likes, dislikes int) error {
	if likes == 0 && dislikes == 0 {
		return nil
	}
	res, err := p.db.ExecContext(ctx, `
		UPDATE comments SET
			likes    = GREATEST(likes + $1, 0),
			dislikes = GREATEST(dislikes + $2, 0)
		WHERE id = $3`,
		likes, dislikes, id)
	return requireAffected("adjust comment counters", res, err)
}

func (p *Postgres) SetCommentHidden(ctx context.Context, id int64, hidden bool) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE comments SET is_hidden = $1 WHERE id = $2`, hidden, id)
	return requireAffected("set comment hidden", res, err)
}

func (p *Postgres) DeleteCommentsForChapter(ctx context.Context, chapterID int64) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete chapter comments begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		DELETE FROM comment_reactions
		WHERE comment_id IN (SELECT id FROM comments WHERE chapter_id = $1)`, chapterID)
	if err != nil {
		return fmt.Errorf("delete chapter comment reactions: %w", err)
	}

	_, err = tx.ExecContext(ctx, `DELETE FROM comments WHERE chapter_id = $1`, chapterID)
	if err != nil {
		return fmt.Errorf("delete chapter comments: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete chapter comments commit: %w", err)
	}
	return nil
}
