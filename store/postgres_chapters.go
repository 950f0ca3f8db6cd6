package store

import (
	"context"
	"fmt"

	"storyloom.com/storyloom/models"
)

const chapterColumns = `id, story_id, title, content, chapter_number,
	word_count, views, likes, comments, is_published, is_draft,
	created_at, updated_at`

func scanChapter(row interface{ Scan(...any) error }) (*models.Chapter, error) {
	var c models.Chapter
	err := row.Scan(&c.ID, &c.StoryID, &c.Title, &c.Content, &c.ChapterNumber,
		&c.WordCount, &c.Views, &c.Likes, &c.Comments, &c.IsPublished,
		&c.IsDraft, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (p *Postgres) CreateChapter(ctx context.Context, c *models.Chapter) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO chapters (story_id, title, content, chapter_number,
			word_count, is_published, is_draft)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at`,
		c.StoryID, c.Title, c.Content, c.ChapterNumber, c.WordCount,
		c.IsPublished, c.IsDraft,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert chapter: %w", err)
	}
	return nil
}

func (p *Postgres) ChapterByID(ctx context.Context, id int64) (*models.Chapter, error) {
	c, err := scanChapter(p.db.QueryRowContext(ctx,
		`SELECT `+chapterColumns+` FROM chapters WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("chapter by id", err)
	}
	return c, nil
}

func (p *Postgres) UpdateChapterContent(ctx context.Context, c *models.Chapter) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE chapters
		SET title = $1, content = $2, word_count = $3,
		    is_published = $4, is_draft = $5, updated_at = NOW()
		WHERE id = $6`,
		c.Title, c.Content, c.WordCount, c.IsPublished, c.IsDraft, c.ID)
	return requireAffected("update chapter", res, err)
}

func (p *Postgres) DeleteChapter(ctx context.Context, id int64) error {
	res, err := p.db.ExecContext(ctx, `DELETE FROM chapters WHERE id = $1`, id)
	return requireAffected("delete chapter", res, err)
}

func (p *Postgres) ChaptersByStory(ctx context.Context, storyID int64) ([]models.Chapter, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+chapterColumns+` FROM chapters WHERE story_id = $1 ORDER BY chapter_number ASC`,
		storyID)
	if err != nil {
		return nil, fmt.Errorf("chapters by story: %w", err)
	}
	defer rows.Close()

	var chapters []models.Chapter
	for rows.Next() {
		c, err := scanChapter(rows)
		if err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("chapters rows: %w", err)
	}
	return chapters, nil
}

func (p *Postgres) CountChapters(ctx context.Context, storyID int64) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chapters WHERE story_id = $1`, storyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count chapters: %w", err)
	}
	return n, nil
}

func (p *Postgres) CountPublishedChapters(ctx context.Context, storyID int64) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM chapters WHERE story_id = $1 AND is_published = true`,
		storyID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count published chapters: %w", err)
	}
	return n, nil
}

func (p *Postgres) AdjustChapterCounters(ctx context.Context, id int64, d models.ChapterCounterDelta) error {
	if d.IsZero() {
		return nil
	}
	res, err := p.db.ExecContext(ctx, `
		UPDATE chapters SET
			views    = GREATEST(views + $1, 0),
			likes    = GREATEST(likes + $2, 0),
			comments = GREATEST(comments + $3, 0)
		WHERE id = $4`,
		d.Views, d.Likes, d.Comments, id)
	return requireAffected("adjust chapter counters", res, err)
}
