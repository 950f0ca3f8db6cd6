package store

import (
	"context"
	"fmt"
	"time"

	"github.com/lib/pq"
	"storyloom.com/storyloom/models"
)

const storyColumns = `id, author_id, title, description, genre, tags,
	is_completed, is_published, total_chapters, total_views, total_likes,
	total_comments, trending_score, created_at, last_updated`

func scanStory(row interface{ Scan(...any) error }) (*models.Story, error) {
	var s models.Story
	err := row.Scan(&s.ID, &s.AuthorID, &s.Title, &s.Description, &s.Genre,
		pq.Array(&s.Tags), &s.IsCompleted, &s.IsPublished, &s.TotalChapters,
		&s.TotalViews, &s.TotalLikes, &s.TotalComments, &s.TrendingScore,
		&s.CreatedAt, &s.LastUpdated)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *Postgres) CreateStory(ctx context.Context, s *models.Story) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO stories (author_id, title, description, genre, tags, is_completed, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, last_updated`,
		s.AuthorID, s.Title, s.Description, s.Genre, pq.Array(s.Tags),
		s.IsCompleted, s.IsPublished,
	).Scan(&s.ID, &s.CreatedAt, &s.LastUpdated)
	if err != nil {
		return fmt.Errorf("insert story: %w", err)
	}
	return nil
}

func (p *Postgres) StoryByID(ctx context.Context, id int64) (*models.Story, error) {
	s, err := scanStory(p.db.QueryRowContext(ctx,
		`SELECT `+storyColumns+` FROM stories WHERE id = $1`, id))
	if err != nil {
		return nil, notFound("story by id", err)
	}
	return s, nil
}

func (p *Postgres) UpdateStoryMeta(ctx context.Context, s *models.Story) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE stories
		SET title = $1, description = $2, genre = $3, tags = $4,
		    is_completed = $5, last_updated = $6
		WHERE id = $7`,
		s.Title, s.Description, s.Genre, pq.Array(s.Tags), s.IsCompleted,
		s.LastUpdated, s.ID)
	return requireAffected("update story", res, err)
}

func (p *Postgres) SetStoryPublication(ctx context.Context, id int64, published bool) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE stories SET is_published = $1 WHERE id = $2`, published, id)
	return requireAffected("set story publication", res, err)
}

func (p *Postgres) AdjustStoryCounters(ctx context.Context, id int64, d models.StoryCounterDelta) error {
	if d.IsZero() {
		return nil
	}
	res, err := p.db.ExecContext(ctx, `
		UPDATE stories SET
			total_chapters = GREATEST(total_chapters + $1, 0),
			total_views    = GREATEST(total_views + $2, 0),
			total_likes    = GREATEST(total_likes + $3, 0),
			total_comments = GREATEST(total_comments + $4, 0)
		WHERE id = $5`,
		d.Chapters, d.Views, d.Likes, d.Comments, id)
	return requireAffected("adjust story counters", res, err)
}

func (p *Postgres) TouchStory(ctx context.Context, id int64, at time.Time) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE stories SET last_updated = $1 WHERE id = $2`, at, id)
	return requireAffected("touch story", res, err)
}

func (p *Postgres) StoriesByAuthor(ctx context.Context, authorID int64) ([]models.Story, error) {
	rows, err := p.db.QueryContext(ctx,
		`SELECT `+storyColumns+` FROM stories WHERE author_id = $1 ORDER BY last_updated DESC`,
		authorID)
	if err != nil {
		return nil, fmt.Errorf("stories by author: %w", err)
	}
	defer rows.Close()

	var stories []models.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		stories = append(stories, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("stories rows: %w", err)
	}
	return stories, nil
}

func (p *Postgres) PublishedStories(ctx context.Context, limit, offset int) ([]models.Story, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT `+storyColumns+` FROM stories
		WHERE is_published = true
		ORDER BY last_updated DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("published stories: %w", err)
	}
	defer rows.Close()

	var stories []models.Story
	for rows.Next() {
		s, err := scanStory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan story: %w", err)
		}
		stories = append(stories, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("published stories rows: %w", err)
	}
	return stories, nil
}

func (p *Postgres) DeleteStory(ctx context.Context, id int64) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete story begin: %w", err)
	}
	defer tx.Rollback()

	steps := []struct {
		name  string
		query string
	}{
		{"likes", `DELETE FROM chapter_likes WHERE chapter_id IN (SELECT id FROM chapters WHERE story_id = $1)`},
		{"views", `DELETE FROM chapter_views WHERE chapter_id IN (SELECT id FROM chapters WHERE story_id = $1)`},
		{"reactions", `DELETE FROM comment_reactions WHERE comment_id IN (
			SELECT c.id FROM comments c
			JOIN chapters ch ON c.chapter_id = ch.id WHERE ch.story_id = $1)`},
		{"comments", `DELETE FROM comments WHERE chapter_id IN (SELECT id FROM chapters WHERE story_id = $1)`},
		{"chapters", `DELETE FROM chapters WHERE story_id = $1`},
		{"follows", `DELETE FROM story_follows WHERE story_id = $1`},
		{"progress", `DELETE FROM reading_progress WHERE story_id = $1`},
	}
	for _, step := range steps {
		if _, err := tx.ExecContext(ctx, step.query, id); err != nil {
			return fmt.Errorf("delete story %s: %w", step.name, err)
		}
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM stories WHERE id = $1`, id)
	if err := requireAffected("delete story", res, err); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete story commit: %w", err)
	}
	return nil
}
