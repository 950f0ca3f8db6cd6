package store

import (
	"context"
	"fmt"

	"storyloom.com/storyloom/models"
)

func (p *Postgres) InsertNotification(ctx context.Context, n *models.Notification) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO notifications (user_id, type, title, message, is_read, related_id)
		VALUES ($1, $2, $3, $4, false, $5)
		RETURNING id, created_at`,
		n.UserID, n.Type, n.Title, n.Message, n.RelatedID,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

func (p *Postgres) NotificationsForUser(ctx context.Context, userID int64, limit, offset int) ([]models.Notification, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, user_id, type, title, message, is_read, related_id, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("notifications for user: %w", err)
	}
	defer rows.Close()

	var notifications []models.Notification
	for rows.Next() {
		var n models.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Type, &n.Title, &n.Message,
			&n.IsRead, &n.RelatedID, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("notifications rows: %w", err)
	}
	return notifications, nil
}

func (p *Postgres) MarkNotificationRead(ctx context.Context, id, userID int64) error {
	res, err := p.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = true WHERE id = $1 AND user_id = $2`,
		id, userID)
	return requireAffected("mark notification read", res, err)
}

func (p *Postgres) MarkAllNotificationsRead(ctx context.Context, userID int64) error {
	_, err := p.db.ExecContext(ctx, `
		UPDATE notifications SET is_read = true WHERE user_id = $1 AND is_read = false`,
		userID)
	if err != nil {
		return fmt.Errorf("mark all notifications read: %w", err)
	}
	return nil
}

func (p *Postgres) CountUnreadNotifications(ctx context.Context, userID int64) (int, error) {
	var n int
	err := p.db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM notifications WHERE user_id = $1 AND is_read = false`,
		userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count unread notifications: %w", err)
	}
	return n, nil
}

func (p *Postgres) CreateAnnouncement(ctx context.Context, a *models.Announcement) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO announcements (author_id, title, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		a.AuthorID, a.Title, a.Content,
	).Scan(&a.ID, &a.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert announcement: %w", err)
	}
	return nil
}

func (p *Postgres) AnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error) {
	var a models.Announcement
	err := p.db.QueryRowContext(ctx, `
		SELECT id, author_id, title, content, created_at
		FROM announcements WHERE id = $1`, id,
	).Scan(&a.ID, &a.AuthorID, &a.Title, &a.Content, &a.CreatedAt)
	if err != nil {
		return nil, notFound("announcement by id", err)
	}
	return &a, nil
}

func (p *Postgres) Announcements(ctx context.Context, limit, offset int) ([]models.Announcement, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, author_id, title, content, created_at
		FROM announcements
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("announcements: %w", err)
	}
	defer rows.Close()

	var announcements []models.Announcement
	for rows.Next() {
		var a models.Announcement
		if err := rows.Scan(&a.ID, &a.AuthorID, &a.Title, &a.Content, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement: %w", err)
		}
		announcements = append(announcements, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("announcements rows: %w", err)
	}
	return announcements, nil
}

func (p *Postgres) DeleteAnnouncementCascade(ctx context.Context, id int64) error {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("delete announcement begin: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM announcement_replies WHERE announcement_id = $1`, id); err != nil {
		return fmt.Errorf("delete announcement replies: %w", err)
	}

	res, err := tx.ExecContext(ctx, `DELETE FROM announcements WHERE id = $1`, id)
	if err := requireAffected("delete announcement", res, err); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("delete announcement commit: %w", err)
	}
	return nil
}

func (p *Postgres) CreateAnnouncementReply(ctx context.Context, r *models.AnnouncementReply) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO announcement_replies (announcement_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`,
		r.AnnouncementID, r.UserID, r.Content,
	).Scan(&r.ID, &r.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert announcement reply: %w", err)
	}
	return nil
}

func (p *Postgres) RepliesByAnnouncement(ctx context.Context, announcementID int64) ([]models.AnnouncementReply, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT id, announcement_id, user_id, content, created_at
		FROM announcement_replies
		WHERE announcement_id = $1
		ORDER BY created_at ASC`, announcementID)
	if err != nil {
		return nil, fmt.Errorf("announcement replies: %w", err)
	}
	defer rows.Close()

	var replies []models.AnnouncementReply
	for rows.Next() {
		var r models.AnnouncementReply
		if err := rows.Scan(&r.ID, &r.AnnouncementID, &r.UserID, &r.Content, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan announcement reply: %w", err)
		}
		replies = append(replies, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("announcement replies rows: %w", err)
	}
	return replies, nil
}

func (p *Postgres) UpsertProgress(ctx context.Context, pr *models.ReadingProgress) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO reading_progress (user_id, story_id, chapter_id, position, updated_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (user_id, story_id) DO UPDATE
		SET chapter_id = EXCLUDED.chapter_id,
		    position = EXCLUDED.position,
		    updated_at = NOW()
		RETURNING id, updated_at`,
		pr.UserID, pr.StoryID, pr.ChapterID, pr.Position,
	).Scan(&pr.ID, &pr.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

func (p *Postgres) ProgressFor(ctx context.Context, userID, storyID int64) (*models.ReadingProgress, error) {
	var pr models.ReadingProgress
	err := p.db.QueryRowContext(ctx, `
		SELECT id, user_id, story_id, chapter_id, position, updated_at
		FROM reading_progress WHERE user_id = $1 AND story_id = $2`,
		userID, storyID,
	).Scan(&pr.ID, &pr.UserID, &pr.StoryID, &pr.ChapterID, &pr.Position, &pr.UpdatedAt)
	if err != nil {
		return nil, notFound("progress", err)
	}
	return &pr, nil
}
