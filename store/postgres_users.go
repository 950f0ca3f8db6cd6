package store

import (
	"context"
	"fmt"

	"storyloom.com/storyloom/models"
)

func (p *Postgres) CreateUser(ctx context.Context, u *models.User) error {
	err := p.db.QueryRowContext(ctx, `
		INSERT INTO users (username, display_name, email, password, is_moderator)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`,
		u.Username, u.DisplayName, u.Email, u.Password, u.IsModerator,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (p *Postgres) UserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := p.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, email, password, is_moderator, created_at
		FROM users WHERE id = $1`, id,
	).Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.Password,
		&u.IsModerator, &u.CreatedAt)
	if err != nil {
		return nil, notFound("user by id", err)
	}
	return &u, nil
}

func (p *Postgres) UserByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	err := p.db.QueryRowContext(ctx, `
		SELECT id, username, display_name, email, password, is_moderator, created_at
		FROM users WHERE username = $1`, username,
	).Scan(&u.ID, &u.Username, &u.DisplayName, &u.Email, &u.Password,
		&u.IsModerator, &u.CreatedAt)
	if err != nil {
		return nil, notFound("user by username", err)
	}
	return &u, nil
}

func (p *Postgres) RegisterDeviceToken(ctx context.Context, userID int64, token string) error {
	_, err := p.db.ExecContext(ctx, `
		INSERT INTO device_tokens (user_id, token)
		VALUES ($1, $2)
		ON CONFLICT (token) DO UPDATE SET user_id = EXCLUDED.user_id`,
		userID, token)
	if err != nil {
		return fmt.Errorf("register device token: %w", err)
	}
	return nil
}

func (p *Postgres) DeviceTokensFor(ctx context.Context, userID int64) ([]string, error) {
	rows, err := p.db.QueryContext(ctx, `
		SELECT token FROM device_tokens
		WHERE user_id = $1 AND token != ''`, userID)
	if err != nil {
		return nil, fmt.Errorf("device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []string
	for rows.Next() {
		var t string
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("scan device token: %w", err)
		}
		tokens = append(tokens, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("device tokens rows: %w", err)
	}
	return tokens, nil
}

func (p *Postgres) DeleteDeviceToken(ctx context.Context, token string) error {
	_, err := p.db.ExecContext(ctx, `DELETE FROM device_tokens WHERE token = $1`, token)
	if err != nil {
		return fmt.Errorf("delete device token: %w", err)
	}
	return nil
}
