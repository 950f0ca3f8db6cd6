package database

import (
	"database/sql"
	"os"
	"strings"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// schemaColumns parses the CREATE TABLE statements in migrations and
// returns table name -> column set. Constraint lines (PRIMARY KEY,
// UNIQUE, FOREIGN KEY, CONSTRAINT) are not columns.
func schemaColumns(t *testing.T) map[string]map[string]bool {
	t.Helper()

	tables := make(map[string]map[string]bool)
	for _, stmt := range migrations {
		trimmed := strings.TrimSpace(stmt)
		const prefix = "CREATE TABLE IF NOT EXISTS "
		if !strings.HasPrefix(trimmed, prefix) {
			continue
		}
		rest := strings.TrimPrefix(trimmed, prefix)
		open := strings.Index(rest, "(")
		closing := strings.LastIndex(rest, ")")
		require.True(t, open > 0 && closing > open, "malformed CREATE TABLE: %s", trimmed)

		name := strings.TrimSpace(rest[:open])
		cols := make(map[string]bool)
		for _, line := range strings.Split(rest[open+1:closing], "\n") {
			line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ","))
			if line == "" {
				continue
			}
			first := strings.Fields(line)[0]
			switch strings.ToUpper(first) {
			case "PRIMARY", "UNIQUE", "FOREIGN", "CONSTRAINT":
				continue
			}
			cols[first] = true
		}
		tables[name] = cols
	}
	return tables
}

// TestMigrationsCoverStoreColumns checks that every column the Postgres
// store reads or writes exists in the migration DDL, so the schema and
// the queries cannot drift apart.
func TestMigrationsCoverStoreColumns(t *testing.T) {
	required := map[string][]string{
		"users":                {"id", "username", "display_name", "email", "password", "is_moderator", "created_at"},
		"stories":              {"id", "author_id", "title", "description", "genre", "tags", "is_completed", "is_published", "total_chapters", "total_views", "total_likes", "total_comments", "trending_score", "created_at", "last_updated"},
		"chapters":             {"id", "story_id", "title", "content", "chapter_number", "word_count", "views", "likes", "comments", "is_published", "is_draft", "created_at", "updated_at"},
		"comments":             {"id", "chapter_id", "user_id", "parent_comment_id", "content", "likes", "dislikes", "is_hidden", "created_at"},
		"chapter_likes":        {"user_id", "chapter_id", "created_at"},
		"chapter_views":        {"user_id", "chapter_id", "created_at"},
		"comment_reactions":    {"id", "user_id", "comment_id", "is_like", "created_at"},
		"user_follows":         {"id", "follower_id", "followee_id", "created_at"},
		"story_follows":        {"id", "user_id", "story_id", "is_favorite", "created_at"},
		"notifications":        {"id", "user_id", "type", "title", "message", "related_id", "is_read", "created_at"},
		"announcements":        {"id", "author_id", "title", "content", "created_at"},
		"announcement_replies": {"id", "announcement_id", "user_id", "content", "created_at"},
		"reading_progress":     {"id", "user_id", "story_id", "chapter_id", "position", "updated_at"},
		"device_tokens":        {"token", "user_id", "created_at"},
	}

	tables := schemaColumns(t)
	for table, cols := range required {
		got, ok := tables[table]
		require.True(t, ok, "migrations do not create table %s", table)
		for _, col := range cols {
			assert.True(t, got[col], "table %s is missing column %s", table, col)
		}
	}
	assert.Len(t, tables, len(required), "migrations create a table the store does not use")
}

// TestUpsertTargetsHaveUniqueConstraints checks that every table the
// store writes with ON CONFLICT has a matching unique constraint, since
// Postgres rejects the upsert otherwise.
func TestUpsertTargetsHaveUniqueConstraints(t *testing.T) {
	targets := map[string]string{
		"chapter_likes":     "PRIMARY KEY (user_id, chapter_id)",
		"chapter_views":     "PRIMARY KEY (user_id, chapter_id)",
		"comment_reactions": "UNIQUE (user_id, comment_id)",
		"user_follows":      "UNIQUE (follower_id, followee_id)",
		"story_follows":     "UNIQUE (user_id, story_id)",
		"reading_progress":  "UNIQUE (user_id, story_id)",
		"device_tokens":     "token TEXT PRIMARY KEY",
	}

	for table, constraint := range targets {
		found := false
		for _, stmt := range migrations {
			if strings.Contains(stmt, "CREATE TABLE IF NOT EXISTS "+table) && strings.Contains(stmt, constraint) {
				found = true
				break
			}
		}
		assert.True(t, found, "table %s lacks constraint %q", table, constraint)
	}
}

// TestMigrateAgainstPostgres runs the full migration set against a real
// database and does a round-trip insert. Skipped unless
// TEST_DATABASE_URL is set.
func TestMigrateAgainstPostgres(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db))
	// Migrations are IF NOT EXISTS, so a second run must be a no-op.
	require.NoError(t, Migrate(db))

	var id int64
	err = db.QueryRow(
		`INSERT INTO users (username, email, password) VALUES ($1, $2, $3) RETURNING id`,
		"migrate_check", "migrate@example.com", "x",
	).Scan(&id)
	require.NoError(t, err)

	var username string
	require.NoError(t, db.QueryRow(`SELECT username FROM users WHERE id = $1`, id).Scan(&username))
	assert.Equal(t, "migrate_check", username)

	_, err = db.Exec(`DELETE FROM users WHERE id = $1`, id)
	require.NoError(t, err)
}
