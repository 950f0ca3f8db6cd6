package models

import "time"

// ReadingProgress keeps one row per (user, story): the chapter the
// reader last had open and how far into it they were.
type ReadingProgress struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	StoryID   int64     `json:"story_id"`
	ChapterID int64     `json:"chapter_id"`
	Position  float64   `json:"position"`
	UpdatedAt time.Time `json:"updated_at"`
}
