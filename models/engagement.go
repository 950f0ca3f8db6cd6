package models

import "time"

type ChapterLike struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ChapterID int64     `json:"chapter_id"`
	CreatedAt time.Time `json:"created_at"`
}

// ChapterView records that an authenticated reader's view of a chapter
// has already been counted. Rows are only ever removed when the chapter
// itself is deleted.
type ChapterView struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ChapterID int64     `json:"chapter_id"`
	CreatedAt time.Time `json:"created_at"`
}
