package models

import "time"

type Chapter struct {
	ID            int64     `json:"id"`
	StoryID       int64     `json:"story_id"`
	Title         string    `json:"title"`
	Content       string    `json:"content"`
	ChapterNumber int       `json:"chapter_number"`
	WordCount     int       `json:"word_count"`
	Views         int       `json:"views"`
	Likes         int       `json:"likes"`
	Comments      int       `json:"comments"`
	IsPublished   bool      `json:"is_published"`
	IsDraft       bool      `json:"is_draft"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type ChapterCounterDelta struct {
	Views    int
	Likes    int
	Comments int
}

func (d ChapterCounterDelta) IsZero() bool {
	return d.Views == 0 && d.Likes == 0 && d.Comments == 0
}
