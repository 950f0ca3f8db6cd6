package models

import "time"

type Story struct {
	ID            int64     `json:"id"`
	AuthorID      int64     `json:"author_id"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Genre         string    `json:"genre"`
	Tags          []string  `json:"tags"`
	IsCompleted   bool      `json:"is_completed"`
	IsPublished   bool      `json:"is_published"`
	TotalChapters int       `json:"total_chapters"`
	TotalViews    int       `json:"total_views"`
	TotalLikes    int       `json:"total_likes"`
	TotalComments int       `json:"total_comments"`
	TrendingScore float64   `json:"trending_score"`
	CreatedAt     time.Time `json:"created_at"`
	LastUpdated   time.Time `json:"last_updated"`
}

// StoryCounterDelta names the denormalized story aggregates a single
// operation may move. Every field is applied clamped at zero.
type StoryCounterDelta struct {
	Chapters int
	Views    int
	Likes    int
	Comments int
}

func (d StoryCounterDelta) IsZero() bool {
	return d.Chapters == 0 && d.Views == 0 && d.Likes == 0 && d.Comments == 0
}
