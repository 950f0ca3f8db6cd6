package models

import "time"

type Comment struct {
	ID              int64     `json:"id"`
	ChapterID       int64     `json:"chapter_id"`
	UserID          int64     `json:"user_id"`
	Content         string    `json:"content"`
	Likes           int       `json:"likes"`
	Dislikes        int       `json:"dislikes"`
	IsHidden        bool      `json:"is_hidden"`
	ParentCommentID *int64    `json:"parent_comment_id,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
}

// CommentReaction is the single like-or-dislike a user holds on a
// comment. Uniqueness of the (user, comment) pair is enforced by the
// store.
type CommentReaction struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	CommentID int64     `json:"comment_id"`
	IsLike    bool      `json:"is_like"`
	CreatedAt time.Time `json:"created_at"`
}
