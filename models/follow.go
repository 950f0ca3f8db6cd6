package models

import "time"

// Follow is a directed user-to-user edge: follower watches followee.
type Follow struct {
	ID         int64     `json:"id"`
	FollowerID int64     `json:"follower_id"`
	FolloweeID int64     `json:"followee_id"`
	CreatedAt  time.Time `json:"created_at"`
}

type StoryFollow struct {
	ID         int64     `json:"id"`
	UserID     int64     `json:"user_id"`
	StoryID    int64     `json:"story_id"`
	IsFavorite bool      `json:"is_favorite"`
	CreatedAt  time.Time `json:"created_at"`
}
