package models

import "time"

type Announcement struct {
	ID        int64     `json:"id"`
	AuthorID  int64     `json:"author_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

type AnnouncementReply struct {
	ID             int64     `json:"id"`
	AnnouncementID int64     `json:"announcement_id"`
	UserID         int64     `json:"user_id"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}
