package models

import "time"

type NotificationType string

const (
	NotificationNewStory          NotificationType = "new_story"
	NotificationNewChapter        NotificationType = "new_chapter"
	NotificationCommentReply      NotificationType = "comment_reply"
	NotificationAnnouncement      NotificationType = "announcement"
	NotificationAnnouncementReply NotificationType = "announcement_reply"
)

type Notification struct {
	ID        int64            `json:"id"`
	UserID    int64            `json:"user_id"`
	Type      NotificationType `json:"type"`
	Title     string           `json:"title"`
	Message   string           `json:"message"`
	IsRead    bool             `json:"is_read"`
	RelatedID int64            `json:"related_id,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}
