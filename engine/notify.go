package engine

import (
	"context"
	"fmt"
	"log"
	"strconv"
	"unicode/utf8"

	"storyloom.com/storyloom/models"
	"storyloom.com/storyloom/store"
)

// Pusher delivers a best-effort device push for one recipient. Push
// must never block on the caller's success path; failures are the
// pusher's to log.
type Pusher interface {
	Push(ctx context.Context, userID int64, title, message string, data map[string]string)
}

// Notifier resolves the audience of a triggering event and writes one
// notification row per recipient. Fan-out is best-effort: a failed
// insert is logged and skipped, and never surfaces to the state
// transition that triggered it. Partial delivery is accepted.
type Notifier struct {
	st     store.Store
	pusher Pusher
	log    *log.Logger
}

func newNotifier(st store.Store, pusher Pusher, logger *log.Logger) *Notifier {
	return &Notifier{st: st, pusher: pusher, log: logger}
}

// NewStory announces a freshly published story to the author's personal
// followers.
func (n *Notifier) NewStory(ctx context.Context, story *models.Story) {
	recipients, err := n.st.UserFollowerIDs(ctx, story.AuthorID)
	if err != nil {
		n.log.Printf("fanout new_story %d: resolve followers: %v", story.ID, err)
		return
	}
	author := n.displayName(ctx, story.AuthorID)
	n.fanOut(ctx, recipients, models.Notification{
		Type:      models.NotificationNewStory,
		Title:     fmt.Sprintf("%s published a new story", author),
		Message:   story.Title,
		RelatedID: story.ID,
	})
}

// NewChapter announces a newly published chapter to the story's
// followers. An author who follows their own story is notified too.
func (n *Notifier) NewChapter(ctx context.Context, story *models.Story, ch *models.Chapter) {
	recipients, err := n.st.StoryFollowerIDs(ctx, story.ID)
	if err != nil {
		n.log.Printf("fanout new_chapter %d: resolve followers: %v", ch.ID, err)
		return
	}
	n.fanOut(ctx, recipients, models.Notification{
		Type:      models.NotificationNewChapter,
		Title:     fmt.Sprintf("New chapter of %s", story.Title),
		Message:   fmt.Sprintf("Chapter %d: %s", ch.ChapterNumber, ch.Title),
		RelatedID: ch.ID,
	})
}

// CommentReply notifies the parent comment's author, unless they are
// replying to themselves.
func (n *Notifier) CommentReply(ctx context.Context, parent, reply *models.Comment) {
	if parent.UserID == reply.UserID {
		return
	}
	replier := n.displayName(ctx, reply.UserID)
	n.fanOut(ctx, []int64{parent.UserID}, models.Notification{
		Type:      models.NotificationCommentReply,
		Title:     fmt.Sprintf("%s replied to your comment", replier),
		Message:   truncate(reply.Content, 100),
		RelatedID: reply.ID,
	})
}

// Announcement fans an announcement out to the author's followers.
func (n *Notifier) Announcement(ctx context.Context, a *models.Announcement) {
	recipients, err := n.st.UserFollowerIDs(ctx, a.AuthorID)
	if err != nil {
		n.log.Printf("fanout announcement %d: resolve followers: %v", a.ID, err)
		return
	}
	author := n.displayName(ctx, a.AuthorID)
	n.fanOut(ctx, recipients, models.Notification{
		Type:      models.NotificationAnnouncement,
		Title:     fmt.Sprintf("%s posted an announcement", author),
		Message:   a.Title,
		RelatedID: a.ID,
	})
}

// AnnouncementReply notifies the announcement's author, skipping
// self-replies.
func (n *Notifier) AnnouncementReply(ctx context.Context, a *models.Announcement, r *models.AnnouncementReply) {
	if a.AuthorID == r.UserID {
		return
	}
	replier := n.displayName(ctx, r.UserID)
	n.fanOut(ctx, []int64{a.AuthorID}, models.Notification{
		Type:      models.NotificationAnnouncementReply,
		Title:     fmt.Sprintf("%s replied to your announcement", replier),
		Message:   truncate(r.Content, 100),
		RelatedID: a.ID,
	})
}

// fanOut writes one row per recipient. Inserts are independent: no
// ordering between recipients, no atomicity across the batch.
func (n *Notifier) fanOut(ctx context.Context, recipients []int64, template models.Notification) {
	data := map[string]string{
		"type":       string(template.Type),
		"related_id": strconv.FormatInt(template.RelatedID, 10),
	}
	for _, recipient := range recipients {
		row := template
		row.UserID = recipient
		if err := n.st.InsertNotification(ctx, &row); err != nil {
			n.log.Printf("fanout %s to user %d: %v", template.Type, recipient, err)
			continue
		}
		if n.pusher != nil {
			n.pusher.Push(ctx, recipient, template.Title, template.Message, data)
		}
	}
}

func (n *Notifier) displayName(ctx context.Context, userID int64) string {
	u, err := n.st.UserByID(ctx, userID)
	if err != nil {
		n.log.Printf("display name for user %d: %v", userID, err)
		return "Someone"
	}
	if u.DisplayName != "" {
		return u.DisplayName
	}
	return u.Username
}

// truncate shortens s to at most max runes, never splitting a
// multibyte character.
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max-3]) + "..."
}
