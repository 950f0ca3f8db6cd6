package engine

import (
	"context"
	"strings"

	"storyloom.com/storyloom/models"
)

// PostAnnouncement publishes an announcement and fans it out to the
// author's followers.
func (e *Engine) PostAnnouncement(ctx context.Context, actorID int64, title, content string) (*models.Announcement, error) {
	if actorID == 0 {
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(title) == "" || strings.TrimSpace(content) == "" {
		return nil, ErrInvalidArgument
	}

	a := &models.Announcement{AuthorID: actorID, Title: title, Content: content}
	if err := e.st.CreateAnnouncement(ctx, a); err != nil {
		return nil, err
	}
	e.notifier.Announcement(ctx, a)
	return a, nil
}

// ReplyToAnnouncement posts a reply and notifies the announcement's
// author, unless the author replies to themselves.
func (e *Engine) ReplyToAnnouncement(ctx context.Context, actorID, announcementID int64, content string) (*models.AnnouncementReply, error) {
	if actorID == 0 {
		return nil, ErrNotAuthorized
	}
	if strings.TrimSpace(content) == "" {
		return nil, ErrInvalidArgument
	}
	a, err := e.st.AnnouncementByID(ctx, announcementID)
	if err != nil {
		return nil, err
	}

	r := &models.AnnouncementReply{AnnouncementID: announcementID, UserID: actorID, Content: content}
	if err := e.st.CreateAnnouncementReply(ctx, r); err != nil {
		return nil, err
	}
	e.notifier.AnnouncementReply(ctx, a, r)
	return r, nil
}

func (e *Engine) DeleteAnnouncement(ctx context.Context, actorID, announcementID int64) error {
	a, err := e.st.AnnouncementByID(ctx, announcementID)
	if err != nil {
		return err
	}
	if a.AuthorID != actorID && !e.isModerator(ctx, actorID) {
		return ErrNotAuthorized
	}
	return e.st.DeleteAnnouncementCascade(ctx, announcementID)
}

func (e *Engine) Announcements(ctx context.Context, limit, offset int) ([]models.Announcement, error) {
	if offset < 0 {
		offset = 0
	}
	return e.st.Announcements(ctx, clampLimit(limit), offset)
}

func (e *Engine) AnnouncementReplies(ctx context.Context, announcementID int64) ([]models.AnnouncementReply, error) {
	if _, err := e.st.AnnouncementByID(ctx, announcementID); err != nil {
		return nil, err
	}
	return e.st.RepliesByAnnouncement(ctx, announcementID)
}
