package engine

import (
	"context"

	"storyloom.com/storyloom/models"
)

// Notifications pages through the actor's notifications, newest first.
func (e *Engine) Notifications(ctx context.Context, actorID int64, limit, offset int) ([]models.Notification, error) {
	if actorID == 0 {
		return nil, ErrNotAuthorized
	}
	if offset < 0 {
		offset = 0
	}
	return e.st.NotificationsForUser(ctx, actorID, clampLimit(limit), offset)
}

// MarkNotificationRead flips one of the actor's notifications to read.
// Notifications are never mutated in any other way.
func (e *Engine) MarkNotificationRead(ctx context.Context, actorID, notificationID int64) error {
	if actorID == 0 {
		return ErrNotAuthorized
	}
	return e.st.MarkNotificationRead(ctx, notificationID, actorID)
}

func (e *Engine) MarkAllNotificationsRead(ctx context.Context, actorID int64) error {
	if actorID == 0 {
		return ErrNotAuthorized
	}
	return e.st.MarkAllNotificationsRead(ctx, actorID)
}

func (e *Engine) UnreadNotificationCount(ctx context.Context, actorID int64) (int, error) {
	if actorID == 0 {
		return 0, ErrNotAuthorized
	}
	return e.st.CountUnreadNotifications(ctx, actorID)
}
