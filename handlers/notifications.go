package handlers

import (
	"net/http"

	"storyloom.com/storyloom/engine"
)

func GetNotifications(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		notifications, err := eng.Notifications(r.Context(), actorID(r), queryInt(r, "limit"), queryInt(r, "offset"))
		if err != nil {
			writeError(w, "GetNotifications", err)
			return
		}
		respondJSON(w, http.StatusOK, notifications)
	}
}

func MarkNotificationRead(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid notification ID", http.StatusBadRequest)
			return
		}

		if err := eng.MarkNotificationRead(r.Context(), actorID(r), id); err != nil {
			writeError(w, "MarkNotificationRead", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Notification marked as read"})
	}
}

func MarkAllNotificationsRead(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := eng.MarkAllNotificationsRead(r.Context(), actorID(r)); err != nil {
			writeError(w, "MarkAllNotificationsRead", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "All notifications marked as read"})
	}
}

func UnreadNotificationCount(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count, err := eng.UnreadNotificationCount(r.Context(), actorID(r))
		if err != nil {
			writeError(w, "UnreadNotificationCount", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]int{"unread_count": count})
	}
}
