package handlers

import (
	"encoding/json"
	"net/http"

	"storyloom.com/storyloom/engine"
)

func PostAnnouncement(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Title   string `json:"title"`
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		a, err := eng.PostAnnouncement(r.Context(), actorID(r), req.Title, req.Content)
		if err != nil {
			writeError(w, "PostAnnouncement", err)
			return
		}
		respondJSON(w, http.StatusCreated, a)
	}
}

func GetAnnouncements(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		announcements, err := eng.Announcements(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
		if err != nil {
			writeError(w, "GetAnnouncements", err)
			return
		}
		respondJSON(w, http.StatusOK, announcements)
	}
}

func ReplyToAnnouncement(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid announcement ID", http.StatusBadRequest)
			return
		}

		var req struct {
			Content string `json:"content"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		reply, err := eng.ReplyToAnnouncement(r.Context(), actorID(r), id, req.Content)
		if err != nil {
			writeError(w, "ReplyToAnnouncement", err)
			return
		}
		respondJSON(w, http.StatusCreated, reply)
	}
}

func GetAnnouncementReplies(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid announcement ID", http.StatusBadRequest)
			return
		}

		replies, err := eng.AnnouncementReplies(r.Context(), id)
		if err != nil {
			writeError(w, "GetAnnouncementReplies", err)
			return
		}
		respondJSON(w, http.StatusOK, replies)
	}
}

func DeleteAnnouncement(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid announcement ID", http.StatusBadRequest)
			return
		}

		if err := eng.DeleteAnnouncement(r.Context(), actorID(r), id); err != nil {
			writeError(w, "DeleteAnnouncement", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Announcement deleted successfully"})
	}
}
