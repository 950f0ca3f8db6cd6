package handlers

import (
	"encoding/json"
	"net/http"

	"storyloom.com/storyloom/engine"
)

func CreateComment(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chapterID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid chapter ID", http.StatusBadRequest)
			return
		}

		var req struct {
			Content         string `json:"content"`
			ParentCommentID *int64 `json:"parent_comment_id"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		comment, err := eng.CreateComment(r.Context(), actorID(r), chapterID, req.Content, req.ParentCommentID)
		if err != nil {
			writeError(w, "CreateComment", err)
			return
		}
		respondJSON(w, http.StatusCreated, comment)
	}
}

func GetComments(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		chapterID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid chapter ID", http.StatusBadRequest)
			return
		}

		comments, err := eng.CommentsOnChapter(r.Context(), actorID(r), chapterID)
		if err != nil {
			writeError(w, "GetComments", err)
			return
		}
		respondJSON(w, http.StatusOK, comments)
	}
}

func DeleteComment(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid comment ID", http.StatusBadRequest)
			return
		}

		if err := eng.DeleteComment(r.Context(), actorID(r), id); err != nil {
			writeError(w, "DeleteComment", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Comment deleted successfully"})
	}
}

func ReactToComment(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid comment ID", http.StatusBadRequest)
			return
		}

		var req struct {
			IsLike bool `json:"is_like"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		if err := eng.ReactToComment(r.Context(), actorID(r), id, req.IsLike); err != nil {
			writeError(w, "ReactToComment", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Reaction recorded"})
	}
}
