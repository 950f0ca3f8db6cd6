package handlers

import (
	"encoding/json"
	"net/http"

	"storyloom.com/storyloom/engine"
)

func SaveProgress(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storyID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid story ID", http.StatusBadRequest)
			return
		}

		var req struct {
			ChapterID int64   `json:"chapter_id"`
			Position  float64 `json:"position"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		p, err := eng.SaveProgress(r.Context(), actorID(r), storyID, req.ChapterID, req.Position)
		if err != nil {
			writeError(w, "SaveProgress", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}

func GetProgress(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storyID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid story ID", http.StatusBadRequest)
			return
		}

		p, err := eng.Progress(r.Context(), actorID(r), storyID)
		if err != nil {
			writeError(w, "GetProgress", err)
			return
		}
		respondJSON(w, http.StatusOK, p)
	}
}
