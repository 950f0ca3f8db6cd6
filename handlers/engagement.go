package handlers

import (
	"net/http"

	"storyloom.com/storyloom/engine"
)

func ToggleChapterLike(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid chapter ID", http.StatusBadRequest)
			return
		}

		liked, err := eng.ToggleChapterLike(r.Context(), actorID(r), id)
		if err != nil {
			writeError(w, "ToggleChapterLike", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"liked": liked})
	}
}

// RecordChapterView accepts anonymous requests; authenticated readers
// are counted once per chapter.
func RecordChapterView(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid chapter ID", http.StatusBadRequest)
			return
		}

		if err := eng.IncrementChapterViews(r.Context(), actorID(r), id); err != nil {
			writeError(w, "RecordChapterView", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "View recorded"})
	}
}

func ChapterLikeStatus(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid chapter ID", http.StatusBadRequest)
			return
		}

		liked, err := eng.HasUserLikedChapter(r.Context(), actorID(r), id)
		if err != nil {
			writeError(w, "ChapterLikeStatus", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"liked": liked})
	}
}
