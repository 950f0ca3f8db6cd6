package handlers

import (
	"encoding/json"
	"net/http"

	"storyloom.com/storyloom/engine"
)

func CreateChapter(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storyID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid story ID", http.StatusBadRequest)
			return
		}

		var req struct {
			Title           string `json:"title"`
			Content         string `json:"content"`
			Publish         bool   `json:"publish"`
			IsDraft         *bool  `json:"is_draft"`
			PublishStoryToo bool   `json:"publish_story_too"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		publish := req.Publish
		if req.IsDraft != nil {
			publish = !*req.IsDraft
		}

		chapterID, err := eng.CreateChapter(r.Context(), actorID(r), storyID, engine.CreateChapterInput{
			Title:           req.Title,
			Content:         req.Content,
			Publish:         publish,
			PublishStoryToo: req.PublishStoryToo,
		})
		if err != nil {
			writeError(w, "CreateChapter", err)
			return
		}

		ch, err := eng.Chapter(r.Context(), actorID(r), chapterID)
		if err != nil {
			writeError(w, "CreateChapter", err)
			return
		}
		respondJSON(w, http.StatusCreated, ch)
	}
}

func GetChapter(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid chapter ID", http.StatusBadRequest)
			return
		}

		ch, err := eng.Chapter(r.Context(), actorID(r), id)
		if err != nil {
			writeError(w, "GetChapter", err)
			return
		}
		respondJSON(w, http.StatusOK, ch)
	}
}

func UpdateChapter(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid chapter ID", http.StatusBadRequest)
			return
		}

		var req struct {
			Title           *string `json:"title"`
			Content         *string `json:"content"`
			IsPublished     *bool   `json:"is_published"`
			IsDraft         *bool   `json:"is_draft"`
			PublishStoryToo bool    `json:"publish_story_too"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		chapterID, err := eng.UpdateChapter(r.Context(), actorID(r), id, engine.UpdateChapterInput{
			Title:           req.Title,
			Content:         req.Content,
			IsPublished:     req.IsPublished,
			IsDraft:         req.IsDraft,
			PublishStoryToo: req.PublishStoryToo,
		})
		if err != nil {
			writeError(w, "UpdateChapter", err)
			return
		}

		ch, err := eng.Chapter(r.Context(), actorID(r), chapterID)
		if err != nil {
			writeError(w, "UpdateChapter", err)
			return
		}
		respondJSON(w, http.StatusOK, ch)
	}
}

func DeleteChapter(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid chapter ID", http.StatusBadRequest)
			return
		}

		if err := eng.DeleteChapter(r.Context(), actorID(r), id); err != nil {
			writeError(w, "DeleteChapter", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Chapter deleted successfully"})
	}
}

func ChaptersOfStory(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storyID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid story ID", http.StatusBadRequest)
			return
		}

		chapters, err := eng.ChaptersOfStory(r.Context(), actorID(r), storyID)
		if err != nil {
			writeError(w, "ChaptersOfStory", err)
			return
		}
		respondJSON(w, http.StatusOK, chapters)
	}
}
