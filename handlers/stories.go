package handlers

import (
	"encoding/json"
	"net/http"

	"storyloom.com/storyloom/engine"
)

func CreateStory(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in engine.StoryInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		story, err := eng.CreateStory(r.Context(), actorID(r), in)
		if err != nil {
			writeError(w, "CreateStory", err)
			return
		}
		respondJSON(w, http.StatusCreated, story)
	}
}

func GetStory(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid story ID", http.StatusBadRequest)
			return
		}

		story, err := eng.Story(r.Context(), actorID(r), id)
		if err != nil {
			writeError(w, "GetStory", err)
			return
		}
		respondJSON(w, http.StatusOK, story)
	}
}

func UpdateStory(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid story ID", http.StatusBadRequest)
			return
		}

		var in engine.StoryInput
		if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
			http.Error(w, "Invalid request body", http.StatusBadRequest)
			return
		}

		story, err := eng.UpdateStory(r.Context(), actorID(r), id, in)
		if err != nil {
			writeError(w, "UpdateStory", err)
			return
		}
		respondJSON(w, http.StatusOK, story)
	}
}

func DeleteStory(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid story ID", http.StatusBadRequest)
			return
		}

		if err := eng.DeleteStory(r.Context(), actorID(r), id); err != nil {
			writeError(w, "DeleteStory", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]string{"message": "Story deleted successfully"})
	}
}

// BrowseStories lists published stories; with ?author= it lists that
// author's stories instead (drafts included for the author themselves).
func BrowseStories(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if author := queryInt(r, "author"); author != 0 {
			stories, err := eng.StoriesByAuthor(r.Context(), actorID(r), int64(author))
			if err != nil {
				writeError(w, "BrowseStories", err)
				return
			}
			respondJSON(w, http.StatusOK, stories)
			return
		}

		stories, err := eng.BrowseStories(r.Context(), queryInt(r, "limit"), queryInt(r, "offset"))
		if err != nil {
			writeError(w, "BrowseStories", err)
			return
		}
		respondJSON(w, http.StatusOK, stories)
	}
}

func StoriesByAuthor(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		authorID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}

		stories, err := eng.StoriesByAuthor(r.Context(), actorID(r), authorID)
		if err != nil {
			writeError(w, "StoriesByAuthor", err)
			return
		}
		respondJSON(w, http.StatusOK, stories)
	}
}
