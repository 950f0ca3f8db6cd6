package handlers

import (
	"encoding/json"
	"net/http"

	"storyloom.com/storyloom/engine"
)

func ToggleUserFollow(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}

		following, err := eng.ToggleUserFollow(r.Context(), actorID(r), targetID)
		if err != nil {
			writeError(w, "ToggleUserFollow", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"following": following})
	}
}

func ToggleStoryFollow(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storyID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid story ID", http.StatusBadRequest)
			return
		}

		var req struct {
			IsFavorite bool `json:"is_favorite"`
		}
		if r.Body != nil {
			json.NewDecoder(r.Body).Decode(&req)
		}

		following, err := eng.ToggleStoryFollow(r.Context(), actorID(r), storyID, req.IsFavorite)
		if err != nil {
			writeError(w, "ToggleStoryFollow", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"following": following})
	}
}

func UserFollowStatus(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		targetID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}

		following, err := eng.IsFollowingUser(r.Context(), actorID(r), targetID)
		if err != nil {
			writeError(w, "UserFollowStatus", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"following": following})
	}
}

func StoryFollowStatus(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		storyID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid story ID", http.StatusBadRequest)
			return
		}

		following, err := eng.IsFollowingStory(r.Context(), actorID(r), storyID)
		if err != nil {
			writeError(w, "StoryFollowStatus", err)
			return
		}
		respondJSON(w, http.StatusOK, map[string]bool{"following": following})
	}
}

func GetFollowers(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}

		users, err := eng.Followers(r.Context(), userID)
		if err != nil {
			writeError(w, "GetFollowers", err)
			return
		}
		respondJSON(w, http.StatusOK, users)
	}
}

func GetFollowing(eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}

		users, err := eng.Following(r.Context(), userID)
		if err != nil {
			writeError(w, "GetFollowing", err)
			return
		}
		respondJSON(w, http.StatusOK, users)
	}
}
