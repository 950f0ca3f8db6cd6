package handlers

import (
	"errors"
	"log"
	"net/http"

	"storyloom.com/storyloom/engine"
	"storyloom.com/storyloom/models"
	"storyloom.com/storyloom/store"
)

func GetUserProfile(st store.Store, eng *engine.Engine) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r, "id")
		if err != nil {
			http.Error(w, "Invalid user ID", http.StatusBadRequest)
			return
		}

		u, err := st.UserByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "User not found", http.StatusNotFound)
			} else {
				http.Error(w, "Database query failed", http.StatusInternalServerError)
				log.Println(err)
			}
			return
		}
		u.Password = ""

		type profile struct {
			models.User
			FollowersCount int   `json:"followers_count"`
			FollowingCount int   `json:"following_count"`
			IsFollowing    *bool `json:"is_following,omitempty"`
		}
		p := profile{User: *u}

		if ids, err := st.UserFollowerIDs(r.Context(), id); err == nil {
			p.FollowersCount = len(ids)
		}
		if ids, err := st.UserFollowingIDs(r.Context(), id); err == nil {
			p.FollowingCount = len(ids)
		}

		if viewer := actorID(r); viewer != 0 && viewer != id {
			if following, err := eng.IsFollowingUser(r.Context(), viewer, id); err == nil {
				p.IsFollowing = &following
			}
		}

		respondJSON(w, http.StatusOK, p)
	}
}

func GetCurrentUser(st store.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := st.UserByID(r.Context(), actorID(r))
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				http.Error(w, "User not found", http.StatusNotFound)
			} else {
				http.Error(w, "Database query failed", http.StatusInternalServerError)
				log.Println(err)
			}
			return
		}
		u.Password = ""
		respondJSON(w, http.StatusOK, u)
	}
}
