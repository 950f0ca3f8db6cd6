package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"storyloom.com/storyloom/engine"
	"storyloom.com/storyloom/store"
)

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		json.NewEncoder(w).Encode(body)
	}
}

// writeError maps the engine's error taxonomy onto HTTP statuses. The
// invalid-transition case carries a user-facing message rather than a
// generic failure.
func writeError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		http.Error(w, "Not found", http.StatusNotFound)
	case errors.Is(err, engine.ErrNotAuthorized):
		http.Error(w, "You are not allowed to do that", http.StatusForbidden)
	case errors.Is(err, engine.ErrInvalidArgument):
		http.Error(w, "Invalid request", http.StatusBadRequest)
	case errors.Is(err, engine.ErrInvalidStateTransition):
		http.Error(w, "Publish the story before publishing this chapter", http.StatusConflict)
	default:
		http.Error(w, "Internal error", http.StatusInternalServerError)
		log.Printf("%s error: %v", op, err)
	}
}

func pathID(r *http.Request, name string) (int64, error) {
	return strconv.ParseInt(mux.Vars(r)[name], 10, 64)
}

func muxVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

func queryInt(r *http.Request, name string) int {
	v, _ := strconv.Atoi(r.URL.Query().Get(name))
	return v
}
