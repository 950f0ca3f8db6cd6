package routes

import (
	"github.com/gorilla/mux"
	"storyloom.com/storyloom/engine"
	"storyloom.com/storyloom/handlers"
)

func CreateStoryRoutes(eng *engine.Engine, secret string, router *mux.Router) *mux.Router {
	public := router.PathPrefix("/stories").Subrouter()
	public.Use(handlers.OptionalAuth(secret))
	public.HandleFunc("", handlers.BrowseStories(eng)).Methods("GET")
	public.HandleFunc("/{id}", handlers.GetStory(eng)).Methods("GET")
	public.HandleFunc("/{id}/chapters", handlers.ChaptersOfStory(eng)).Methods("GET")
	public.HandleFunc("/{id}/follow", handlers.StoryFollowStatus(eng)).Methods("GET")

	private := router.PathPrefix("/stories").Subrouter()
	private.Use(handlers.RequireAuth(secret))
	private.HandleFunc("", handlers.CreateStory(eng)).Methods("POST")
	private.HandleFunc("/{id}", handlers.UpdateStory(eng)).Methods("PUT")
	private.HandleFunc("/{id}", handlers.DeleteStory(eng)).Methods("DELETE")
	private.HandleFunc("/{id}/chapters", handlers.CreateChapter(eng)).Methods("POST")
	private.HandleFunc("/{id}/follow", handlers.ToggleStoryFollow(eng)).Methods("POST")
	private.HandleFunc("/{id}/progress", handlers.SaveProgress(eng)).Methods("PUT")
	private.HandleFunc("/{id}/progress", handlers.GetProgress(eng)).Methods("GET")

	return router
}
