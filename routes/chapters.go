package routes

import (
	"github.com/gorilla/mux"
	"storyloom.com/storyloom/engine"
	"storyloom.com/storyloom/handlers"
)

func CreateChapterRoutes(eng *engine.Engine, secret string, router *mux.Router) *mux.Router {
	public := router.PathPrefix("/chapters").Subrouter()
	public.Use(handlers.OptionalAuth(secret))
	public.HandleFunc("/{id}", handlers.GetChapter(eng)).Methods("GET")
	public.HandleFunc("/{id}/comments", handlers.GetComments(eng)).Methods("GET")
	public.HandleFunc("/{id}/like", handlers.ChapterLikeStatus(eng)).Methods("GET")
	// Views accept anonymous readers.
	public.HandleFunc("/{id}/view", handlers.RecordChapterView(eng)).Methods("POST")

	private := router.PathPrefix("/chapters").Subrouter()
	private.Use(handlers.RequireAuth(secret))
	private.HandleFunc("/{id}", handlers.UpdateChapter(eng)).Methods("PUT")
	private.HandleFunc("/{id}", handlers.DeleteChapter(eng)).Methods("DELETE")
	private.HandleFunc("/{id}/like", handlers.ToggleChapterLike(eng)).Methods("POST")
	private.HandleFunc("/{id}/comments", handlers.CreateComment(eng)).Methods("POST")

	comments := router.PathPrefix("/comments").Subrouter()
	comments.Use(handlers.RequireAuth(secret))
	comments.HandleFunc("/{id}", handlers.DeleteComment(eng)).Methods("DELETE")
	comments.HandleFunc("/{id}/react", handlers.ReactToComment(eng)).Methods("POST")

	return router
}
