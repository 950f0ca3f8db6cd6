package routes

import (
	"github.com/gorilla/mux"
	"storyloom.com/storyloom/engine"
	"storyloom.com/storyloom/handlers"
	"storyloom.com/storyloom/store"
)

func CreateUserRoutes(st store.Store, eng *engine.Engine, secret string, router *mux.Router) *mux.Router {
	me := router.PathPrefix("/users/me").Subrouter()
	me.Use(handlers.RequireAuth(secret))
	me.HandleFunc("", handlers.GetCurrentUser(st)).Methods("GET")

	public := router.PathPrefix("/users").Subrouter()
	public.Use(handlers.OptionalAuth(secret))
	public.HandleFunc("/{id}", handlers.GetUserProfile(st, eng)).Methods("GET")
	public.HandleFunc("/{id}/stories", handlers.StoriesByAuthor(eng)).Methods("GET")
	public.HandleFunc("/{id}/followers", handlers.GetFollowers(eng)).Methods("GET")
	public.HandleFunc("/{id}/following", handlers.GetFollowing(eng)).Methods("GET")
	public.HandleFunc("/{id}/follow", handlers.UserFollowStatus(eng)).Methods("GET")

	private := router.PathPrefix("/users").Subrouter()
	private.Use(handlers.RequireAuth(secret))
	private.HandleFunc("/{id}/follow", handlers.ToggleUserFollow(eng)).Methods("POST")

	return router
}
