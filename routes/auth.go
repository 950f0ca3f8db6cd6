package routes

import (
	"github.com/gorilla/mux"
	"storyloom.com/storyloom/handlers"
	"storyloom.com/storyloom/store"
)

func CreateAuthRoutes(st store.Store, secret string, router *mux.Router) *mux.Router {
	router.HandleFunc("/auth/register", handlers.Register(st, secret)).Methods("POST")
	router.HandleFunc("/auth/login", handlers.Login(st, secret)).Methods("POST")

	private := router.PathPrefix("/devices").Subrouter()
	private.Use(handlers.RequireAuth(secret))
	private.HandleFunc("", handlers.RegisterDeviceToken(st)).Methods("POST")
	private.HandleFunc("/{token}", handlers.UnregisterDeviceToken(st)).Methods("DELETE")

	return router
}
