package routes

import (
	"github.com/gorilla/mux"
	"storyloom.com/storyloom/engine"
	"storyloom.com/storyloom/handlers"
)

func CreateNotificationRoutes(eng *engine.Engine, secret string, router *mux.Router) *mux.Router {
	private := router.PathPrefix("/notifications").Subrouter()
	private.Use(handlers.RequireAuth(secret))
	private.HandleFunc("", handlers.GetNotifications(eng)).Methods("GET")
	private.HandleFunc("/unread-count", handlers.UnreadNotificationCount(eng)).Methods("GET")
	private.HandleFunc("/read-all", handlers.MarkAllNotificationsRead(eng)).Methods("POST")
	private.HandleFunc("/{id}/read", handlers.MarkNotificationRead(eng)).Methods("POST")

	return router
}

func CreateAnnouncementRoutes(eng *engine.Engine, secret string, router *mux.Router) *mux.Router {
	public := router.PathPrefix("/announcements").Subrouter()
	public.Use(handlers.OptionalAuth(secret))
	public.HandleFunc("", handlers.GetAnnouncements(eng)).Methods("GET")
	public.HandleFunc("/{id}/replies", handlers.GetAnnouncementReplies(eng)).Methods("GET")

	private := router.PathPrefix("/announcements").Subrouter()
	private.Use(handlers.RequireAuth(secret))
	private.HandleFunc("", handlers.PostAnnouncement(eng)).Methods("POST")
	private.HandleFunc("/{id}", handlers.DeleteAnnouncement(eng)).Methods("DELETE")
	private.HandleFunc("/{id}/replies", handlers.ReplyToAnnouncement(eng)).Methods("POST")

	return router
}
