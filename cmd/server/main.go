package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"

	"storyloom.com/storyloom/database"
	"storyloom.com/storyloom/engine"
	"storyloom.com/storyloom/routes"
	"storyloom.com/storyloom/services"
	"storyloom.com/storyloom/store"
)

func main() {
	godotenv.Load()

	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		log.Fatal("JWT_SECRET not set")
	}

	db, err := database.ConnectDB()
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal("Migration failed:", err)
	}

	st := store.NewPostgres(db)

	var pusher engine.Pusher
	if firebasePath := os.Getenv("FIREBASE_CREDENTIALS_PATH"); firebasePath != "" {
		fcm, err := services.NewFCMPusher(context.Background(), firebasePath, st)
		if err != nil {
			log.Printf("Firebase init failed, push disabled: %v", err)
		} else {
			pusher = fcm
		}
	} else {
		log.Println("FIREBASE_CREDENTIALS_PATH not set, push disabled")
	}

	eng := engine.New(st, pusher, nil)

	router := mux.NewRouter()
	router.Use(requestLogger)

	routes.CreateAuthRoutes(st, secret, router)
	routes.CreateUserRoutes(st, eng, secret, router)
	routes.CreateStoryRoutes(eng, secret, router)
	routes.CreateChapterRoutes(eng, secret, router)
	routes.CreateNotificationRoutes(eng, secret, router)
	routes.CreateAnnouncementRoutes(eng, secret, router)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Printf("storyloom server starting on :%s", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.Fatal("Server failed:", err)
	}
}

// requestLogger tags each request with an ID and logs method, path,
// and duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s (%s)", requestID[:8], r.Method, r.URL.Path, time.Since(start))
	})
}
