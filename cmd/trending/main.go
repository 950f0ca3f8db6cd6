package main

import (
	"log"

	"github.com/joho/godotenv"

	"storyloom.com/storyloom/database"
)

// Recomputes the trending score for every published story. Scheduled
// externally (cron); scores feed the browse ordering but are opaque to
// the rest of the system.
func main() {
	godotenv.Load()

	db, err := database.ConnectDB()
	if err != nil {
		log.Fatal("Trending: DB connection failed:", err)
	}
	defer db.Close()

	log.Println("Running trending score job")

	res, err := db.Exec(`
		UPDATE stories
		SET trending_score =
			(total_views * 1.0 + total_likes * 3.0 + total_comments * 5.0)
			/ POWER(GREATEST(EXTRACT(EPOCH FROM (NOW() - last_updated)) / 3600.0, 1.0), 1.5)
		WHERE is_published = true`)
	if err != nil {
		log.Fatal("Trending: score update failed:", err)
	}

	updated, _ := res.RowsAffected()
	log.Printf("Trending score job finished, %d stories updated", updated)
}
