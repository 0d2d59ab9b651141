// Standalone CSV export of the showtime database, ordered by canonical
// timestamp.
//
// Usage: export-csv [output.csv]
package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/db"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/site"
)

func main() {
	godotenv.Load()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "movie_showtimes.db"
	}

	csvPath := "movie_showtimes_export.csv"
	if len(os.Args) > 1 {
		csvPath = os.Args[1]
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	store, err := db.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	records, err := store.AllShowtimes(ctx)
	if err != nil {
		log.Fatalf("Failed to query showtimes: %v", err)
	}

	if err := site.WriteCSV(csvPath, records); err != nil {
		log.Fatalf("Failed to export CSV: %v", err)
	}
	log.Printf("Exported %d showtimes to %s", len(records), csvPath)
}
