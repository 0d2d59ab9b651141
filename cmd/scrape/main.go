package main

import (
	"context"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/cache"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/db"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/scraper"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/showtime"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/site"
)

const defaultCacheTTL = 6 * time.Hour

func main() {
	godotenv.Load()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "movie_showtimes.db"
	}

	csvPath := os.Getenv("CSV_PATH")
	if csvPath == "" {
		csvPath = "movie_showtimes.csv"
	}

	workers := scraper.DefaultWorkers
	if v := os.Getenv("FETCH_WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			log.Fatalf("Invalid FETCH_WORKERS value: %q", v)
		}
		workers = n
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	store, err := db.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()
	log.Printf("Database: %s", dbPath)

	var c *cache.Cache
	if cacheDir := os.Getenv("CACHE_DIR"); cacheDir != "" {
		c, err = cache.New(cacheDir, defaultCacheTTL)
		if err != nil {
			log.Fatalf("Failed to initialize cache: %v", err)
		}
		log.Printf("Cache directory: %s", cacheDir)
	}

	log.Printf("Fetching movie list...")
	movies, err := scraper.FetchMovieLinks(ctx)
	if err != nil {
		log.Fatalf("Failed to fetch movie list: %v", err)
	}
	log.Printf("Found %d movies", len(movies))

	log.Printf("Fetching showtimes with %d workers...", workers)
	raw, failures := scraper.FetchAllShowtimes(ctx, movies, workers, c)
	for _, f := range failures {
		log.Printf("ERROR: Fetch failed for %q (%s): %v", f.Movie.Title, f.Movie.Link, f.Err)
	}
	log.Printf("Fetched %d raw showtimes (%d movies failed)", len(raw), len(failures))

	records := showtime.Prepare(raw, time.Now())
	log.Printf("Prepared %d showtimes after in-batch dedup", len(records))

	stats, err := store.InsertShowtimes(ctx, records)
	if err != nil {
		log.Fatalf("Failed to store showtimes: %v", err)
	}
	log.Printf("Database updated: %d new records inserted, %d duplicates skipped", stats.Inserted, stats.Skipped)

	// The CSV snapshot carries every stored row, including the ones whose
	// timestamp never normalized, matching the standalone exporter.
	rows, err := store.AllShowtimes(ctx)
	if err != nil {
		log.Fatalf("Failed to query showtimes: %v", err)
	}
	if err := site.WriteCSV(csvPath, rows); err != nil {
		log.Fatalf("Failed to export CSV: %v", err)
	}
	log.Printf("Database exported to %s", csvPath)

	total, err := store.Count(ctx)
	if err != nil {
		log.Fatalf("Failed to count showtimes: %v", err)
	}
	log.Printf("Scrape complete. Total stored showtimes: %d", total)
}
