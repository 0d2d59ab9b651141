package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/db"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/publish"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/showtime"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/site"
)

const webRoot = "/var/www/html"

func main() {
	godotenv.Load()

	outputFile := flag.String("o", "", "output HTML file path")
	noBackup := flag.Bool("no-backup", false, "skip backing up an existing output file")
	flag.Parse()

	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = "movie_showtimes.db"
	}
	if _, err := os.Stat(dbPath); err != nil {
		log.Fatalf("Database file %q not found; run the scraper first", dbPath)
	}

	htmlPath := pickOutputPath(*outputFile)
	outputDir := filepath.Dir(htmlPath)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	store, err := db.New(dbPath)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer store.Close()

	records, err := store.SortedShowtimes(ctx)
	if err != nil {
		log.Fatalf("Failed to query showtimes: %v", err)
	}
	if len(records) == 0 {
		log.Fatalf("No showtimes with a canonical timestamp in %s", dbPath)
	}
	log.Printf("Found %d showtimes in database", len(records))

	now := time.Now()
	schedule := showtime.GroupAndSort(records, now)
	log.Printf("Schedule: %d upcoming days, %d movies", len(schedule.Days), len(schedule.Movies))

	html, err := site.RenderHTML(schedule, now)
	if err != nil {
		log.Fatalf("Failed to render page: %v", err)
	}
	if err := site.WriteHTML(htmlPath, html, !*noBackup); err != nil {
		log.Fatalf("Failed to write page: %v", err)
	}
	log.Printf("HTML saved to %s", htmlPath)

	feed, err := site.EncodeFeed(site.BuildFeed(records, now))
	if err != nil {
		log.Fatalf("Failed to encode JSON feed: %v", err)
	}

	local, err := publish.NewLocal(outputDir)
	if err != nil {
		log.Fatalf("Failed to initialize output directory: %v", err)
	}
	if err := local.Put(ctx, "showtimes.json", feed, "application/json"); err != nil {
		log.Fatalf("Failed to write JSON feed: %v", err)
	}
	log.Printf("JSON feed saved to %s", filepath.Join(outputDir, "showtimes.json"))

	if bucket := os.Getenv("GCS_BUCKET"); bucket != "" {
		gcs, err := publish.NewGCS(ctx, bucket)
		if err != nil {
			log.Fatalf("Failed to initialize GCS publisher: %v", err)
		}
		defer gcs.Close()

		if err := gcs.Put(ctx, "index.html", html, "text/html; charset=utf-8"); err != nil {
			log.Fatalf("Failed to publish page: %v", err)
		}
		if err := gcs.Put(ctx, "showtimes.json", feed, "application/json"); err != nil {
			log.Fatalf("Failed to publish JSON feed: %v", err)
		}
		log.Printf("Published site to GCS bucket %s", bucket)
	}

	log.Printf("Website successfully generated")
}

// pickOutputPath resolves the HTML destination: an explicit -o wins, then
// the web root when writable, then the current directory.
func pickOutputPath(explicit string) string {
	if explicit != "" {
		return explicit
	}
	if info, err := os.Stat(webRoot); err == nil && info.IsDir() {
		if f, err := os.CreateTemp(webRoot, ".writecheck"); err == nil {
			f.Close()
			os.Remove(f.Name())
			return filepath.Join(webRoot, "index.html")
		}
	}
	log.Printf("Cannot write to %s, writing to current directory instead", webRoot)
	return "./index.html"
}
