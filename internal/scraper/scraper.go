package scraper

import (
	"context"
	"fmt"
	"net/http"
	"sync"

	"github.com/PuerkitoBio/goquery"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/cache"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/model"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

// DefaultWorkers bounds the concurrent per-movie showtime fetches.
const DefaultWorkers = 8

// fetchDocument fetches a URL and parses it as an HTML document.
func fetchDocument(ctx context.Context, url string) (*goquery.Document, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching URL: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching URL: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	return doc, nil
}

// Failure records a movie whose showtime fetch did not succeed. A failed
// fetch never aborts the batch; the pipeline proceeds on the rest.
type Failure struct {
	Movie model.MovieLink
	Err   error
}

// FetchAllShowtimes fetches showtimes for every movie concurrently across a
// bounded worker pool and merges the results. Completion order does not
// matter; the store's uniqueness constraint owns the final merge. A non-nil
// cache short-circuits movies fetched recently.
func FetchAllShowtimes(ctx context.Context, movies []model.MovieLink, workers int, c *cache.Cache) ([]model.Showtime, []Failure) {
	if workers <= 0 {
		workers = DefaultWorkers
	}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		showtimes []model.Showtime
		failures  []Failure
	)
	sem := make(chan struct{}, workers)

	for _, m := range movies {
		wg.Add(1)
		go func(movie model.MovieLink) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			if c != nil {
				if cached, ok := c.Get(movie.Link); ok {
					mu.Lock()
					showtimes = append(showtimes, cached...)
					mu.Unlock()
					return
				}
			}

			result, err := FetchShowtimes(ctx, movie)
			if err != nil {
				mu.Lock()
				failures = append(failures, Failure{Movie: movie, Err: err})
				mu.Unlock()
				return
			}

			if c != nil {
				c.Set(movie.Link, result)
			}

			mu.Lock()
			showtimes = append(showtimes, result...)
			mu.Unlock()
		}(m)
	}

	wg.Wait()
	return showtimes, failures
}
