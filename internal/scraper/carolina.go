package scraper

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/chromedp"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/model"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/showtime"
)

// The film-filter endpoints return markup assembled client-side, so they go
// through headless Chrome; the per-movie detail pages are plain HTML.
var listingURLs = []string{
	"https://carolinatheatre.org/wp-admin/admin-ajax.php?action=film_filter&events=now-playing",
	"https://carolinatheatre.org/wp-admin/admin-ajax.php?action=film_filter&events=coming-soon",
}

// FetchMovieLinks discovers every movie currently listed under now-playing
// and coming-soon, deduplicated by (title, link).
func FetchMovieLinks(ctx context.Context) ([]model.MovieLink, error) {
	var (
		movies []model.MovieLink
		seen   = make(map[string]bool)
	)

	for _, url := range listingURLs {
		html, err := renderListing(ctx, url)
		if err != nil {
			return nil, fmt.Errorf("rendering listing %s: %w", url, err)
		}

		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return nil, fmt.Errorf("parsing listing: %w", err)
		}

		for _, m := range ParseMovieLinks(doc) {
			key := m.Title + "|" + m.Link
			if seen[key] {
				continue
			}
			seen[key] = true
			movies = append(movies, m)
		}
	}

	return movies, nil
}

// renderListing loads a listing URL in headless Chrome and returns the
// rendered markup.
func renderListing(ctx context.Context, url string) (string, error) {
	opts := chromedp.DefaultExecAllocatorOptions[:]
	if chromePath := os.Getenv("CHROME_PATH"); chromePath != "" {
		opts = append(opts, chromedp.ExecPath(chromePath))
	}
	opts = append(opts,
		chromedp.Headless,
		chromedp.DisableGPU,
		chromedp.NoSandbox,
		chromedp.UserAgent(userAgent),
	)

	allocCtx, allocCancel := chromedp.NewExecAllocator(ctx, opts...)
	defer allocCancel()

	chromeCtx, chromeCancel := chromedp.NewContext(allocCtx)
	defer chromeCancel()

	var html string
	err := chromedp.Run(chromeCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body", chromedp.ByQuery),
		// Give the film filter a moment to finish rendering cards
		chromedp.Sleep(1*time.Second),
		chromedp.OuterHTML("html", &html, chromedp.ByQuery),
	)
	if err != nil {
		return "", fmt.Errorf("loading page: %w", err)
	}

	return html, nil
}

// ParseMovieLinks extracts (title, link) pairs from a rendered listing
// document.
func ParseMovieLinks(doc *goquery.Document) []model.MovieLink {
	var movies []model.MovieLink

	doc.Find("div.card.eventCard.film").Each(func(i int, card *goquery.Selection) {
		title := strings.TrimSpace(card.Find("p.card__title").First().Text())
		link, _ := card.Find("a").First().Attr("href")

		if title != "" && link != "" {
			movies = append(movies, model.MovieLink{Title: title, Link: link})
		}
	})

	return movies
}

// FetchShowtimes retrieves the raw showtimes from one movie's detail page.
func FetchShowtimes(ctx context.Context, movie model.MovieLink) ([]model.Showtime, error) {
	doc, err := fetchDocument(ctx, movie.Link)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", movie.Link, err)
	}
	return ParseShowtimes(doc, movie), nil
}

// ParseShowtimes extracts raw showtime tuples from a movie detail document.
// Each date block carries one or more "time - cinema" entries; a missing
// separator leaves the cinema at its sentinel.
func ParseShowtimes(doc *goquery.Document, movie model.MovieLink) []model.Showtime {
	var (
		showtimes []model.Showtime
		seen      = make(map[string]bool)
	)

	doc.Find("li.showInfo__date").Each(func(i int, dateElem *goquery.Selection) {
		date := strings.TrimSpace(dateElem.Find(".date").First().Text())

		dateElem.Find(".showInfo__times .time").Each(func(j int, timeElem *goquery.Selection) {
			timeText, cinema := showtime.SplitTimeCinema(timeElem.Text())

			rec := model.Showtime{
				Title:  movie.Title,
				Date:   date,
				Time:   timeText,
				Cinema: cinema,
				Link:   movie.Link,
			}

			if seen[rec.Key()] {
				return
			}
			seen[rec.Key()] = true
			showtimes = append(showtimes, rec)
		})
	})

	return showtimes
}
