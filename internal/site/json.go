package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/model"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/showtime"
)

// Feed is the JSON document consumed by the static frontend.
type Feed struct {
	GeneratedAt    string         `json:"generated_at"`
	TotalShowtimes int            `json:"total_showtimes"`
	Showtimes      []FeedShowtime `json:"showtimes"`
}

// FeedShowtime is one screening in the feed, display fields only.
type FeedShowtime struct {
	Title             string `json:"title"`
	Date              string `json:"date"`
	Time              string `json:"time"`
	FormattedDatetime string `json:"formatted_datetime"`
	Cinema            string `json:"cinema"`
	Link              string `json:"link"`
}

// BuildFeed converts store records into the feed document. Records arrive
// already ordered by canonical timestamp; raw date/time text is preferred
// for display, with the reverse-mapped form as fallback.
func BuildFeed(records []model.Showtime, now time.Time) Feed {
	feed := Feed{
		GeneratedAt:    now.Format(time.RFC3339),
		TotalShowtimes: len(records),
		Showtimes:      make([]FeedShowtime, 0, len(records)),
	}

	for _, rec := range records {
		date := rec.Date
		if date == "" {
			date = showtime.DisplayDate(rec.FormattedDatetime)
		}
		timeText := rec.Time
		if timeText == "" {
			timeText = showtime.DisplayTime(rec.FormattedDatetime)
		}

		feed.Showtimes = append(feed.Showtimes, FeedShowtime{
			Title:             rec.Title,
			Date:              date,
			Time:              timeText,
			FormattedDatetime: rec.FormattedDatetime,
			Cinema:            rec.Cinema,
			Link:              rec.Link,
		})
	}

	return feed
}

// EncodeFeed renders the feed document as indented JSON.
func EncodeFeed(feed Feed) ([]byte, error) {
	data, err := json.MarshalIndent(feed, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding feed: %w", err)
	}
	return data, nil
}

// WriteJSON renders the feed and writes it to path, creating parent
// directories as needed.
func WriteJSON(path string, feed Feed) error {
	data, err := EncodeFeed(feed)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing feed: %w", err)
	}
	return nil
}
