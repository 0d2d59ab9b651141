package showtime

import (
	"strings"
	"time"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/model"
)

// UnknownCinema is the sentinel hall name used when the scraped text carries
// no " - " separator between time and cinema.
const UnknownCinema = "Unknown Cinema"

// cinemaSeparator splits the combined "2:00pm - Cinema One" text the site
// renders for each screening.
const cinemaSeparator = " - "

// SplitTimeCinema splits a combined time/cinema text on the first separator.
// Text without a separator is all time, with the sentinel cinema.
func SplitTimeCinema(text string) (timeText, cinema string) {
	if i := strings.Index(text, cinemaSeparator); i >= 0 {
		return strings.TrimSpace(text[:i]), strings.TrimSpace(text[i+len(cinemaSeparator):])
	}
	return strings.TrimSpace(text), UnknownCinema
}

// NormalizeCinema applies the separator rule to an already-extracted cinema
// text: a "venue - hall" value keeps only the hall, and blank text falls
// back to the sentinel.
func NormalizeCinema(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return UnknownCinema
	}
	if i := strings.Index(raw, cinemaSeparator); i >= 0 {
		return strings.TrimSpace(raw[i+len(cinemaSeparator):])
	}
	return raw
}

// Prepare turns raw scraped showtimes into records ready for insertion:
// fields trimmed, cinema normalized, canonical timestamp attached, and the
// batch deduplicated on the natural key. The database UNIQUE constraint
// remains authoritative; the in-batch pass only avoids redundant writes.
func Prepare(raw []model.Showtime, now time.Time) []model.Showtime {
	seen := make(map[string]bool, len(raw))
	out := make([]model.Showtime, 0, len(raw))

	for _, r := range raw {
		rec := model.Showtime{
			Title:  strings.TrimSpace(r.Title),
			Date:   strings.TrimSpace(r.Date),
			Time:   strings.TrimSpace(r.Time),
			Cinema: NormalizeCinema(r.Cinema),
			Link:   strings.TrimSpace(r.Link),
		}
		rec.FormattedDatetime = NormalizeString(rec.Date, rec.Time, now)

		key := rec.Key()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, rec)
	}

	return out
}
