package showtime

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/model"
)

// displayDateLayout is the year-qualified bucket label, e.g. "Fri, May 30, 2025".
const displayDateLayout = "Mon, Jan 2, 2006"

// Records whose canonical timestamp is absent or mangled sort as midnight
// Jan 1 of the sentinel year rather than being dropped.
var sentinelSortTime = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

var (
	slugStripRegex    = regexp.MustCompile(`[^\w\s-]`)
	slugSpaceRegex    = regexp.MustCompile(`\s+`)
	trailingYearRegex = regexp.MustCompile(`, \d{4}$`)
)

// Entry is a single screening as handed to the presentation layer. ID is
// unique and deterministic across runs over identical input.
type Entry struct {
	ID        string
	Title     string
	Time      string
	Cinema    string
	Link      string
	Canonical string
	// DisplayDate is the year-qualified date bucket the entry belongs to,
	// shown next to the time in the by-movie view.
	DisplayDate string
}

// DayGroup holds one display-date's screenings, ordered by canonical
// timestamp.
type DayGroup struct {
	Date    string
	Entries []Entry
}

// MovieGroup holds one title's screenings across all upcoming days.
type MovieGroup struct {
	Title   string
	Entries []Entry
}

// Schedule is the ordered output of GroupAndSort: the by-day view, the
// by-movie view, and the dates backing the day filter.
type Schedule struct {
	Days   []DayGroup
	Movies []MovieGroup
	Dates  []string
}

// GroupAndSort partitions records into the by-day and by-movie views.
// Days strictly before the reference date are filtered out; display-dates
// that cannot be parsed are retained rather than dropped, as are records
// without a canonical timestamp.
func GroupAndSort(records []model.Showtime, now time.Time) Schedule {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	buckets := make(map[string][]Entry)
	for _, rec := range records {
		date := displayDateWithYear(rec, now)
		buckets[date] = append(buckets[date], Entry{
			Title:       rec.Title,
			Time:        displayTimeFor(rec),
			Cinema:      rec.Cinema,
			Link:        rec.Link,
			Canonical:   rec.FormattedDatetime,
			DisplayDate: date,
		})
	}

	for date := range buckets {
		entries := buckets[date]
		sort.SliceStable(entries, func(i, j int) bool {
			return sortTime(entries[i].Canonical).Before(sortTime(entries[j].Canonical))
		})
	}

	dates := upcomingDates(buckets, today)

	var schedule Schedule
	schedule.Dates = dates

	// IDs are assigned in iteration order, by-day groups first, so two runs
	// over the same input agree.
	counter := 1

	for _, date := range dates {
		group := DayGroup{Date: date}
		for _, e := range buckets[date] {
			e.ID = movieID(e.Title, counter)
			counter++
			group.Entries = append(group.Entries, e)
		}
		schedule.Days = append(schedule.Days, group)
	}

	// By-movie view: same entries regrouped by title, guarded against a
	// screening surfacing in two date buckets upstream.
	groups := make(map[string][]Entry)
	seen := make(map[string]bool)
	for _, date := range dates {
		for _, e := range buckets[date] {
			key := e.Title + "|" + e.Time + "|" + date + "|" + e.Cinema
			if seen[key] {
				continue
			}
			seen[key] = true
			groups[e.Title] = append(groups[e.Title], e)
		}
	}

	titles := make([]string, 0, len(groups))
	for title := range groups {
		titles = append(titles, title)
	}
	sort.Strings(titles)

	for _, title := range titles {
		group := MovieGroup{Title: title}
		for _, e := range groups[title] {
			e.ID = movieID(e.Title, counter)
			counter++
			group.Entries = append(group.Entries, e)
		}
		schedule.Movies = append(schedule.Movies, group)
	}

	return schedule
}

// displayDateWithYear yields the bucket label for a record. The raw date is
// preferred; a missing year is filled in from the canonical timestamp, or
// from the reference time when that is absent too.
func displayDateWithYear(rec model.Showtime, now time.Time) string {
	date := rec.Date
	if date == "" {
		date = DisplayDate(rec.FormattedDatetime)
	}
	if trailingYearRegex.MatchString(date) {
		return date
	}

	year := now.Year()
	if ts, err := time.Parse(CanonicalLayout, rec.FormattedDatetime); err == nil {
		year = ts.Year()
	}
	return date + ", " + strconv.Itoa(year)
}

func displayTimeFor(rec model.Showtime) string {
	if rec.Time != "" {
		return rec.Time
	}
	return DisplayTime(rec.FormattedDatetime)
}

// sortTime maps a canonical timestamp to its within-day sort key. A value
// that fails to parse falls back to its time-of-day portion on the sentinel
// date, then to the sentinel itself.
func sortTime(canonical string) time.Time {
	if ts, err := time.Parse(CanonicalLayout, canonical); err == nil {
		return ts
	}
	fields := strings.Fields(canonical)
	if len(fields) > 0 {
		if ts, err := time.Parse(CanonicalLayout, "2025-01-01 "+fields[len(fields)-1]); err == nil {
			return ts
		}
	}
	return sentinelSortTime
}

// upcomingDates filters and orders the bucket labels. Labels that parse to a
// date before today are dropped; labels that do not parse at all are kept
// and ordered after the parsable ones.
func upcomingDates(buckets map[string][]Entry, today time.Time) []string {
	type datedLabel struct {
		label  string
		parsed time.Time
		ok     bool
	}

	var labels []datedLabel
	for label := range buckets {
		parsed, err := time.Parse(displayDateLayout, label)
		if err != nil {
			labels = append(labels, datedLabel{label: label})
			continue
		}
		parsed = time.Date(parsed.Year(), parsed.Month(), parsed.Day(), 0, 0, 0, 0, today.Location())
		if parsed.Before(today) {
			continue
		}
		labels = append(labels, datedLabel{label: label, parsed: parsed, ok: true})
	}

	sort.Slice(labels, func(i, j int) bool {
		a, b := labels[i], labels[j]
		if a.ok != b.ok {
			return a.ok
		}
		if !a.ok {
			return a.label < b.label
		}
		return a.parsed.Before(b.parsed)
	})

	dates := make([]string, len(labels))
	for i, l := range labels {
		dates[i] = l.label
	}
	return dates
}

// Slugify converts a movie title to a URL-safe slug.
func Slugify(title string) string {
	slug := strings.ToLower(title)
	slug = slugStripRegex.ReplaceAllString(slug, "")
	slug = strings.TrimSpace(slug)
	return slugSpaceRegex.ReplaceAllString(slug, "-")
}

func movieID(title string, counter int) string {
	return "movie-" + Slugify(title) + "-" + strconv.Itoa(counter)
}
