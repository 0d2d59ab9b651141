package showtime

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// CanonicalLayout is the minute-precision layout every sortable timestamp is
// serialized with, both in the database and in the rendered page.
const CanonicalLayout = "2006-01-02 15:04"

// dateLayouts cover the month/day text left after stripping the day-of-week
// prefix, with the reference year appended ("May 30, 2025").
var dateLayouts = []string{
	"Jan 2, 2006",
	"January 2, 2006",
}

var timeRegex = regexp.MustCompile(`(\d{1,2}):(\d{2})\s*([ap]m)?`)

// Normalize converts raw date and time text into a canonical timestamp.
// It is total: every failure path reports ok=false, and the caller keeps the
// raw strings as the display fallback. The reference time is injected so the
// today/tomorrow and year-rollover rules stay deterministic.
func Normalize(rawDate, rawTime string, now time.Time) (time.Time, bool) {
	rawDate = strings.TrimSpace(rawDate)
	rawTime = strings.TrimSpace(rawTime)
	if rawDate == "" || rawTime == "" {
		return time.Time{}, false
	}

	day, ok := normalizeDate(rawDate, now)
	if !ok {
		return time.Time{}, false
	}

	hour, minute, ok := normalizeTime(rawTime)
	if !ok {
		return time.Time{}, false
	}

	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, now.Location()), true
}

// NormalizeString is Normalize serialized with CanonicalLayout; the empty
// string signals a parse failure.
func NormalizeString(rawDate, rawTime string, now time.Time) string {
	ts, ok := Normalize(rawDate, rawTime, now)
	if !ok {
		return ""
	}
	return ts.Format(CanonicalLayout)
}

func normalizeDate(rawDate string, now time.Time) (time.Time, bool) {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	lower := strings.ToLower(rawDate)
	if strings.Contains(lower, "today") {
		return today, true
	}
	if strings.Contains(lower, "tomorrow") {
		return today.AddDate(0, 0, 1), true
	}

	// "Fri, May 30" -> "May 30"; keep the text as-is when there is no
	// day-of-week prefix.
	monthDay := rawDate
	if i := strings.Index(rawDate, ", "); i >= 0 {
		monthDay = rawDate[i+2:]
	}

	day, ok := parseMonthDay(monthDay, now.Year(), now.Location())
	if !ok {
		return time.Time{}, false
	}

	// Listings are always upcoming: a date that already passed this year
	// refers to next year.
	if day.Before(today) {
		day, ok = parseMonthDay(monthDay, now.Year()+1, now.Location())
		if !ok {
			return time.Time{}, false
		}
	}

	return day, true
}

func parseMonthDay(monthDay string, year int, loc *time.Location) (time.Time, bool) {
	withYear := monthDay + ", " + strconv.Itoa(year)
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, withYear, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func normalizeTime(rawTime string) (hour, minute int, ok bool) {
	lower := strings.ToLower(rawTime)

	for _, layout := range []string{"3:04pm", "3:04 pm"} {
		if t, err := time.Parse(layout, lower); err == nil {
			return t.Hour(), t.Minute(), true
		}
	}

	// Manual fallback for texts the layouts reject, e.g. trailing cruft
	// around the time or a missing meridiem.
	m := timeRegex.FindStringSubmatch(lower)
	if m == nil {
		return 0, 0, false
	}

	hour, _ = strconv.Atoi(m[1])
	minute, _ = strconv.Atoi(m[2])
	if hour > 23 || minute > 59 {
		return 0, 0, false
	}

	switch m[3] {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	if hour > 23 {
		return 0, 0, false
	}

	return hour, minute, true
}
