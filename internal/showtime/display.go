package showtime

import (
	"strings"
	"time"
)

// Sentinel display values for canonical timestamps that fail to parse back.
const (
	UnknownDate = "Unknown Date"
	UnknownTime = "Unknown Time"
)

// DisplayDate derives the human-readable date ("Fri, May 30") from a
// canonical timestamp. Used only when the original source text was lost;
// the normal path always prefers the captured raw date.
func DisplayDate(canonical string) string {
	ts, err := time.Parse(CanonicalLayout, canonical)
	if err != nil {
		return UnknownDate
	}
	// "2" keeps the day unpadded, matching the source site's format.
	return ts.Format("Mon, Jan 2")
}

// DisplayTime derives the human-readable time ("2:00pm") from a canonical
// timestamp.
func DisplayTime(canonical string) string {
	ts, err := time.Parse(CanonicalLayout, canonical)
	if err != nil {
		return UnknownTime
	}
	return strings.ToLower(ts.Format("3:04PM"))
}
