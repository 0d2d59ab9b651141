package model

import "time"

// Showtime represents a single screening scraped from a movie's detail page.
// Date and Time keep the original source text; FormattedDatetime is the
// canonical "2006-01-02 15:04" value derived from them, empty when the
// source text could not be parsed.
type Showtime struct {
	Title             string    `json:"title"`
	Date              string    `json:"date"`
	Time              string    `json:"time"`
	FormattedDatetime string    `json:"formatted_datetime"`
	Cinema            string    `json:"cinema"`
	Link              string    `json:"link"`
	CreatedAt         time.Time `json:"-"`
}

// Key returns the natural identity of the showtime. Two records sharing a
// key are the same screening; the database enforces the same tuple as a
// UNIQUE constraint.
func (s Showtime) Key() string {
	return s.Title + "|" + s.Date + "|" + s.Time + "|" + s.Cinema + "|" + s.Link
}

// MovieLink is a (title, detail page URL) pair discovered on the listing
// pages. The same title can appear under multiple links, e.g. re-releases.
type MovieLink struct {
	Title string `json:"title"`
	Link  string `json:"link"`
}
