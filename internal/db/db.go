package db

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/model"
)

// DB wraps the SQLite database holding scraped showtimes.
type DB struct {
	conn *sql.DB
}

// New opens (creating if needed) the showtime database at dbPath and
// initializes the schema.
func New(dbPath string) (*DB, error) {
	dir := filepath.Dir(dbPath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if _, err := conn.Exec(createShowtimesTable); err != nil {
		conn.Close()
		return nil, fmt.Errorf("creating showtimes schema: %w", err)
	}

	return &DB{conn: conn}, nil
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

// InsertStats reports the outcome of an ingestion batch.
type InsertStats struct {
	Inserted int
	Skipped  int
}

// InsertShowtimes writes a batch of records, silently skipping any whose
// natural key already exists. Each insert is independently atomic, so
// concurrent ingestion runs converge on the same store content.
func (db *DB) InsertShowtimes(ctx context.Context, records []model.Showtime) (InsertStats, error) {
	stmt, err := db.conn.PrepareContext(ctx, insertShowtime)
	if err != nil {
		return InsertStats{}, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	var stats InsertStats
	for _, rec := range records {
		res, err := stmt.ExecContext(ctx,
			rec.Title,
			rec.Date,
			rec.Time,
			nullable(rec.FormattedDatetime),
			rec.Cinema,
			rec.Link,
		)
		if err != nil {
			return stats, fmt.Errorf("inserting showtime %q: %w", rec.Key(), err)
		}

		n, err := res.RowsAffected()
		if err != nil {
			return stats, fmt.Errorf("reading rows affected: %w", err)
		}
		if n > 0 {
			stats.Inserted++
		} else {
			stats.Skipped++
		}
	}

	return stats, nil
}

// SortedShowtimes returns every record with a canonical timestamp, ascending
// by that timestamp. This is the query backing all downstream generators.
func (db *DB) SortedShowtimes(ctx context.Context) ([]model.Showtime, error) {
	rows, err := db.conn.QueryContext(ctx, selectSortedShowtimes)
	if err != nil {
		return nil, fmt.Errorf("querying showtimes: %w", err)
	}
	defer rows.Close()

	return scanShowtimes(rows)
}

// AllShowtimes returns every record, including ones whose date/time text
// never parsed.
func (db *DB) AllShowtimes(ctx context.Context) ([]model.Showtime, error) {
	rows, err := db.conn.QueryContext(ctx, selectAllShowtimes)
	if err != nil {
		return nil, fmt.Errorf("querying showtimes: %w", err)
	}
	defer rows.Close()

	return scanShowtimes(rows)
}

// Filter narrows a showtime query. Title and Cinema are substring matches;
// Date matches the raw date text exactly.
type Filter struct {
	Title  string
	Cinema string
	Date   string
}

// QueryShowtimes returns records matching the filter, ascending by canonical
// timestamp.
func (db *DB) QueryShowtimes(ctx context.Context, f Filter) ([]model.Showtime, error) {
	query := "SELECT title, date, time, formatted_datetime, cinema, link, created_at FROM showtimes WHERE 1=1"
	var args []any

	if f.Title != "" {
		query += " AND title LIKE ?"
		args = append(args, "%"+f.Title+"%")
	}
	if f.Cinema != "" {
		query += " AND cinema LIKE ?"
		args = append(args, "%"+f.Cinema+"%")
	}
	if f.Date != "" {
		query += " AND date = ?"
		args = append(args, f.Date)
	}
	query += " ORDER BY formatted_datetime"

	rows, err := db.conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying showtimes: %w", err)
	}
	defer rows.Close()

	return scanShowtimes(rows)
}

// Count returns the total number of stored showtimes.
func (db *DB) Count(ctx context.Context) (int, error) {
	var n int
	if err := db.conn.QueryRowContext(ctx, selectShowtimeCount).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting showtimes: %w", err)
	}
	return n, nil
}

func scanShowtimes(rows *sql.Rows) ([]model.Showtime, error) {
	var records []model.Showtime
	for rows.Next() {
		var (
			rec       model.Showtime
			formatted sql.NullString
			createdAt string
		)
		if err := rows.Scan(&rec.Title, &rec.Date, &rec.Time, &formatted, &rec.Cinema, &rec.Link, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning showtime: %w", err)
		}
		rec.FormattedDatetime = formatted.String
		rec.CreatedAt, _ = parseTimestamp(createdAt)
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating showtimes: %w", err)
	}
	return records, nil
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// parseTimestamp handles the formats SQLite's CURRENT_TIMESTAMP may have
// produced.
func parseTimestamp(s string) (time.Time, error) {
	layouts := []string{"2006-01-02 15:04:05", time.RFC3339}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, strings.TrimSpace(s)); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp %q", s)
}
