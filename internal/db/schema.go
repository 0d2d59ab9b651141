package db

const createShowtimesTable = `
CREATE TABLE IF NOT EXISTS showtimes (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    title TEXT NOT NULL,
    date TEXT NOT NULL,
    time TEXT NOT NULL,
    formatted_datetime TEXT,
    cinema TEXT,
    link TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    UNIQUE(title, date, time, cinema, link)
);

CREATE INDEX IF NOT EXISTS idx_showtimes_datetime ON showtimes(formatted_datetime);
CREATE INDEX IF NOT EXISTS idx_showtimes_title ON showtimes(title);
`

// Duplicate natural keys are silently skipped; the UNIQUE constraint is the
// authoritative dedup, not application-side bookkeeping.
const insertShowtime = `
INSERT OR IGNORE INTO showtimes (title, date, time, formatted_datetime, cinema, link)
VALUES (?, ?, ?, ?, ?, ?)
`

const selectSortedShowtimes = `
SELECT title, date, time, formatted_datetime, cinema, link, created_at
FROM showtimes
WHERE formatted_datetime IS NOT NULL
ORDER BY formatted_datetime
`

const selectAllShowtimes = `
SELECT title, date, time, formatted_datetime, cinema, link, created_at
FROM showtimes
ORDER BY formatted_datetime
`

const selectShowtimeCount = `
SELECT COUNT(*) FROM showtimes
`
