package site

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/model"
)

var csvHeader = []string{"Movie Title", "Date", "Time", "Formatted DateTime", "Cinema", "Link"}

// WriteCSV dumps records to a flat CSV file, one row per showtime. Callers
// pass records already ordered by canonical timestamp.
func WriteCSV(path string, records []model.Showtime) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating CSV file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(csvHeader); err != nil {
		return fmt.Errorf("writing CSV header: %w", err)
	}

	for _, rec := range records {
		row := []string{rec.Title, rec.Date, rec.Time, rec.FormattedDatetime, rec.Cinema, rec.Link}
		if err := w.Write(row); err != nil {
			return fmt.Errorf("writing CSV row: %w", err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flushing CSV: %w", err)
	}
	return nil
}
