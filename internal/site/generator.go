package site

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/showtime"
)

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// PageData is the view model handed to the schedule template. All values
// pass through html/template, so titles and links are escaped wherever they
// land in markup or attributes.
type PageData struct {
	GeneratedAt string
	Dates       []string
	Days        []showtime.DayGroup
	Movies      []showtime.MovieGroup
}

// RenderHTML renders the schedule page.
func RenderHTML(schedule showtime.Schedule, now time.Time) ([]byte, error) {
	data := PageData{
		GeneratedAt: now.Format("Mon, Jan 2, 2006 3:04pm"),
		Dates:       schedule.Dates,
		Days:        schedule.Days,
		Movies:      schedule.Movies,
	}

	var buf bytes.Buffer
	if err := indexTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}
	return buf.Bytes(), nil
}

// WriteHTML writes the rendered page to path. When backup is set and a file
// already exists there, it is copied aside with a timestamp suffix first.
func WriteHTML(path string, data []byte, backup bool) error {
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}

	if backup {
		if _, err := os.Stat(path); err == nil {
			backupPath := fmt.Sprintf("%s.backup_%s", path, time.Now().Format("20060102_150405"))
			if err := copyFile(path, backupPath); err != nil {
				return fmt.Errorf("backing up existing page: %w", err)
			}
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing HTML: %w", err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	defer out.Close()

	if _, err := io.Copy(out, in); err != nil {
		return err
	}
	return out.Close()
}
