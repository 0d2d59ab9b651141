package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/model"
)

// Entry represents one movie's cached raw showtimes with metadata.
type Entry struct {
	Showtimes []model.Showtime `json:"showtimes"`
	FetchedAt time.Time        `json:"fetched_at"`
}

// Cache provides disk-based caching of scraped showtimes, keyed by the
// movie's detail page URL, so rapid re-runs skip refetching.
type Cache struct {
	dir string
	ttl time.Duration
	mu  sync.RWMutex
}

// New creates a new disk-based cache.
func New(cacheDir string, ttl time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, err
	}
	return &Cache{
		dir: cacheDir,
		ttl: ttl,
	}, nil
}

// Get retrieves cached showtimes for a movie link if present and not
// expired.
func (c *Cache) Get(link string) ([]model.Showtime, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, err := os.ReadFile(c.filePath(link))
	if err != nil {
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		return nil, false
	}

	if time.Since(entry.FetchedAt) > c.ttl {
		return nil, false
	}

	return entry.Showtimes, true
}

// Set stores showtimes in the cache.
func (c *Cache) Set(link string, showtimes []model.Showtime) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry := Entry{
		Showtimes: showtimes,
		FetchedAt: time.Now(),
	}

	data, err := json.MarshalIndent(entry, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.filePath(link), data, 0644)
}

// Invalidate removes one movie's cache entry.
func (c *Cache) Invalidate(link string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := os.Remove(c.filePath(link)); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// InvalidateAll removes all cached entries.
func (c *Cache) InvalidateAll() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	entries, err := os.ReadDir(c.dir)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if filepath.Ext(entry.Name()) == ".json" {
			os.Remove(filepath.Join(c.dir, entry.Name()))
		}
	}
	return nil
}

func (c *Cache) filePath(link string) string {
	// Sanitize the URL to be filesystem-safe
	safeName := ""
	for _, r := range link {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '-' || r == '_' {
			safeName += string(r)
		} else {
			safeName += "_"
		}
	}
	return filepath.Join(c.dir, safeName+".json")
}
