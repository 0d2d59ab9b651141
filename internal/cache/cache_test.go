package cache

import (
	"testing"
	"time"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/model"
)

func sampleShowtimes() []model.Showtime {
	return []model.Showtime{
		{Title: "Dune", Date: "Fri, May 30", Time: "2:00pm", Cinema: "IMAX", Link: "http://x/dune"},
	}
}

func TestCacheRoundTrip(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	link := "https://carolinatheatre.org/films/dune/"

	if _, ok := c.Get(link); ok {
		t.Fatal("Get on empty cache returned a hit")
	}

	if err := c.Set(link, sampleShowtimes()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok := c.Get(link)
	if !ok {
		t.Fatal("Get missed after Set")
	}
	if len(got) != 1 || got[0].Title != "Dune" {
		t.Errorf("Get returned %+v", got)
	}
}

func TestCacheExpiry(t *testing.T) {
	c, err := New(t.TempDir(), time.Millisecond)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	link := "http://x/dune"
	if err := c.Set(link, sampleShowtimes()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get(link); ok {
		t.Error("Get returned an expired entry")
	}
}

func TestCacheInvalidate(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	link := "http://x/dune"
	if err := c.Set(link, sampleShowtimes()); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if err := c.Invalidate(link); err != nil {
		t.Fatalf("Invalidate failed: %v", err)
	}
	if _, ok := c.Get(link); ok {
		t.Error("Get returned an invalidated entry")
	}

	// Invalidating a missing entry is not an error.
	if err := c.Invalidate("http://x/missing"); err != nil {
		t.Errorf("Invalidate on missing entry: %v", err)
	}
}

func TestCacheInvalidateAll(t *testing.T) {
	c, err := New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	links := []string{"http://x/dune", "http://x/alien"}
	for _, link := range links {
		if err := c.Set(link, sampleShowtimes()); err != nil {
			t.Fatalf("Set failed: %v", err)
		}
	}

	if err := c.InvalidateAll(); err != nil {
		t.Fatalf("InvalidateAll failed: %v", err)
	}
	for _, link := range links {
		if _, ok := c.Get(link); ok {
			t.Errorf("entry %s survived InvalidateAll", link)
		}
	}
}
