package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/cache"
	"github.com/AndrewGEvans95/carolina-theatre-scraper/internal/model"
)

func TestFetchAllShowtimesFailureIsolation(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/films/dune/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(showtimesFixture))
	})
	mux.HandleFunc("/films/alien/", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broke", http.StatusInternalServerError)
	})
	mux.HandleFunc("/films/blade-runner/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(showtimesFixture))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	movies := []model.MovieLink{
		{Title: "Dune", Link: srv.URL + "/films/dune/"},
		{Title: "Alien", Link: srv.URL + "/films/alien/"},
		{Title: "Blade Runner", Link: srv.URL + "/films/blade-runner/"},
	}

	showtimes, failures := FetchAllShowtimes(context.Background(), movies, 2, nil)

	if len(failures) != 1 {
		t.Fatalf("got %d failures, want 1: %+v", len(failures), failures)
	}
	if failures[0].Movie.Title != "Alien" {
		t.Errorf("failed movie = %q, want Alien", failures[0].Movie.Title)
	}
	if !strings.Contains(failures[0].Err.Error(), "status 500") {
		t.Errorf("failure error = %v, want the upstream status", failures[0].Err)
	}

	// The broken movie never aborts the batch: both healthy pages land.
	if len(showtimes) != 6 {
		t.Fatalf("got %d showtimes, want 6: %+v", len(showtimes), showtimes)
	}
	for _, s := range showtimes {
		if s.Title != "Dune" && s.Title != "Blade Runner" {
			t.Errorf("unexpected showtime for %q", s.Title)
		}
	}
}

func TestFetchAllShowtimesCache(t *testing.T) {
	var hits atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("/films/dune/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(showtimesFixture))
	})
	mux.HandleFunc("/films/alien/", func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		w.Write([]byte(showtimesFixture))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	c, err := cache.New(t.TempDir(), time.Hour)
	if err != nil {
		t.Fatalf("creating cache: %v", err)
	}

	dune := model.MovieLink{Title: "Dune", Link: srv.URL + "/films/dune/"}
	alien := model.MovieLink{Title: "Alien", Link: srv.URL + "/films/alien/"}

	cached := []model.Showtime{
		{Title: "Dune", Date: "Fri, May 30", Time: "2:00pm", Cinema: "Cinema One", Link: dune.Link},
	}
	if err := c.Set(dune.Link, cached); err != nil {
		t.Fatalf("seeding cache: %v", err)
	}

	showtimes, failures := FetchAllShowtimes(context.Background(), []model.MovieLink{dune, alien}, 2, c)

	if len(failures) != 0 {
		t.Fatalf("unexpected failures: %+v", failures)
	}
	// Dune is served from the cache, so only Alien touches the server.
	if got := hits.Load(); got != 1 {
		t.Errorf("server saw %d fetches, want 1", got)
	}

	var duneCount int
	for _, s := range showtimes {
		if s.Title == "Dune" {
			duneCount++
		}
	}
	if duneCount != 1 {
		t.Errorf("got %d cached Dune showtimes, want 1", duneCount)
	}
	if len(showtimes) != 4 {
		t.Errorf("got %d showtimes, want 4 (1 cached + 3 fetched)", len(showtimes))
	}

	// A successful fetch refreshes the cache for the next run.
	if _, ok := c.Get(alien.Link); !ok {
		t.Error("fetched showtimes were not cached")
	}
}
