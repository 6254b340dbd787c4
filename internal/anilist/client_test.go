package anilist

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/animeworld/animeworld-api/internal/config"
	"github.com/animeworld/animeworld-api/internal/domain"
)

func clientFor(endpoint string) *Client {
	cfg := config.CatalogConfig{
		Endpoint:         endpoint,
		RequestTimeout:   config.Duration{Duration: 2 * time.Second},
		PageDelay:        config.Duration{Duration: time.Millisecond},
		PlaceholderImage: "/assets/cover-placeholder.png",
	}
	return NewClient(cfg, zap.NewNop())
}

func TestTrendingFallbackOnUpstreamFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := clientFor(srv.URL)

	items, fallback := c.Trending(context.Background(), domain.KindAnime, 10)
	if !fallback {
		t.Fatal("expected fallback flag on upstream failure")
	}
	if len(items) == 0 {
		t.Fatal("fallback list must not be empty")
	}
	for i, item := range items {
		if item.ID == 0 || item.DisplayTitle == "" {
			t.Errorf("fallback entry %d incomplete: %+v", i, item)
		}
		if item.Rank != i+1 {
			t.Errorf("fallback entry %d rank = %d", i, item.Rank)
		}
	}
}

func TestTrendingNormalizesAndRanks(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Page":{"pageInfo":{"hasNextPage":false},"media":[
			{"id":21,"type":"ANIME","title":{"romaji":"One Piece"},"genres":["Action","Adventure","Comedy","Fantasy"]},
			{"id":16498,"type":"ANIME","title":{"english":"Attack on Titan"}}
		]}}}`))
	}))
	defer srv.Close()

	c := clientFor(srv.URL)

	items, fallback := c.Trending(context.Background(), domain.KindAnime, 10)
	if fallback {
		t.Fatal("unexpected fallback on healthy upstream")
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Rank != 1 || items[1].Rank != 2 {
		t.Errorf("ranks not assigned in order: %d, %d", items[0].Rank, items[1].Rank)
	}
	if len(items[0].Genres) != 3 {
		t.Errorf("expected genre list capped at 3, got %v", items[0].Genres)
	}
	if items[1].DisplayTitle != "Attack on Titan" {
		t.Errorf("display title = %q", items[1].DisplayTitle)
	}
}

func TestByIDNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"data":{"Media":null},"errors":[{"message":"Not Found.","status":404}]}`))
	}))
	defer srv.Close()

	c := clientFor(srv.URL)

	_, err := c.ByID(context.Background(), 999999999)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestByIDNullMedia(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Media":null}}`))
	}))
	defer srv.Close()

	c := clientFor(srv.URL)

	_, err := c.ByID(context.Background(), 1)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for null media, got %v", err)
	}
}

func TestSearchReportsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	c := clientFor(srv.URL)

	_, err := c.Search(context.Background(), "one piece", domain.KindAnime, 1, 20)
	var fetchErr *FetchError
	if !errors.As(err, &fetchErr) {
		t.Fatalf("expected *FetchError, got %v", err)
	}
	if fetchErr.StatusCode != http.StatusBadGateway {
		t.Errorf("status = %d, want 502", fetchErr.StatusCode)
	}
}

func TestSearchFirstID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Page":{"pageInfo":{"hasNextPage":false},"media":[{"id":30013,"type":"MANGA","title":{"romaji":"One Piece"}}]}}}`))
	}))
	defer srv.Close()

	c := clientFor(srv.URL)

	id, err := c.SearchFirstID(context.Background(), "One Piece", domain.KindManga)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != 30013 {
		t.Errorf("id = %d, want 30013", id)
	}
}

func TestSearchFirstIDNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"Page":{"pageInfo":{"hasNextPage":false},"media":[]}}}`))
	}))
	defer srv.Close()

	c := clientFor(srv.URL)

	_, err := c.SearchFirstID(context.Background(), "does not exist anywhere", domain.KindAnime)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
