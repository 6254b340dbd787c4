package anilist

import (
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/animeworld/animeworld-api/internal/config"
	"github.com/animeworld/animeworld-api/internal/domain"
)

func testClient() *Client {
	cfg := config.CatalogConfig{
		Endpoint:         "http://localhost/graphql",
		RequestTimeout:   config.Duration{Duration: time.Second},
		PageDelay:        config.Duration{Duration: time.Millisecond},
		PlaceholderImage: "/assets/cover-placeholder.png",
	}
	return NewClient(cfg, zap.NewNop())
}

func strPtr(s string) *string { return &s }
func intPtr(i int) *int       { return &i }

// An entry with every optional field absent must still normalize into a
// renderable card.
func TestNormalizeSummaryEmptyMedia(t *testing.T) {
	c := testClient()

	s := c.normalizeSummary(gqlMedia{ID: 42})

	if s.ID != 42 {
		t.Errorf("id = %d, want 42", s.ID)
	}
	if s.DisplayTitle != "Unknown Title" {
		t.Errorf("display title = %q", s.DisplayTitle)
	}
	if s.Title.Romaji != "Unknown Title" {
		t.Errorf("romaji not defaulted: %q", s.Title.Romaji)
	}
	if s.Kind != domain.KindAnime {
		t.Errorf("kind = %q, want ANIME", s.Kind)
	}
	if s.Status != domain.StatusUnknown {
		t.Errorf("status = %q, want UNKNOWN", s.Status)
	}
	if s.Genres == nil {
		t.Error("genres must be an empty slice, not nil")
	}
	if s.CoverImage != "/assets/cover-placeholder.png" {
		t.Errorf("cover = %q, want placeholder", s.CoverImage)
	}
	if s.BannerImage != s.CoverImage {
		t.Errorf("banner should default to cover, got %q", s.BannerImage)
	}
	if s.Color != "#4a4a4a" {
		t.Errorf("color = %q, want placeholder color", s.Color)
	}
	if s.Description != "No description available." {
		t.Errorf("description = %q", s.Description)
	}
}

func TestNormalizeTitlePriority(t *testing.T) {
	cases := []struct {
		name  string
		title gqlTitle
		want  string
	}{
		{"english wins", gqlTitle{English: strPtr("Attack on Titan"), Romaji: strPtr("Shingeki no Kyojin")}, "Attack on Titan"},
		{"romaji second", gqlTitle{Romaji: strPtr("Shingeki no Kyojin"), Native: strPtr("進撃の巨人")}, "Shingeki no Kyojin"},
		{"native last", gqlTitle{Native: strPtr("進撃の巨人")}, "進撃の巨人"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, display := normalizeTitle(&tc.title)
			if display != tc.want {
				t.Errorf("display = %q, want %q", display, tc.want)
			}
		})
	}
}

func TestCleanDescription(t *testing.T) {
	c := testClient()

	raw := "First line.<br><br/>Second <i>line</i> &amp; more."
	got := c.cleanDescription(&raw)
	want := "First line.\n\nSecond line & more."
	if got != want {
		t.Errorf("cleaned = %q, want %q", got, want)
	}

	onlyTags := "<i></i>"
	if got := c.cleanDescription(&onlyTags); got != "No description available." {
		t.Errorf("tag-only description = %q", got)
	}
}

func TestNormalizeStatusUnknownValues(t *testing.T) {
	if got := normalizeStatus(strPtr("SOMETHING_NEW")); got != domain.StatusUnknown {
		t.Errorf("unrecognized status = %q, want UNKNOWN", got)
	}
	if got := normalizeStatus(strPtr("RELEASING")); got != domain.StatusReleasing {
		t.Errorf("status = %q, want RELEASING", got)
	}
}

func TestNormalizeDetailMainStudioFirst(t *testing.T) {
	c := testClient()

	m := gqlMedia{ID: 1, Title: &gqlTitle{Romaji: strPtr("Test")}}
	m.Studios = &struct {
		Edges []gqlStudioEdge `json:"edges"`
	}{}
	support := gqlStudioEdge{IsMain: false}
	support.Node.Name = "Support Studio"
	main := gqlStudioEdge{IsMain: true}
	main.Node.Name = "Main Studio"
	m.Studios.Edges = []gqlStudioEdge{support, main}

	detail := c.normalizeDetail(m)

	if len(detail.Studios) != 2 {
		t.Fatalf("expected 2 studios, got %d", len(detail.Studios))
	}
	if detail.Studios[0].Name != "Main Studio" || !detail.Studios[0].IsMain {
		t.Errorf("main studio not first: %+v", detail.Studios)
	}
}

func TestNormalizeUpcomingReleaseDate(t *testing.T) {
	c := testClient()

	m := gqlMedia{ID: 1, StartDate: &gqlDate{Year: intPtr(2026), Month: intPtr(10), Day: intPtr(5)}}
	entry := c.normalizeUpcoming(m)
	if entry.ReleaseDate != "Oct 5, 2026" {
		t.Errorf("release date = %q", entry.ReleaseDate)
	}

	entry = c.normalizeUpcoming(gqlMedia{ID: 2})
	if entry.ReleaseDate != "TBA" {
		t.Errorf("dateless release = %q, want TBA", entry.ReleaseDate)
	}
	if entry.Studio != "Unknown" {
		t.Errorf("studio = %q, want Unknown", entry.Studio)
	}
}
