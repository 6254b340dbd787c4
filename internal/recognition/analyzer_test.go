package recognition

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/animeworld/animeworld-api/internal/config"
	"github.com/animeworld/animeworld-api/internal/domain"
)

func countingServer(t *testing.T, hits *int32, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(hits, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, body)
	}))
}

func analyzerFor(traceMoe, sauceNAO, key string) *Analyzer {
	cfg := config.RecognitionConfig{
		TraceMoeEndpoint: traceMoe,
		SauceNAOEndpoint: sauceNAO,
		SauceNAOKey:      key,
		MaxUploadBytes:   5 * 1024 * 1024,
		RequestTimeout:   config.Duration{Duration: 2 * time.Second},
	}
	return NewAnalyzer(cfg, zap.NewNop())
}

func TestAnalyzeRejectsOversizedUploadWithoutNetwork(t *testing.T) {
	var traceHits, sauceHits int32
	traceSrv := countingServer(t, &traceHits, `{"result":[]}`)
	defer traceSrv.Close()
	sauceSrv := countingServer(t, &sauceHits, `{"results":[]}`)
	defer sauceSrv.Close()

	a := analyzerFor(traceSrv.URL, sauceSrv.URL, "key")

	size := int64(6 * 1024 * 1024)
	_, err := a.Analyze(context.Background(), "big.jpg", "image/jpeg", bytes.NewReader(make([]byte, 0)), size)
	if !errors.Is(err, ErrTooLarge) {
		t.Fatalf("expected ErrTooLarge, got %v", err)
	}

	if atomic.LoadInt32(&traceHits) != 0 || atomic.LoadInt32(&sauceHits) != 0 {
		t.Errorf("providers were contacted for an invalid upload: trace=%d sauce=%d", traceHits, sauceHits)
	}
}

func TestAnalyzeRejectsUnsupportedFormatWithoutNetwork(t *testing.T) {
	var traceHits int32
	traceSrv := countingServer(t, &traceHits, `{"result":[]}`)
	defer traceSrv.Close()

	a := analyzerFor(traceSrv.URL, traceSrv.URL, "key")

	_, err := a.Analyze(context.Background(), "doc.pdf", "application/pdf", bytes.NewReader([]byte("%PDF")), 4)
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Fatalf("expected ErrUnsupportedFormat, got %v", err)
	}
	if atomic.LoadInt32(&traceHits) != 0 {
		t.Errorf("provider was contacted for an unsupported format")
	}
}

func TestAnalyzeSceneMatchIsFinal(t *testing.T) {
	var sauceHits int32
	traceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.RawQuery != "anilistInfo" {
			t.Errorf("expected anilistInfo query, got %q", r.URL.RawQuery)
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"result":[{"similarity":0.97,"episode":12,"from":653.5,
			"anilist":{"id":16498,"title":{"romaji":"Shingeki no Kyojin"}}}]}`)
	}))
	defer traceSrv.Close()
	sauceSrv := countingServer(t, &sauceHits, `{"results":[]}`)
	defer sauceSrv.Close()

	a := analyzerFor(traceSrv.URL, sauceSrv.URL, "key")

	result, err := a.Analyze(context.Background(), "scene.png", "image/png", bytes.NewReader([]byte("png")), 3)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !result.Matched {
		t.Fatal("expected a positive match")
	}
	if result.SourceAPI != domain.SourceTraceMoe {
		t.Errorf("source = %q", result.SourceAPI)
	}
	if result.MediaID != 16498 {
		t.Errorf("media id = %d", result.MediaID)
	}
	if result.Confidence != 97 {
		t.Errorf("confidence = %d, want 97", result.Confidence)
	}
	if result.Episode != 12 {
		t.Errorf("episode = %d", result.Episode)
	}
	if result.Timestamp != "10:53" {
		t.Errorf("timestamp = %q, want 10:53", result.Timestamp)
	}
	if atomic.LoadInt32(&sauceHits) != 0 {
		t.Error("reverse search contacted despite a final scene match")
	}
}

func TestAnalyzeSimulationModeWithoutKey(t *testing.T) {
	traceSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"result":[]}`)
	}))
	defer traceSrv.Close()

	a := analyzerFor(traceSrv.URL, "http://localhost:1", "")
	if !a.SimulationMode() {
		t.Fatal("expected simulation mode without a key")
	}

	image := []byte("the same panel bytes")
	first, err := a.Analyze(context.Background(), "panel.jpg", "image/jpeg", bytes.NewReader(image), int64(len(image)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := a.Analyze(context.Background(), "panel.jpg", "image/jpeg", bytes.NewReader(image), int64(len(image)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if first.SourceAPI != domain.SourceSimulation {
		t.Errorf("source = %q, want simulation", first.SourceAPI)
	}
	if *first != *second {
		t.Errorf("simulated results differ between identical uploads: %+v vs %+v", first, second)
	}
}

func TestSauceNAOThreshold(t *testing.T) {
	cases := []struct {
		name        string
		similarity  string
		indexID     int
		wantMatched bool
		wantKind    domain.RecognitionKind
	}{
		{"above threshold manga index", "85.5", 5, true, domain.RecognitionManga},
		{"above threshold pixiv index", "91.2", 1, true, domain.RecognitionAnime},
		{"below threshold", "64.9", 5, false, domain.RecognitionManga},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				fmt.Fprintf(w, `{"results":[{"header":{"similarity":"%s","index_id":%d},"data":{"title":"Some Title"}}]}`,
					tc.similarity, tc.indexID)
			}))
			defer srv.Close()

			c := NewSauceNAOClient(srv.URL, "key", 2*time.Second)

			result, err := c.Search(context.Background(), "panel.jpg", []byte("panel"))
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if result.Matched != tc.wantMatched {
				t.Errorf("matched = %t, want %t", result.Matched, tc.wantMatched)
			}
			if result.MediaKind != tc.wantKind {
				t.Errorf("kind = %q, want %q", result.MediaKind, tc.wantKind)
			}
			if result.RawSimilarity == 0 {
				t.Error("raw similarity must be preserved")
			}
			if result.SourceAPI != domain.SourceSauceNAO {
				t.Errorf("source = %q", result.SourceAPI)
			}
		})
	}
}

func TestAnalyzeKeyedProviderOutageIsReported(t *testing.T) {
	// Both providers unreachable; a keyed analyzer must report the outage
	// instead of answering with canned match data.
	a := analyzerFor("http://localhost:1", "http://localhost:1", "key")

	image := []byte("panel")
	result, err := a.Analyze(context.Background(), "panel.webp", "image/webp", bytes.NewReader(image), int64(len(image)))
	if !errors.Is(err, ErrProviderUnavailable) {
		t.Fatalf("expected ErrProviderUnavailable, got result=%+v err=%v", result, err)
	}
	if result != nil {
		t.Errorf("outage produced a result: %+v", result)
	}
}

func TestAnalyzeKeylessOutageStillSimulates(t *testing.T) {
	// Without a key the reverse search never leaves the process, so a
	// scene matcher outage still ends in a simulated answer.
	a := analyzerFor("http://localhost:1", "http://localhost:1", "")

	image := []byte("panel")
	result, err := a.Analyze(context.Background(), "panel.webp", "image/webp", bytes.NewReader(image), int64(len(image)))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SourceAPI != domain.SourceSimulation {
		t.Errorf("source = %q, want simulation", result.SourceAPI)
	}
}

type stubResolver struct {
	id  int
	err error
}

func (s stubResolver) SearchFirstID(ctx context.Context, title string, kind domain.MediaKind) (int, error) {
	return s.id, s.err
}

func TestResolveTitle(t *testing.T) {
	a := analyzerFor("http://localhost:1", "http://localhost:1", "")

	result := &domain.RecognitionResult{Matched: true, Title: "Solo Leveling", MediaKind: domain.RecognitionManhwa}
	if err := a.ResolveTitle(context.Background(), stubResolver{id: 105398}, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.MediaID != 105398 {
		t.Errorf("media id = %d", result.MediaID)
	}

	// An id from the provider is left alone.
	withID := &domain.RecognitionResult{Matched: true, Title: "One Piece", MediaID: 21}
	if err := a.ResolveTitle(context.Background(), stubResolver{id: 999}, withID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if withID.MediaID != 21 {
		t.Errorf("existing media id overwritten: %d", withID.MediaID)
	}

	failed := &domain.RecognitionResult{Matched: true, Title: "Unknown Show"}
	if err := a.ResolveTitle(context.Background(), stubResolver{err: errors.New("upstream down")}, failed); err == nil {
		t.Error("expected resolve failure to be reported")
	}
}
