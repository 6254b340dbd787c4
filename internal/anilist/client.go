package anilist

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/animeworld/animeworld-api/internal/config"
	"github.com/animeworld/animeworld-api/internal/domain"
	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// trendingGenreCap bounds how many genres a trending card carries.
const trendingGenreCap = 3

// Client issues GraphQL queries against the catalog endpoint and converts
// raw responses into fully-normalized view models. All fetches own their
// response lifecycle; there is no shared mutable state beyond the
// singleflight group.
type Client struct {
	endpoint    string
	httpClient  *http.Client
	placeholder string
	pageDelay   time.Duration
	stripper    *bluemonday.Policy
	logger      *zap.Logger
	group       singleflight.Group

	now func() time.Time
}

// NewClient creates a catalog client from configuration.
func NewClient(cfg config.CatalogConfig, logger *zap.Logger) *Client {
	return &Client{
		endpoint:    cfg.Endpoint,
		httpClient:  &http.Client{Timeout: cfg.RequestTimeout.Duration},
		placeholder: cfg.PlaceholderImage,
		pageDelay:   cfg.PageDelay.Duration,
		stripper:    bluemonday.StrictPolicy(),
		logger:      logger,
		now:         time.Now,
	}
}

type gqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

type gqlError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type gqlResponse struct {
	Data   json.RawMessage `json:"data"`
	Errors []gqlError      `json:"errors"`
}

// do posts one GraphQL document and decodes the data payload into out.
// A non-2xx response or a non-empty errors array yields a *FetchError;
// an upstream 404 in the errors array is translated to ErrNotFound.
func (c *Client) do(ctx context.Context, op, query string, variables map[string]any, out any) error {
	body, err := json.Marshal(gqlRequest{Query: query, Variables: variables})
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &FetchError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &FetchError{Op: op, StatusCode: resp.StatusCode, Err: fmt.Errorf("unexpected status")}
	}

	var envelope gqlResponse
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("decode response: %w", err)}
	}

	if len(envelope.Errors) > 0 {
		for _, e := range envelope.Errors {
			if e.Status == http.StatusNotFound {
				return ErrNotFound
			}
		}
		return &FetchError{Op: op, Err: fmt.Errorf("graphql: %s", envelope.Errors[0].Message)}
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return &FetchError{Op: op, Err: fmt.Errorf("decode data: %w", err)}
	}

	return nil
}

type mediaPage struct {
	Page struct {
		PageInfo gqlPageInfo `json:"pageInfo"`
		Media    []gqlMedia  `json:"media"`
	} `json:"Page"`
}

type mediaEnvelope struct {
	Media *gqlMedia `json:"Media"`
}

// Trending returns the top trending entries for a media kind. It never
// fails: any transport or upstream error is logged and replaced with the
// built-in fallback list, so the caller always gets a usable slice.
// Concurrent identical requests are collapsed through singleflight.
func (c *Client) Trending(ctx context.Context, kind domain.MediaKind, limit int) ([]domain.MediaSummary, bool) {
	key := fmt.Sprintf("trending:%s:%d", kind, limit)

	val, err, _ := c.group.Do(key, func() (interface{}, error) {
		return c.fetchTrending(ctx, kind, limit)
	})
	if err != nil {
		c.logger.Warn("trending fetch failed, serving fallback",
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		return FallbackTrending(kind), true
	}

	return val.([]domain.MediaSummary), false
}

func (c *Client) fetchTrending(ctx context.Context, kind domain.MediaKind, limit int) ([]domain.MediaSummary, error) {
	query := trendingAnimeQuery
	if kind == domain.KindManga {
		query = trendingMangaQuery
	}

	var page mediaPage
	if err := c.do(ctx, "trending", query, map[string]any{"perPage": limit}, &page); err != nil {
		return nil, err
	}
	if len(page.Page.Media) == 0 {
		return nil, &FetchError{Op: "trending", Err: fmt.Errorf("empty media page")}
	}

	items := make([]domain.MediaSummary, 0, len(page.Page.Media))
	for i, m := range page.Page.Media {
		s := c.normalizeSummary(m)
		s.Rank = i + 1
		if len(s.Genres) > trendingGenreCap {
			s.Genres = s.Genres[:trendingGenreCap]
		}
		items = append(items, s)
	}

	return items, nil
}

// ByID returns the full detail for one catalog id. A missing id yields
// (nil, ErrNotFound); only transport failures produce a *FetchError.
func (c *Client) ByID(ctx context.Context, id int) (*domain.MediaDetail, error) {
	var envelope mediaEnvelope
	if err := c.do(ctx, "detail", detailQuery, map[string]any{"id": id}, &envelope); err != nil {
		return nil, err
	}
	if envelope.Media == nil {
		return nil, ErrNotFound
	}

	return c.normalizeDetail(*envelope.Media), nil
}

// Search returns ranked results in upstream order; no client-side
// re-ranking is applied.
func (c *Client) Search(ctx context.Context, term string, kind domain.MediaKind, page, perPage int) ([]domain.MediaSummary, error) {
	var result mediaPage
	err := c.do(ctx, "search", searchQuery, map[string]any{
		"search":  term,
		"type":    string(kind),
		"page":    page,
		"perPage": perPage,
	}, &result)
	if err != nil {
		return nil, err
	}

	items := make([]domain.MediaSummary, 0, len(result.Page.Media))
	for _, m := range result.Page.Media {
		items = append(items, c.normalizeSummary(m))
	}

	return items, nil
}

// SearchFirstID resolves a title to a catalog id with a single
// page-1/perPage-1 search. No match yields ErrNotFound; the caller
// reports it rather than retrying.
func (c *Client) SearchFirstID(ctx context.Context, title string, kind domain.MediaKind) (int, error) {
	items, err := c.Search(ctx, title, kind, 1, 1)
	if err != nil {
		return 0, err
	}
	if len(items) == 0 {
		return 0, ErrNotFound
	}
	return items[0].ID, nil
}

// Upcoming returns not-yet-released anime sorted by start date, beginning
// from today's compact date.
func (c *Client) Upcoming(ctx context.Context, perPage int) ([]domain.UpcomingEntry, error) {
	today := c.now()
	startDate := domain.FuzzyDate{Year: today.Year(), Month: int(today.Month()), Day: today.Day()}

	var page mediaPage
	err := c.do(ctx, "upcoming", upcomingQuery, map[string]any{
		"page":             1,
		"perPage":          perPage,
		"startDateGreater": startDate.Int(),
	}, &page)
	if err != nil {
		return nil, err
	}

	entries := make([]domain.UpcomingEntry, 0, len(page.Page.Media))
	for _, m := range page.Page.Media {
		entries = append(entries, c.normalizeUpcoming(m))
	}

	return entries, nil
}

// Recommendations returns the recommendation list for one catalog id.
func (c *Client) Recommendations(ctx context.Context, id int) ([]domain.Recommendation, error) {
	var envelope mediaEnvelope
	if err := c.do(ctx, "recommendations", recommendationsQuery, map[string]any{"id": id}, &envelope); err != nil {
		return nil, err
	}
	if envelope.Media == nil {
		return nil, ErrNotFound
	}

	return c.normalizeRecommendations(envelope.Media.Recommendations), nil
}

type studiosPage struct {
	Page struct {
		Studios []struct {
			Name string `json:"name"`
		} `json:"studios"`
	} `json:"Page"`
}

// Studios returns the most-favourited studio names, used to populate
// filter option lists.
func (c *Client) Studios(ctx context.Context, limit int) ([]string, error) {
	var page studiosPage
	if err := c.do(ctx, "studios", studiosQuery, map[string]any{"perPage": limit}, &page); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(page.Page.Studios))
	for _, s := range page.Page.Studios {
		names = append(names, s.Name)
	}

	return names, nil
}

// Filter runs a compiled filter query and returns normalized results.
func (c *Client) Filter(ctx context.Context, f FilterState) ([]domain.MediaSummary, error) {
	var page mediaPage
	if err := c.do(ctx, "filter", BuildFilterQuery(f), nil, &page); err != nil {
		return nil, err
	}

	items := make([]domain.MediaSummary, 0, len(page.Page.Media))
	for _, m := range page.Page.Media {
		items = append(items, c.normalizeSummary(m))
	}

	return items, nil
}
