package service

import (
	"context"

	"github.com/animeworld/animeworld-api/internal/anilist"
	"github.com/animeworld/animeworld-api/internal/config"
	"github.com/animeworld/animeworld-api/internal/domain"
)

// mediaService implements MediaService by fronting the catalog client with
// the Redis cache. Only responses that change slowly are cached; search and
// filter results go straight through.
type mediaService struct {
	catalog *anilist.Client
	cache   *MediaCache
	cfg     config.CatalogConfig
}

// NewMediaService creates a new media service
func NewMediaService(catalog *anilist.Client, cache *MediaCache, cfg config.CatalogConfig) MediaService {
	return &mediaService{
		catalog: catalog,
		cache:   cache,
		cfg:     cfg,
	}
}

// Trending returns the trending list for kind. The second return reports
// whether the result is the static fallback; fallback lists are never
// cached so a recovered upstream replaces them immediately.
func (s *mediaService) Trending(ctx context.Context, kind domain.MediaKind, limit int) ([]domain.MediaSummary, bool) {
	key := trendingKey(kind, limit)

	var cached []domain.MediaSummary
	if s.cache.Get(ctx, key, &cached) {
		return cached, false
	}

	items, fallback := s.catalog.Trending(ctx, kind, limit)
	if !fallback {
		s.cache.Set(ctx, key, items, s.cfg.TrendingTTL.Duration)
	}
	return items, fallback
}

func (s *mediaService) ByID(ctx context.Context, id int) (*domain.MediaDetail, error) {
	key := detailKey(id)

	var cached domain.MediaDetail
	if s.cache.Get(ctx, key, &cached) {
		return &cached, nil
	}

	detail, err := s.catalog.ByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, detail, s.cfg.DetailTTL.Duration)
	return detail, nil
}

func (s *mediaService) Search(ctx context.Context, term string, kind domain.MediaKind, page, perPage int) ([]domain.MediaSummary, error) {
	return s.catalog.Search(ctx, term, kind, page, perPage)
}

func (s *mediaService) Filter(ctx context.Context, f anilist.FilterState) ([]domain.MediaSummary, error) {
	return s.catalog.Filter(ctx, f)
}

func (s *mediaService) Upcoming(ctx context.Context, perPage int) ([]domain.UpcomingEntry, error) {
	key := upcomingKey(perPage)

	var cached []domain.UpcomingEntry
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	items, err := s.catalog.Upcoming(ctx, perPage)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, items, s.cfg.TrendingTTL.Duration)
	return items, nil
}

func (s *mediaService) Schedule(ctx context.Context, daysAhead, perPage int) ([]domain.AiringDay, error) {
	key := scheduleKey(daysAhead, perPage)

	var cached []domain.AiringDay
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	days, err := s.catalog.Schedule(ctx, daysAhead, perPage)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, days, s.cfg.ScheduleTTL.Duration)
	return days, nil
}

func (s *mediaService) Recommendations(ctx context.Context, id int) ([]domain.Recommendation, error) {
	return s.catalog.Recommendations(ctx, id)
}

func (s *mediaService) Studios(ctx context.Context, limit int) ([]string, error) {
	key := studiosKey(limit)

	var cached []string
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	studios, err := s.catalog.Studios(ctx, limit)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, studios, s.cfg.TrendingTTL.Duration)
	return studios, nil
}
