package service

import (
	"context"

	"github.com/animeworld/animeworld-api/internal/anilist"
	"github.com/animeworld/animeworld-api/internal/domain"
	"github.com/animeworld/animeworld-api/internal/dto"
)

// UserService defines methods for user record operations
type UserService interface {
	CreateOrTouch(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserEnvelope, error)
	GetByExternalID(ctx context.Context, externalID string) (*domain.UserRecord, error)
	List(ctx context.Context) ([]*domain.UserRecord, error)
}

// MediaService defines the cached catalog operations behind the media routes
type MediaService interface {
	Trending(ctx context.Context, kind domain.MediaKind, limit int) ([]domain.MediaSummary, bool)
	ByID(ctx context.Context, id int) (*domain.MediaDetail, error)
	Search(ctx context.Context, term string, kind domain.MediaKind, page, perPage int) ([]domain.MediaSummary, error)
	Filter(ctx context.Context, f anilist.FilterState) ([]domain.MediaSummary, error)
	Upcoming(ctx context.Context, perPage int) ([]domain.UpcomingEntry, error)
	Schedule(ctx context.Context, daysAhead, perPage int) ([]domain.AiringDay, error)
	Recommendations(ctx context.Context, id int) ([]domain.Recommendation, error)
	Studios(ctx context.Context, limit int) ([]string, error)
}
