package repository

import (
	"context"

	"github.com/animeworld/animeworld-api/internal/domain"
)

// UserRepository defines methods for user record operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.UserRecord) error
	GetByExternalID(ctx context.Context, externalID string) (*domain.UserRecord, error)
	// GetByExternalIDOrEmail finds the record matching either key; email is
	// ignored when empty. Backs the create-or-touch duplicate check.
	GetByExternalIDOrEmail(ctx context.Context, externalID, email string) (*domain.UserRecord, error)
	List(ctx context.Context) ([]*domain.UserRecord, error)
	TouchLastLogin(ctx context.Context, id string) error
}
