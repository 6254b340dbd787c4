package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/animeworld/animeworld-api/internal/domain"
	"github.com/animeworld/animeworld-api/internal/dto"
	"github.com/animeworld/animeworld-api/internal/repository"
)

// defaultCountryCode is used when the identity provider supplies no phone
// region for the account.
const defaultCountryCode = "+91"

// userService implements UserService interface
type userService struct {
	userRepo repository.UserRepository
	logger   *zap.Logger
}

// NewUserService creates a new user service
func NewUserService(userRepo repository.UserRepository, logger *zap.Logger) UserService {
	return &userService{
		userRepo: userRepo,
		logger:   logger,
	}
}

// CreateOrTouch records a sign-in from the identity provider. A record
// matching the external id or email is touched rather than duplicated, so
// repeated sign-ins are idempotent.
func (s *userService) CreateOrTouch(ctx context.Context, req *dto.CreateUserRequest) (*dto.UserEnvelope, error) {
	// Emails are stored lowercased, so every lookup must compare the same
	// form or a case-differing sign-in slips past the duplicate checks and
	// dies on the unique index instead.
	email := normalizeEmail(req.Email)

	existing, err := s.userRepo.GetByExternalIDOrEmail(ctx, req.ExternalID, email)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check user existence: %w", err)
	}

	if existing != nil {
		if err := s.userRepo.TouchLastLogin(ctx, existing.ID); err != nil {
			// A stale last_login is not worth failing the sign-in over.
			s.logger.Warn("failed to touch last login",
				zap.String("user_id", existing.ID),
				zap.Error(err))
		}
		user, err := s.userRepo.GetByExternalID(ctx, existing.ExternalID)
		if err != nil {
			return nil, fmt.Errorf("failed to reload user: %w", err)
		}
		return &dto.UserEnvelope{Status: dto.UserStatusUpdated, User: user}, nil
	}

	user := s.buildRecord(req, email)
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			// Lost a race with a concurrent sign-in for the same account.
			// Fall back to touching the record that won.
			winner, getErr := s.userRepo.GetByExternalIDOrEmail(ctx, req.ExternalID, email)
			if getErr != nil {
				return nil, fmt.Errorf("failed to resolve duplicate user: %w", getErr)
			}
			if touchErr := s.userRepo.TouchLastLogin(ctx, winner.ID); touchErr != nil {
				s.logger.Warn("failed to touch last login",
					zap.String("user_id", winner.ID),
					zap.Error(touchErr))
			}
			return &dto.UserEnvelope{Status: dto.UserStatusUpdated, User: winner}, nil
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	created, err := s.userRepo.GetByExternalID(ctx, user.ExternalID)
	if err != nil {
		return nil, fmt.Errorf("failed to reload user: %w", err)
	}
	return &dto.UserEnvelope{Status: dto.UserStatusCreated, User: created}, nil
}

// GetByExternalID gets a single user record
func (s *userService) GetByExternalID(ctx context.Context, externalID string) (*domain.UserRecord, error) {
	return s.userRepo.GetByExternalID(ctx, externalID)
}

// List returns all user records, newest first
func (s *userService) List(ctx context.Context) ([]*domain.UserRecord, error) {
	return s.userRepo.List(ctx)
}

// buildRecord fills the profile gaps the identity provider leaves. Every
// stored record has a non-empty username, first name, display name and
// country code regardless of what the provider sent. email must already
// be normalized by the caller.
func (s *userService) buildRecord(req *dto.CreateUserRequest, email string) *domain.UserRecord {
	user := &domain.UserRecord{
		ExternalID:  req.ExternalID,
		Username:    strings.TrimSpace(req.Username),
		FirstName:   strings.TrimSpace(req.FirstName),
		LastName:    strings.TrimSpace(req.LastName),
		DisplayName: strings.TrimSpace(req.DisplayName),
		CountryCode: strings.TrimSpace(req.CountryCode),
		GoogleAuth:  req.GoogleAuth,
		PhoneAuth:   req.PhoneAuth,
	}

	if email != "" {
		user.Email = &email
	}
	if req.Phone != "" {
		phone := strings.TrimSpace(req.Phone)
		user.Phone = &phone
	}

	if user.Username == "" {
		user.Username = deriveUsername(email, req.ExternalID)
	}
	if user.FirstName == "" {
		user.FirstName = "User"
	}
	if user.DisplayName == "" {
		user.DisplayName = deriveDisplayName(user.FirstName, user.LastName)
	}
	if user.CountryCode == "" {
		user.CountryCode = defaultCountryCode
	}

	return user
}

// deriveUsername prefers the email local part; without an email it falls
// back to a prefix of the provider id, which is stable across sign-ins.
func deriveUsername(email, externalID string) string {
	if email != "" {
		if at := strings.Index(email, "@"); at > 0 {
			return email[:at]
		}
	}
	id := externalID
	if len(id) > 8 {
		id = id[:8]
	}
	return "user_" + id
}

// normalizeEmail is the single place email comparison form is decided.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func deriveDisplayName(firstName, lastName string) string {
	if firstName != "" && firstName != "User" && lastName != "" {
		return firstName + " " + lastName
	}
	return "User"
}
