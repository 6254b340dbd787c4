package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/animeworld/animeworld-api/internal/domain"
	"github.com/animeworld/animeworld-api/pkg/database"
	"github.com/google/uuid"
	"github.com/lib/pq"
)

const userColumns = `id, external_id, username, first_name, last_name, display_name,
	email, phone, country_code, google_auth, phone_auth, is_admin, created_at, last_login`

// userRepository implements UserRepository interface
type userRepository struct {
	db *database.Postgres
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.Postgres) UserRepository {
	return &userRepository{db: db}
}

// Create creates a new user record in the database
func (r *userRepository) Create(ctx context.Context, user *domain.UserRecord) error {
	query := `
		INSERT INTO users (id, external_id, username, first_name, last_name, display_name,
			email, phone, country_code, google_auth, phone_auth, is_admin, created_at, last_login)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	if user.ID == "" {
		user.ID = uuid.New().String()
	}

	now := time.Now()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	if user.LastLogin.IsZero() {
		user.LastLogin = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		user.ID,
		user.ExternalID,
		user.Username,
		user.FirstName,
		user.LastName,
		user.DisplayName,
		user.Email,
		user.Phone,
		user.CountryCode,
		user.GoogleAuth,
		user.PhoneAuth,
		user.IsAdmin,
		user.CreatedAt,
		user.LastLogin,
	)

	if err != nil {
		// Unique violation on external_id or the partial email index
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code == "23505" {
				return fmt.Errorf("user %s already exists: %w", user.ExternalID, ErrDuplicate)
			}
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByExternalID retrieves a user record by its provider identifier
func (r *userRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.UserRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM users WHERE external_id = $1`, userColumns)

	user, err := r.scanOne(r.db.DB.QueryRowContext(ctx, query, externalID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user with external id %s not found: %w", externalID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by external id: %w", err)
	}

	return user, nil
}

// GetByExternalIDOrEmail retrieves the record matching either key. A record
// sharing just the email counts as the same identity for create-or-touch.
func (r *userRepository) GetByExternalIDOrEmail(ctx context.Context, externalID, email string) (*domain.UserRecord, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM users
		WHERE external_id = $1 OR ($2 <> '' AND email = $2)
		ORDER BY (external_id = $1) DESC
		LIMIT 1`, userColumns)

	user, err := r.scanOne(r.db.DB.QueryRowContext(ctx, query, externalID, email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user %s not found: %w", externalID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user by external id or email: %w", err)
	}

	return user, nil
}

// List returns all user records ordered by creation time, newest first
func (r *userRepository) List(ctx context.Context) ([]*domain.UserRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM users ORDER BY created_at DESC`, userColumns)

	rows, err := r.db.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	users := make([]*domain.UserRecord, 0)
	for rows.Next() {
		user, err := r.scanOne(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user row: %w", err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate user rows: %w", err)
	}

	return users, nil
}

// TouchLastLogin refreshes the last login timestamp for a user record
func (r *userRepository) TouchLastLogin(ctx context.Context, id string) error {
	query := `
		UPDATE users
		SET last_login = $1
		WHERE id = $2
	`

	result, err := r.db.DB.ExecContext(ctx, query, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to touch last login: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("user with id %s not found: %w", id, ErrNotFound)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *userRepository) scanOne(row rowScanner) (*domain.UserRecord, error) {
	user := &domain.UserRecord{}
	var email, phone sql.NullString

	err := row.Scan(
		&user.ID,
		&user.ExternalID,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.DisplayName,
		&email,
		&phone,
		&user.CountryCode,
		&user.GoogleAuth,
		&user.PhoneAuth,
		&user.IsAdmin,
		&user.CreatedAt,
		&user.LastLogin,
	)
	if err != nil {
		return nil, err
	}

	if email.Valid {
		user.Email = &email.String
	}
	if phone.Valid {
		user.Phone = &phone.String
	}

	return user, nil
}
