package domain

import "time"

// UserRecord represents a profile linked to an external identity provider.
// The provider owns authentication entirely; this record only mirrors the
// stable identifier it hands us plus optional profile fields.
type UserRecord struct {
	ID          string    `json:"id" db:"id"`
	ExternalID  string    `json:"externalId" db:"external_id"`
	Username    string    `json:"username" db:"username"`
	FirstName   string    `json:"firstName" db:"first_name"`
	LastName    string    `json:"lastName" db:"last_name"`
	DisplayName string    `json:"displayName" db:"display_name"`
	Email       *string   `json:"email" db:"email"`
	Phone       *string   `json:"phone" db:"phone"`
	CountryCode string    `json:"countryCode" db:"country_code"`
	GoogleAuth  bool      `json:"googleAuth" db:"google_auth"`
	PhoneAuth   bool      `json:"phoneAuth" db:"phone_auth"`
	IsAdmin     bool      `json:"isAdmin" db:"is_admin"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	LastLogin   time.Time `json:"lastLogin" db:"last_login"`
}
