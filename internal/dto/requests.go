package dto

import "github.com/animeworld/animeworld-api/internal/domain"

// CreateUserRequest represents a create-or-touch user request. Only the
// external identifier is mandatory; everything else has derived defaults.
type CreateUserRequest struct {
	ExternalID  string `json:"externalId" binding:"required"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	DisplayName string `json:"displayName"`
	Email       string `json:"email" binding:"omitempty,email"`
	Phone       string `json:"phone"`
	CountryCode string `json:"countryCode"`
	GoogleAuth  bool   `json:"googleAuth"`
	PhoneAuth   bool   `json:"phoneAuth"`
}

// User create-or-touch outcome markers.
const (
	UserStatusCreated = "created"
	UserStatusUpdated = "updated"
)

// UserEnvelope wraps a user record with the create-or-touch outcome.
type UserEnvelope struct {
	Status string             `json:"status"`
	User   *domain.UserRecord `json:"user"`
}

// FilterRequest is a multi-select catalog filter state.
type FilterRequest struct {
	Genres []string `json:"genres"`
	Status []string `json:"status"`
	Years  []int    `json:"years"`
	Types  []string `json:"types"`
	Sort   string   `json:"sort"`
}

// MediaListResponse wraps a list of normalized catalog entries.
type MediaListResponse struct {
	Items    []domain.MediaSummary `json:"items"`
	Fallback bool                  `json:"fallback,omitempty"`
}

// ScheduleResponse is the grouped airing schedule for a day window.
type ScheduleResponse struct {
	Schedule []domain.AiringDay `json:"schedule"`
}

// AnalyzeResponse wraps a recognition result plus the outcome of the
// best-effort title-to-catalog-id resolution.
type AnalyzeResponse struct {
	Result        *domain.RecognitionResult `json:"result"`
	ResolveFailed bool                      `json:"resolveFailed,omitempty"`
}

// SuccessResponse represents a success response
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
