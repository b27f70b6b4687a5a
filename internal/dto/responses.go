package dto

import (
	"time"

	"github.com/dkhalizov/movielog/internal/domain"
)

// UserResponse represents a user in responses. It never carries credential
// fields.
type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	FirstName string  `json:"first_name"`
	LastName  string  `json:"last_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt string  `json:"updated_at"`
}

// NewUserResponse builds a UserResponse from a domain user
func NewUserResponse(user *domain.User) *UserResponse {
	return &UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Username:  user.Username,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Bio:       user.Bio,
		AvatarURL: user.AvatarURL,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
		UpdatedAt: user.UpdatedAt.Format(time.RFC3339),
	}
}

// AuthResponse represents a login or refresh response
type AuthResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token"`
	TokenType    string        `json:"token_type"`
	ExpiresIn    int           `json:"expires_in"`
	User         *UserResponse `json:"user,omitempty"`
}

// RatingResponse wraps an upserted rating together with whether the call
// created the row, so the handler can pick 201 vs 200
type RatingResponse struct {
	Rating  *domain.Rating `json:"rating"`
	Created bool           `json:"created"`
}

// WatchlistListResponse is one page of a user's watchlist
type WatchlistListResponse struct {
	Results []*domain.WatchlistItem `json:"results"`
	Page    int                     `json:"page"`
	Limit   int                     `json:"limit"`
	Total   int64                   `json:"total"`
}

// RatingListResponse is one page of ratings plus the all-rows aggregate when
// listing by movie
type RatingListResponse struct {
	Results       []*domain.Rating `json:"results"`
	Page          int              `json:"page"`
	Limit         int              `json:"limit"`
	Total         int64            `json:"total"`
	AverageRating *float64         `json:"average_rating,omitempty"`
	TotalRatings  *int64           `json:"total_ratings,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string      `json:"error"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}
