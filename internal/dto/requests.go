package dto

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Username  string `json:"username" binding:"required,min=3,max=30"`
	Password  string `json:"password" binding:"required,min=8"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshRequest represents a token refresh request
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

// UpdateProfileRequest represents a profile update request. Only display
// fields are accepted; email, username and password cannot be changed here.
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
}

// AddWatchlistRequest represents a watchlist add request
type AddWatchlistRequest struct {
	MovieID int64 `json:"movie_id" binding:"required"`
}

// UpsertRatingRequest represents a rating submission. The score range is
// validated by the workflow so out-of-range values get the same error shape
// as other validation failures.
type UpsertRatingRequest struct {
	Rating float64 `json:"rating"`
	Review *string `json:"review"`
}
