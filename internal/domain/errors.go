package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// Expected workflow outcomes. Handlers match on these with errors.Is instead
// of inspecting error strings.
var (
	// ErrEmailTaken is returned when registering with an email that already exists
	ErrEmailTaken = errors.New("user with this email already exists")

	// ErrUsernameTaken is returned when registering with a username that already exists
	ErrUsernameTaken = errors.New("user with this username already exists")

	// ErrInvalidCredentials is the single failure for both an unknown email and
	// a wrong password, so a login attempt cannot probe which part was wrong
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrInvalidToken is returned for a malformed or tampered token
	ErrInvalidToken = errors.New("invalid token")

	// ErrTokenExpired is returned for a well-formed token past its expiry
	ErrTokenExpired = errors.New("token expired")

	// ErrUserNotFound is returned when a token verifies but its user no longer exists
	ErrUserNotFound = errors.New("user not found")

	// ErrMovieNotFound is returned when the upstream source does not know the movie
	ErrMovieNotFound = errors.New("movie not found")

	// ErrDuplicateEntry is returned when a (user, movie) watchlist row already exists
	ErrDuplicateEntry = errors.New("movie is already in the watchlist")

	// ErrNotFound is returned for a missing or other-user-owned resource; the two
	// cases are deliberately indistinguishable
	ErrNotFound = errors.New("record not found")
)

// ValidationError reports malformed input, rejected before any side effect.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError creates a ValidationError with a formatted message
func NewValidationError(format string, args ...any) *ValidationError {
	return &ValidationError{Message: fmt.Sprintf(format, args...)}
}

// UpstreamError reports a failure talking to the external metadata source,
// carrying the upstream status code so the boundary can pick a response code.
type UpstreamError struct {
	StatusCode int
	Message    string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited reports whether the upstream rejected the call for quota reasons
func (e *UpstreamError) IsRateLimited() bool {
	return e.StatusCode == http.StatusTooManyRequests
}

// IsAuthFailure reports whether the upstream rejected our API key
func (e *UpstreamError) IsAuthFailure() bool {
	return e.StatusCode == http.StatusUnauthorized
}
