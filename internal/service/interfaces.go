package service

import (
	"context"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/internal/dto"
	"github.com/dkhalizov/movielog/internal/tmdb"
)

// AuthService defines methods for authentication operations
type AuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req *dto.LoginRequest) (*domain.User, *domain.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*domain.TokenPair, error)
	// Authenticate verifies an access token and re-resolves its user from the
	// store, so a deleted account's outstanding token stops working within one
	// request.
	Authenticate(ctx context.Context, accessToken string) (*domain.User, error)
}

// UserService defines methods for profile operations
type UserService interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req *dto.UpdateProfileRequest) (*domain.User, error)
}

// MovieService defines methods for movie browsing and cache resolution
type MovieService interface {
	Search(ctx context.Context, query string, page int) (*tmdb.MoviePage, error)
	Popular(ctx context.Context, page int) (*tmdb.MoviePage, error)
	Similar(ctx context.Context, movieID int64, page int) (*tmdb.MoviePage, error)
	// Resolve confirms the movie exists upstream and returns the cached row,
	// populating the cache on miss (cache-aside).
	Resolve(ctx context.Context, movieID int64) (*domain.Movie, error)
}

// WatchlistService defines methods for watchlist operations
type WatchlistService interface {
	Add(ctx context.Context, userID string, movieID int64) (*domain.WatchlistEntry, error)
	Remove(ctx context.Context, userID string, movieID int64) error
	List(ctx context.Context, userID string, page, limit int) ([]*domain.WatchlistItem, int64, error)
}

// RatingService defines methods for rating operations
type RatingService interface {
	// Upsert creates or overwrites the user's rating for the movie. The
	// returned flag tells whether the row was newly created.
	Upsert(ctx context.Context, userID string, movieID int64, rating float64, review *string) (*domain.Rating, bool, error)
	Delete(ctx context.Context, userID string, movieID int64) error
	ListByMovie(ctx context.Context, movieID int64, page, limit int) ([]*domain.Rating, *domain.RatingStats, error)
	ListByUser(ctx context.Context, userID string, page, limit int) ([]*domain.Rating, int64, error)
}

// MetadataClient is the external movie metadata source as the services see it
type MetadataClient interface {
	SearchMovies(ctx context.Context, query string, page int) (*tmdb.MoviePage, error)
	PopularMovies(ctx context.Context, page int) (*tmdb.MoviePage, error)
	GetMovie(ctx context.Context, id int64) (*tmdb.Movie, error)
	SimilarMovies(ctx context.Context, id int64, page int) (*tmdb.MoviePage, error)
}
