package repository

import (
	"context"

	"github.com/dkhalizov/movielog/internal/domain"
)

// UserRepository defines methods for user operations
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	// GetByEmailWithPassword is the only read path that loads the password
	// hash; every other lookup leaves it empty.
	GetByEmailWithPassword(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error)
}

// MovieRepository defines methods for the local movie cache
type MovieRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Movie, error)
	// Insert populates the cache; an already-present row is not an error.
	Insert(ctx context.Context, movie *domain.Movie) error
}

// WatchlistRepository defines methods for watchlist operations
type WatchlistRepository interface {
	Create(ctx context.Context, entry *domain.WatchlistEntry) error
	Exists(ctx context.Context, userID string, movieID int64) (bool, error)
	Delete(ctx context.Context, userID string, movieID int64) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.WatchlistItem, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

// RatingRepository defines methods for rating operations
type RatingRepository interface {
	// Upsert inserts or overwrites the (user, movie) rating atomically and
	// returns the resulting row.
	Upsert(ctx context.Context, rating *domain.Rating) (*domain.Rating, error)
	Exists(ctx context.Context, userID string, movieID int64) (bool, error)
	Delete(ctx context.Context, userID string, movieID int64) error
	ListByMovie(ctx context.Context, movieID int64, limit, offset int) ([]*domain.Rating, error)
	StatsByMovie(ctx context.Context, movieID int64) (*domain.RatingStats, error)
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Rating, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}
