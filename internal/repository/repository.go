package repository

import (
	"github.com/dkhalizov/movielog/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User      UserRepository
	Movie     MovieRepository
	Watchlist WatchlistRepository
	Rating    RatingRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:      NewUserRepository(db),
		Movie:     NewMovieRepository(db),
		Watchlist: NewWatchlistRepository(db),
		Rating:    NewRatingRepository(db),
	}
}
