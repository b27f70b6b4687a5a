package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/pkg/database"
)

// movieRepository implements MovieRepository interface
type movieRepository struct {
	db *database.Postgres
}

// NewMovieRepository creates a new movie cache repository
func NewMovieRepository(db *database.Postgres) MovieRepository {
	return &movieRepository{db: db}
}

// GetByID retrieves a cached movie by its upstream id
func (r *movieRepository) GetByID(ctx context.Context, id int64) (*domain.Movie, error) {
	query := `
		SELECT id, title, overview, release_date, poster_path, vote_average, created_at, updated_at
		FROM movies
		WHERE id = $1
	`

	movie := &domain.Movie{}
	err := r.db.DB.QueryRowContext(ctx, query, id).Scan(
		&movie.ID,
		&movie.Title,
		&movie.Overview,
		&movie.ReleaseDate,
		&movie.PosterPath,
		&movie.VoteAverage,
		&movie.CreatedAt,
		&movie.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("movie with id %d not found: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get movie by id: %w", err)
	}

	return movie, nil
}

// Insert populates one cache row. The id is the upstream identifier, so a
// concurrent insert of the same movie is not an error: ON CONFLICT DO NOTHING
// leaves the row the first writer produced.
func (r *movieRepository) Insert(ctx context.Context, movie *domain.Movie) error {
	query := `
		INSERT INTO movies (id, title, overview, release_date, poster_path, vote_average, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`

	now := time.Now()
	if movie.CreatedAt.IsZero() {
		movie.CreatedAt = now
	}
	if movie.UpdatedAt.IsZero() {
		movie.UpdatedAt = now
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		movie.ID,
		movie.Title,
		movie.Overview,
		movie.ReleaseDate,
		movie.PosterPath,
		movie.VoteAverage,
		movie.CreatedAt,
		movie.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert movie: %w", err)
	}

	return nil
}
