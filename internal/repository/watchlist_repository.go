package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/pkg/database"
)

// watchlistRepository implements WatchlistRepository interface
type watchlistRepository struct {
	db *database.Postgres
}

// NewWatchlistRepository creates a new watchlist repository
func NewWatchlistRepository(db *database.Postgres) WatchlistRepository {
	return &watchlistRepository{db: db}
}

// Create creates a new watchlist entry. The UNIQUE(user_id, movie_id)
// constraint is the authoritative duplicate guard; the service-level existence
// check is only an early exit.
func (r *watchlistRepository) Create(ctx context.Context, entry *domain.WatchlistEntry) error {
	query := `
		INSERT INTO watchlist (id, user_id, movie_id, added_at)
		VALUES ($1, $2, $3, $4)
	`

	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now()
	}

	_, err := r.db.DB.ExecContext(ctx, query,
		entry.ID,
		entry.UserID,
		entry.MovieID,
		entry.AddedAt,
	)

	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return fmt.Errorf("movie %d already in watchlist: %w", entry.MovieID, ErrDuplicateEntry)
		}
		return fmt.Errorf("failed to create watchlist entry: %w", err)
	}

	return nil
}

// Exists reports whether the user already has the movie on their watchlist
func (r *watchlistRepository) Exists(ctx context.Context, userID string, movieID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM watchlist WHERE user_id = $1 AND movie_id = $2)`

	var exists bool
	if err := r.db.DB.QueryRowContext(ctx, query, userID, movieID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check watchlist entry: %w", err)
	}

	return exists, nil
}

// Delete removes the entry scoped to the owning user. A missing row and a row
// owned by someone else both come back as ErrNotFound.
func (r *watchlistRepository) Delete(ctx context.Context, userID string, movieID int64) error {
	query := `DELETE FROM watchlist WHERE user_id = $1 AND movie_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("watchlist entry for movie %d not found: %w", movieID, ErrNotFound)
	}

	return nil
}

// ListByUser retrieves one page of a user's watchlist, most recently added
// first, with the cached movie row joined in
func (r *watchlistRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.WatchlistItem, error) {
	query := `
		SELECT w.id, w.user_id, w.movie_id, w.added_at,
		       m.id, m.title, m.overview, m.release_date, m.poster_path, m.vote_average, m.created_at, m.updated_at
		FROM watchlist w
		JOIN movies m ON m.id = w.movie_id
		WHERE w.user_id = $1
		ORDER BY w.added_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.DB.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list watchlist: %w", err)
	}
	defer rows.Close()

	// Initialized so an empty page serializes as [] rather than null
	items := []*domain.WatchlistItem{}
	for rows.Next() {
		item := &domain.WatchlistItem{}
		err := rows.Scan(
			&item.ID,
			&item.UserID,
			&item.MovieID,
			&item.AddedAt,
			&item.Movie.ID,
			&item.Movie.Title,
			&item.Movie.Overview,
			&item.Movie.ReleaseDate,
			&item.Movie.PosterPath,
			&item.Movie.VoteAverage,
			&item.Movie.CreatedAt,
			&item.Movie.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan watchlist entry: %w", err)
		}
		items = append(items, item)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate watchlist: %w", err)
	}

	return items, nil
}

// CountByUser returns the total number of entries on a user's watchlist
func (r *watchlistRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM watchlist WHERE user_id = $1`

	var count int64
	if err := r.db.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count watchlist entries: %w", err)
	}

	return count, nil
}
