package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/pkg/database"
)

// ratingRepository implements RatingRepository interface
type ratingRepository struct {
	db *database.Postgres
}

// NewRatingRepository creates a new rating repository
func NewRatingRepository(db *database.Postgres) RatingRepository {
	return &ratingRepository{db: db}
}

// Upsert inserts or overwrites the (user, movie) rating in one statement keyed
// on the UNIQUE(user_id, movie_id) constraint, so concurrent submissions for
// the same pair can never produce two rows.
func (r *ratingRepository) Upsert(ctx context.Context, rating *domain.Rating) (*domain.Rating, error) {
	query := `
		INSERT INTO ratings (id, user_id, movie_id, rating, review, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $6)
		ON CONFLICT (user_id, movie_id) DO UPDATE
		SET rating = EXCLUDED.rating,
		    review = EXCLUDED.review,
		    updated_at = EXCLUDED.updated_at
		RETURNING id, user_id, movie_id, rating, review, created_at, updated_at
	`

	if rating.ID == "" {
		rating.ID = uuid.New().String()
	}

	row := r.db.DB.QueryRowContext(ctx, query,
		rating.ID,
		rating.UserID,
		rating.MovieID,
		rating.Rating,
		rating.Review,
		time.Now(),
	)

	stored, err := scanRating(row)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert rating: %w", err)
	}

	return stored, nil
}

// Exists reports whether the user has already rated the movie
func (r *ratingRepository) Exists(ctx context.Context, userID string, movieID int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM ratings WHERE user_id = $1 AND movie_id = $2)`

	var exists bool
	if err := r.db.DB.QueryRowContext(ctx, query, userID, movieID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check rating: %w", err)
	}

	return exists, nil
}

// Delete removes the rating scoped to the owning user
func (r *ratingRepository) Delete(ctx context.Context, userID string, movieID int64) error {
	query := `DELETE FROM ratings WHERE user_id = $1 AND movie_id = $2`

	result, err := r.db.DB.ExecContext(ctx, query, userID, movieID)
	if err != nil {
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rowsAffected == 0 {
		return fmt.Errorf("rating for movie %d not found: %w", movieID, ErrNotFound)
	}

	return nil
}

// ListByMovie retrieves one page of ratings for a movie, most recently updated first
func (r *ratingRepository) ListByMovie(ctx context.Context, movieID int64, limit, offset int) ([]*domain.Rating, error) {
	query := `
		SELECT id, user_id, movie_id, rating, review, created_at, updated_at
		FROM ratings
		WHERE movie_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, movieID, limit, offset)
}

// StatsByMovie aggregates across all ratings for the movie, not just a page
func (r *ratingRepository) StatsByMovie(ctx context.Context, movieID int64) (*domain.RatingStats, error) {
	query := `SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM ratings WHERE movie_id = $1`

	stats := &domain.RatingStats{}
	err := r.db.DB.QueryRowContext(ctx, query, movieID).Scan(&stats.AverageRating, &stats.TotalRatings)
	if err != nil {
		return nil, fmt.Errorf("failed to get rating stats: %w", err)
	}

	return stats, nil
}

// ListByUser retrieves one page of a user's ratings, most recently updated first
func (r *ratingRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*domain.Rating, error) {
	query := `
		SELECT id, user_id, movie_id, rating, review, created_at, updated_at
		FROM ratings
		WHERE user_id = $1
		ORDER BY updated_at DESC
		LIMIT $2 OFFSET $3
	`

	return r.list(ctx, query, userID, limit, offset)
}

// CountByUser returns the total number of ratings a user has submitted
func (r *ratingRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM ratings WHERE user_id = $1`

	var count int64
	if err := r.db.DB.QueryRowContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}

	return count, nil
}

func (r *ratingRepository) list(ctx context.Context, query string, key any, limit, offset int) ([]*domain.Rating, error) {
	rows, err := r.db.DB.QueryContext(ctx, query, key, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings: %w", err)
	}
	defer rows.Close()

	// Initialized so an empty page serializes as [] rather than null
	ratings := []*domain.Rating{}
	for rows.Next() {
		rating := &domain.Rating{}
		var review sql.NullString

		err := rows.Scan(
			&rating.ID,
			&rating.UserID,
			&rating.MovieID,
			&rating.Rating,
			&review,
			&rating.CreatedAt,
			&rating.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rating: %w", err)
		}

		if review.Valid {
			rating.Review = &review.String
		}

		ratings = append(ratings, rating)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate ratings: %w", err)
	}

	return ratings, nil
}

func scanRating(row *sql.Row) (*domain.Rating, error) {
	rating := &domain.Rating{}
	var review sql.NullString

	err := row.Scan(
		&rating.ID,
		&rating.UserID,
		&rating.MovieID,
		&rating.Rating,
		&review,
		&rating.CreatedAt,
		&rating.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if review.Valid {
		rating.Review = &review.String
	}

	return rating, nil
}
