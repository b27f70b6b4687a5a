package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/internal/repository"
)

// ratingService implements RatingService interface
type ratingService struct {
	ratingRepo repository.RatingRepository
	movies     MovieService
}

// NewRatingService creates a new rating service
func NewRatingService(ratingRepo repository.RatingRepository, movies MovieService) RatingService {
	return &ratingService{
		ratingRepo: ratingRepo,
		movies:     movies,
	}
}

// Upsert creates or overwrites the user's rating for the movie. The existence
// pre-check only computes the created/updated flag; the write itself is a
// single atomic upsert keyed on (user_id, movie_id).
func (s *ratingService) Upsert(ctx context.Context, userID string, movieID int64, rating float64, review *string) (*domain.Rating, bool, error) {
	if rating < domain.MinRating || rating > domain.MaxRating {
		return nil, false, domain.NewValidationError("rating must be between %g and %g", domain.MinRating, domain.MaxRating)
	}

	if _, err := s.movies.Resolve(ctx, movieID); err != nil {
		return nil, false, err
	}

	exists, err := s.ratingRepo.Exists(ctx, userID, movieID)
	if err != nil {
		return nil, false, fmt.Errorf("failed to check rating: %w", err)
	}

	stored, err := s.ratingRepo.Upsert(ctx, &domain.Rating{
		UserID:  userID,
		MovieID: movieID,
		Rating:  rating,
		Review:  review,
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to upsert rating: %w", err)
	}

	return stored, !exists, nil
}

// Delete removes the user's own rating; missing and foreign rows fail alike
func (s *ratingService) Delete(ctx context.Context, userID string, movieID int64) error {
	if err := s.ratingRepo.Delete(ctx, userID, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to delete rating: %w", err)
	}

	return nil
}

// ListByMovie returns one page of a movie's ratings plus aggregates computed
// over every rating for that movie
func (s *ratingService) ListByMovie(ctx context.Context, movieID int64, page, limit int) ([]*domain.Rating, *domain.RatingStats, error) {
	offset := (page - 1) * limit

	ratings, err := s.ratingRepo.ListByMovie(ctx, movieID, limit, offset)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to list ratings: %w", err)
	}

	stats, err := s.ratingRepo.StatsByMovie(ctx, movieID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get rating stats: %w", err)
	}

	return ratings, stats, nil
}

// ListByUser returns one page of the user's ratings plus the total count
func (s *ratingService) ListByUser(ctx context.Context, userID string, page, limit int) ([]*domain.Rating, int64, error) {
	offset := (page - 1) * limit

	ratings, err := s.ratingRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list ratings: %w", err)
	}

	total, err := s.ratingRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count ratings: %w", err)
	}

	return ratings, total, nil
}
