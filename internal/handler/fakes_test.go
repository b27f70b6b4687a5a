package handler

import (
	"context"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/internal/dto"
)

// Stub services for handler tests. Each method delegates to an optional
// function field, so a test only wires the calls it expects.

type stubAuthService struct {
	authenticateFn func(ctx context.Context, accessToken string) (*domain.User, error)
}

func (s *stubAuthService) Register(context.Context, *dto.RegisterRequest) (*domain.User, error) {
	panic("unexpected call to Register")
}

func (s *stubAuthService) Login(context.Context, *dto.LoginRequest) (*domain.User, *domain.TokenPair, error) {
	panic("unexpected call to Login")
}

func (s *stubAuthService) Refresh(context.Context, string) (*domain.TokenPair, error) {
	panic("unexpected call to Refresh")
}

func (s *stubAuthService) Authenticate(ctx context.Context, accessToken string) (*domain.User, error) {
	return s.authenticateFn(ctx, accessToken)
}

type stubRatingService struct {
	upsertFn      func(ctx context.Context, userID string, movieID int64, rating float64, review *string) (*domain.Rating, bool, error)
	deleteFn      func(ctx context.Context, userID string, movieID int64) error
	listByMovieFn func(ctx context.Context, movieID int64, page, limit int) ([]*domain.Rating, *domain.RatingStats, error)
	listByUserFn  func(ctx context.Context, userID string, page, limit int) ([]*domain.Rating, int64, error)
}

func (s *stubRatingService) Upsert(ctx context.Context, userID string, movieID int64, rating float64, review *string) (*domain.Rating, bool, error) {
	return s.upsertFn(ctx, userID, movieID, rating, review)
}

func (s *stubRatingService) Delete(ctx context.Context, userID string, movieID int64) error {
	return s.deleteFn(ctx, userID, movieID)
}

func (s *stubRatingService) ListByMovie(ctx context.Context, movieID int64, page, limit int) ([]*domain.Rating, *domain.RatingStats, error) {
	return s.listByMovieFn(ctx, movieID, page, limit)
}

func (s *stubRatingService) ListByUser(ctx context.Context, userID string, page, limit int) ([]*domain.Rating, int64, error) {
	return s.listByUserFn(ctx, userID, page, limit)
}
