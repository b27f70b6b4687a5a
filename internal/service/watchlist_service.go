package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/internal/repository"
)

// watchlistService implements WatchlistService interface
type watchlistService struct {
	watchlistRepo repository.WatchlistRepository
	movies        MovieService
}

// NewWatchlistService creates a new watchlist service
func NewWatchlistService(watchlistRepo repository.WatchlistRepository, movies MovieService) WatchlistService {
	return &watchlistService{
		watchlistRepo: watchlistRepo,
		movies:        movies,
	}
}

// Add puts a movie on the user's watchlist. The duplicate check runs before
// any upstream call so a known duplicate never costs an external request; the
// database constraint still backstops the race between two identical requests.
func (s *watchlistService) Add(ctx context.Context, userID string, movieID int64) (*domain.WatchlistEntry, error) {
	exists, err := s.watchlistRepo.Exists(ctx, userID, movieID)
	if err != nil {
		return nil, fmt.Errorf("failed to check watchlist: %w", err)
	}
	if exists {
		return nil, domain.ErrDuplicateEntry
	}

	if _, err := s.movies.Resolve(ctx, movieID); err != nil {
		return nil, err
	}

	entry := &domain.WatchlistEntry{
		UserID:  userID,
		MovieID: movieID,
	}

	if err := s.watchlistRepo.Create(ctx, entry); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			return nil, domain.ErrDuplicateEntry
		}
		return nil, fmt.Errorf("failed to create watchlist entry: %w", err)
	}

	return entry, nil
}

// Remove deletes the user's own entry. An entry that does not exist and an
// entry owned by another user fail identically with ErrNotFound.
func (s *watchlistService) Remove(ctx context.Context, userID string, movieID int64) error {
	if err := s.watchlistRepo.Delete(ctx, userID, movieID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("failed to remove watchlist entry: %w", err)
	}

	return nil
}

// List returns one page of the user's watchlist plus the total entry count
func (s *watchlistService) List(ctx context.Context, userID string, page, limit int) ([]*domain.WatchlistItem, int64, error) {
	offset := (page - 1) * limit

	items, err := s.watchlistRepo.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list watchlist: %w", err)
	}

	total, err := s.watchlistRepo.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count watchlist: %w", err)
	}

	return items, total, nil
}
