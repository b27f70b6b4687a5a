package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/internal/repository"
	"github.com/dkhalizov/movielog/internal/tmdb"
)

// movieService implements MovieService interface
type movieService struct {
	movieRepo repository.MovieRepository
	metadata  MetadataClient
	logger    *zap.Logger
}

// NewMovieService creates a new movie service
func NewMovieService(movieRepo repository.MovieRepository, metadata MetadataClient, logger *zap.Logger) MovieService {
	return &movieService{
		movieRepo: movieRepo,
		metadata:  metadata,
		logger:    logger,
	}
}

// Search searches the upstream source for movies matching the query
func (s *movieService) Search(ctx context.Context, query string, page int) (*tmdb.MoviePage, error) {
	if query == "" {
		return nil, domain.NewValidationError("search query is required")
	}

	return s.metadata.SearchMovies(ctx, query, page)
}

// Popular returns one upstream page of currently popular movies
func (s *movieService) Popular(ctx context.Context, page int) (*tmdb.MoviePage, error) {
	return s.metadata.PopularMovies(ctx, page)
}

// Similar returns one upstream page of movies similar to the given one
func (s *movieService) Similar(ctx context.Context, movieID int64, page int) (*tmdb.MoviePage, error) {
	return s.metadata.SimilarMovies(ctx, movieID, page)
}

// Resolve confirms the movie still exists upstream and returns the local
// cache row, inserting one on miss. The upstream check runs on every call;
// a cached row alone is not proof the movie is still resolvable. Cache writes
// are an optimization, so their failures are logged and swallowed.
func (s *movieService) Resolve(ctx context.Context, movieID int64) (*domain.Movie, error) {
	cached, err := s.movieRepo.GetByID(ctx, movieID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to read movie cache: %w", err)
	}

	upstream, err := s.metadata.GetMovie(ctx, movieID)
	if err != nil {
		// ErrMovieNotFound and upstream failures propagate as-is; a transport
		// error must never be masked as "not found"
		return nil, err
	}

	if cached != nil {
		return cached, nil
	}

	movie := &domain.Movie{
		ID:          upstream.ID,
		Title:       upstream.Title,
		Overview:    upstream.Overview,
		ReleaseDate: upstream.ReleaseDate,
		PosterPath:  upstream.PosterPath,
		VoteAverage: upstream.VoteAverage,
	}

	if err := s.movieRepo.Insert(ctx, movie); err != nil {
		s.logger.Warn("failed to cache movie",
			zap.Int64("movie_id", movieID),
			zap.Error(err),
		)
	}

	return movie, nil
}
