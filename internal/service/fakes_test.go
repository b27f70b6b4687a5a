package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/internal/repository"
	"github.com/dkhalizov/movielog/internal/tmdb"
)

// In-memory repository fakes backing the service tests. They mimic the
// constraint behavior of the real adapters: uniqueness violations come back
// as the same sentinel errors lib/pq unique violations are mapped to.

type fakeUserRepo struct {
	users map[string]*domain.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (r *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	for _, u := range r.users {
		if u.Email == user.Email {
			return fmt.Errorf("user with email %s already exists: %w", user.Email, repository.ErrDuplicateEmail)
		}
		if u.Username == user.Username {
			return fmt.Errorf("user with username %s already exists: %w", user.Username, repository.ErrDuplicateUsername)
		}
	}
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now
	stored := *user
	r.users[user.ID] = &stored
	return nil
}

func (r *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("user with id %s not found: %w", id, repository.ErrNotFound)
	}
	public := *u
	public.PasswordHash = ""
	return &public, nil
}

func (r *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			public := *u
			public.PasswordHash = ""
			return &public, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found: %w", email, repository.ErrNotFound)
}

func (r *fakeUserRepo) GetByEmailWithPassword(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			copy := *u
			return &copy, nil
		}
	}
	return nil, fmt.Errorf("user with email %s not found: %w", email, repository.ErrNotFound)
}

func (r *fakeUserRepo) UpdateProfile(_ context.Context, userID string, update domain.ProfileUpdate) (*domain.User, error) {
	u, ok := r.users[userID]
	if !ok {
		return nil, fmt.Errorf("user with id %s not found: %w", userID, repository.ErrNotFound)
	}
	if update.FirstName != nil {
		u.FirstName = *update.FirstName
	}
	if update.LastName != nil {
		u.LastName = *update.LastName
	}
	if update.Bio != nil {
		u.Bio = update.Bio
	}
	if update.AvatarURL != nil {
		u.AvatarURL = update.AvatarURL
	}
	u.UpdatedAt = time.Now()
	public := *u
	public.PasswordHash = ""
	return &public, nil
}

type fakeMovieRepo struct {
	movies    map[int64]*domain.Movie
	insertErr error
	inserts   int
}

func newFakeMovieRepo() *fakeMovieRepo {
	return &fakeMovieRepo{movies: map[int64]*domain.Movie{}}
}

func (r *fakeMovieRepo) GetByID(_ context.Context, id int64) (*domain.Movie, error) {
	m, ok := r.movies[id]
	if !ok {
		return nil, fmt.Errorf("movie with id %d not found: %w", id, repository.ErrNotFound)
	}
	copy := *m
	return &copy, nil
}

func (r *fakeMovieRepo) Insert(_ context.Context, movie *domain.Movie) error {
	r.inserts++
	if r.insertErr != nil {
		return r.insertErr
	}
	if _, ok := r.movies[movie.ID]; ok {
		return nil
	}
	stored := *movie
	r.movies[movie.ID] = &stored
	return nil
}

type watchlistKey struct {
	userID  string
	movieID int64
}

type fakeWatchlistRepo struct {
	entries map[watchlistKey]*domain.WatchlistEntry
	movies  *fakeMovieRepo
}

func newFakeWatchlistRepo(movies *fakeMovieRepo) *fakeWatchlistRepo {
	return &fakeWatchlistRepo{
		entries: map[watchlistKey]*domain.WatchlistEntry{},
		movies:  movies,
	}
}

func (r *fakeWatchlistRepo) Create(_ context.Context, entry *domain.WatchlistEntry) error {
	key := watchlistKey{entry.UserID, entry.MovieID}
	if _, ok := r.entries[key]; ok {
		return fmt.Errorf("movie %d already in watchlist: %w", entry.MovieID, repository.ErrDuplicateEntry)
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.AddedAt.IsZero() {
		entry.AddedAt = time.Now()
	}
	stored := *entry
	r.entries[key] = &stored
	return nil
}

func (r *fakeWatchlistRepo) Exists(_ context.Context, userID string, movieID int64) (bool, error) {
	_, ok := r.entries[watchlistKey{userID, movieID}]
	return ok, nil
}

func (r *fakeWatchlistRepo) Delete(_ context.Context, userID string, movieID int64) error {
	key := watchlistKey{userID, movieID}
	if _, ok := r.entries[key]; !ok {
		return fmt.Errorf("watchlist entry for movie %d not found: %w", movieID, repository.ErrNotFound)
	}
	delete(r.entries, key)
	return nil
}

func (r *fakeWatchlistRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*domain.WatchlistItem, error) {
	items := []*domain.WatchlistItem{}
	for key, entry := range r.entries {
		if key.userID != userID {
			continue
		}
		item := &domain.WatchlistItem{WatchlistEntry: *entry}
		if m, ok := r.movies.movies[entry.MovieID]; ok {
			item.Movie = *m
		}
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].AddedAt.After(items[j].AddedAt)
	})
	if offset >= len(items) {
		return []*domain.WatchlistItem{}, nil
	}
	items = items[offset:]
	if len(items) > limit {
		items = items[:limit]
	}
	return items, nil
}

func (r *fakeWatchlistRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var count int64
	for key := range r.entries {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}

type fakeRatingRepo struct {
	ratings map[watchlistKey]*domain.Rating
}

func newFakeRatingRepo() *fakeRatingRepo {
	return &fakeRatingRepo{ratings: map[watchlistKey]*domain.Rating{}}
}

func (r *fakeRatingRepo) Upsert(_ context.Context, rating *domain.Rating) (*domain.Rating, error) {
	key := watchlistKey{rating.UserID, rating.MovieID}
	now := time.Now()
	if existing, ok := r.ratings[key]; ok {
		existing.Rating = rating.Rating
		existing.Review = rating.Review
		existing.UpdatedAt = now
		copy := *existing
		return &copy, nil
	}
	stored := *rating
	if stored.ID == "" {
		stored.ID = uuid.New().String()
	}
	stored.CreatedAt = now
	stored.UpdatedAt = now
	r.ratings[key] = &stored
	copy := stored
	return &copy, nil
}

func (r *fakeRatingRepo) Exists(_ context.Context, userID string, movieID int64) (bool, error) {
	_, ok := r.ratings[watchlistKey{userID, movieID}]
	return ok, nil
}

func (r *fakeRatingRepo) Delete(_ context.Context, userID string, movieID int64) error {
	key := watchlistKey{userID, movieID}
	if _, ok := r.ratings[key]; !ok {
		return fmt.Errorf("rating for movie %d not found: %w", movieID, repository.ErrNotFound)
	}
	delete(r.ratings, key)
	return nil
}

func (r *fakeRatingRepo) ListByMovie(_ context.Context, movieID int64, limit, offset int) ([]*domain.Rating, error) {
	var ratings []*domain.Rating
	for key, rating := range r.ratings {
		if key.movieID == movieID {
			copy := *rating
			ratings = append(ratings, &copy)
		}
	}
	return paginateRatings(ratings, limit, offset), nil
}

func (r *fakeRatingRepo) StatsByMovie(_ context.Context, movieID int64) (*domain.RatingStats, error) {
	stats := &domain.RatingStats{}
	var sum float64
	for key, rating := range r.ratings {
		if key.movieID == movieID {
			sum += rating.Rating
			stats.TotalRatings++
		}
	}
	if stats.TotalRatings > 0 {
		stats.AverageRating = float64(sum) / float64(stats.TotalRatings)
	}
	return stats, nil
}

func (r *fakeRatingRepo) ListByUser(_ context.Context, userID string, limit, offset int) ([]*domain.Rating, error) {
	var ratings []*domain.Rating
	for key, rating := range r.ratings {
		if key.userID == userID {
			copy := *rating
			ratings = append(ratings, &copy)
		}
	}
	return paginateRatings(ratings, limit, offset), nil
}

func (r *fakeRatingRepo) CountByUser(_ context.Context, userID string) (int64, error) {
	var count int64
	for key := range r.ratings {
		if key.userID == userID {
			count++
		}
	}
	return count, nil
}

func paginateRatings(ratings []*domain.Rating, limit, offset int) []*domain.Rating {
	sort.Slice(ratings, func(i, j int) bool {
		return ratings[i].UpdatedAt.After(ratings[j].UpdatedAt)
	})
	if offset >= len(ratings) {
		return []*domain.Rating{}
	}
	ratings = ratings[offset:]
	if len(ratings) > limit {
		ratings = ratings[:limit]
	}
	return ratings
}

// fakeMetadataClient serves canned movies and counts upstream calls so tests
// can assert when the external source is (not) consulted.
type fakeMetadataClient struct {
	movies   map[int64]*tmdb.Movie
	err      error
	getCalls int
}

func newFakeMetadataClient(movies ...*tmdb.Movie) *fakeMetadataClient {
	c := &fakeMetadataClient{movies: map[int64]*tmdb.Movie{}}
	for _, m := range movies {
		c.movies[m.ID] = m
	}
	return c
}

func (c *fakeMetadataClient) SearchMovies(_ context.Context, query string, page int) (*tmdb.MoviePage, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.page(page), nil
}

func (c *fakeMetadataClient) PopularMovies(_ context.Context, page int) (*tmdb.MoviePage, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.page(page), nil
}

func (c *fakeMetadataClient) GetMovie(_ context.Context, id int64) (*tmdb.Movie, error) {
	c.getCalls++
	if c.err != nil {
		return nil, c.err
	}
	m, ok := c.movies[id]
	if !ok {
		return nil, domain.ErrMovieNotFound
	}
	copy := *m
	return &copy, nil
}

func (c *fakeMetadataClient) SimilarMovies(_ context.Context, id int64, page int) (*tmdb.MoviePage, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.page(page), nil
}

func (c *fakeMetadataClient) page(page int) *tmdb.MoviePage {
	result := &tmdb.MoviePage{Page: page}
	for _, m := range c.movies {
		result.Results = append(result.Results, *m)
	}
	result.TotalResults = len(result.Results)
	result.TotalPages = 1
	return result
}
