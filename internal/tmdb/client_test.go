package tmdb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkhalizov/movielog/internal/domain"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*httptest.Server, *Client) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return server, NewClient(server.URL, "test-api-key", 5*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, status int, body any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	require.NoError(t, json.NewEncoder(w).Encode(body))
}

func TestGetMovie(t *testing.T) {
	var gotPath, gotKey string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.URL.Query().Get("api_key")
		writeJSON(t, w, http.StatusOK, Movie{
			ID:          603,
			Title:       "The Matrix",
			Overview:    "A computer hacker learns about the true nature of reality.",
			ReleaseDate: "1999-03-30",
			PosterPath:  "/matrix.jpg",
			VoteAverage: 8.2,
		})
	})

	movie, err := client.GetMovie(context.Background(), 603)
	require.NoError(t, err)

	assert.Equal(t, "/movie/603", gotPath)
	assert.Equal(t, "test-api-key", gotKey)
	assert.Equal(t, int64(603), movie.ID)
	assert.Equal(t, "The Matrix", movie.Title)
	assert.Equal(t, 8.2, movie.VoteAverage)
}

func TestGetMovieNotFound(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusNotFound, map[string]any{
			"status_code":    34,
			"status_message": "The resource you requested could not be found.",
		})
	})

	_, err := client.GetMovie(context.Background(), 999999)
	assert.ErrorIs(t, err, domain.ErrMovieNotFound)
}

func TestGetMovieAuthFailure(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusUnauthorized, map[string]any{
			"status_code":    7,
			"status_message": "Invalid API key: You must be granted a valid key.",
		})
	})

	_, err := client.GetMovie(context.Background(), 603)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.True(t, upstreamErr.IsAuthFailure())
	assert.Equal(t, "Invalid API key: You must be granted a valid key.", upstreamErr.Message)
}

func TestGetMovieRateLimited(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, http.StatusTooManyRequests, map[string]any{
			"status_code":    25,
			"status_message": "Your request count is over the allowed limit.",
		})
	})

	_, err := client.GetMovie(context.Background(), 603)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.True(t, upstreamErr.IsRateLimited())
}

func TestGetMovieServerError(t *testing.T) {
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})

	_, err := client.GetMovie(context.Background(), 603)

	var upstreamErr *domain.UpstreamError
	require.ErrorAs(t, err, &upstreamErr)
	assert.Equal(t, http.StatusInternalServerError, upstreamErr.StatusCode)
	assert.False(t, upstreamErr.IsRateLimited())
	assert.False(t, upstreamErr.IsAuthFailure())
	assert.Equal(t, "unknown error", upstreamErr.Message)
}

func TestSearchMovies(t *testing.T) {
	var gotQuery, gotPage string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("query")
		gotPage = r.URL.Query().Get("page")
		writeJSON(t, w, http.StatusOK, MoviePage{
			Page:         2,
			Results:      []Movie{{ID: 603, Title: "The Matrix"}},
			TotalPages:   3,
			TotalResults: 42,
		})
	})

	page, err := client.SearchMovies(context.Background(), "matrix", 2)
	require.NoError(t, err)

	assert.Equal(t, "matrix", gotQuery)
	assert.Equal(t, "2", gotPage)
	assert.Equal(t, 2, page.Page)
	assert.Equal(t, 42, page.TotalResults)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "The Matrix", page.Results[0].Title)
}

func TestPopularMovies(t *testing.T) {
	var gotPath string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(t, w, http.StatusOK, MoviePage{Page: 1, TotalPages: 1})
	})

	_, err := client.PopularMovies(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "/movie/popular", gotPath)
}

func TestSimilarMovies(t *testing.T) {
	var gotPath string
	_, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		writeJSON(t, w, http.StatusOK, MoviePage{Page: 1, TotalPages: 1})
	})

	_, err := client.SimilarMovies(context.Background(), 603, 1)
	require.NoError(t, err)
	assert.Equal(t, "/movie/603/similar", gotPath)
}

func TestGetMovieTransportError(t *testing.T) {
	server, client := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {})
	server.Close()

	_, err := client.GetMovie(context.Background(), 603)

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrMovieNotFound)
}
