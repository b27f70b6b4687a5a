// Package tmdb implements a client for The Movie Database HTTP API. Every
// call carries the API key as a query parameter; upstream failures are
// translated into typed errors so callers can tell "movie does not exist"
// apart from "upstream is unavailable or rate-limited".
package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dkhalizov/movielog/internal/domain"
)

// Client talks to the TMDB API over HTTP
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a new TMDB client with a request timeout. A timed-out
// call surfaces as a transport error, never as "not found".
func NewClient(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Movie represents one movie record as returned by TMDB
type Movie struct {
	ID          int64   `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	ReleaseDate string  `json:"release_date"`
	PosterPath  string  `json:"poster_path"`
	VoteAverage float64 `json:"vote_average"`
}

// MoviePage is one page of TMDB search/list results
type MoviePage struct {
	Page         int     `json:"page"`
	Results      []Movie `json:"results"`
	TotalPages   int     `json:"total_pages"`
	TotalResults int     `json:"total_results"`
}

type errorBody struct {
	StatusMessage string `json:"status_message"`
}

// SearchMovies searches for movies matching the query
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("query", query)
	params.Set("page", strconv.Itoa(page))

	result := &MoviePage{}
	if err := c.get(ctx, "/search/movie", params, result); err != nil {
		return nil, err
	}

	return result, nil
}

// PopularMovies returns one page of currently popular movies
func (c *Client) PopularMovies(ctx context.Context, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	result := &MoviePage{}
	if err := c.get(ctx, "/movie/popular", params, result); err != nil {
		return nil, err
	}

	return result, nil
}

// GetMovie retrieves one movie by its TMDB id. An upstream 404 comes back as
// domain.ErrMovieNotFound.
func (c *Client) GetMovie(ctx context.Context, id int64) (*Movie, error) {
	result := &Movie{}
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), url.Values{}, result); err != nil {
		return nil, err
	}

	return result, nil
}

// SimilarMovies returns one page of movies similar to the given one
func (c *Client) SimilarMovies(ctx context.Context, id int64, page int) (*MoviePage, error) {
	params := url.Values{}
	params.Set("page", strconv.Itoa(page))

	result := &MoviePage{}
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/similar", id), params, result); err != nil {
		return nil, err
	}

	return result, nil
}

func (c *Client) get(ctx context.Context, path string, params url.Values, out any) error {
	params.Set("api_key", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build tmdb request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("tmdb request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return c.statusError(resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode tmdb response: %w", err)
	}

	return nil
}

// statusError maps the four upstream outcomes the boundary needs to tell
// apart: not found, bad API key, rate limited, and everything else.
func (c *Client) statusError(resp *http.Response) error {
	if resp.StatusCode == http.StatusNotFound {
		return domain.ErrMovieNotFound
	}

	message := "unknown error"
	body, err := io.ReadAll(resp.Body)
	if err == nil {
		var parsed errorBody
		if json.Unmarshal(body, &parsed) == nil && parsed.StatusMessage != "" {
			message = parsed.StatusMessage
		}
	}

	return &domain.UpstreamError{
		StatusCode: resp.StatusCode,
		Message:    message,
	}
}
