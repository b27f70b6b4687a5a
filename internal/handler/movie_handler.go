package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/dkhalizov/movielog/internal/domain"
	"github.com/dkhalizov/movielog/internal/service"
)

// MovieHandler handles public movie browsing requests
type MovieHandler struct {
	movieService service.MovieService
}

// NewMovieHandler creates a new movie handler
func NewMovieHandler(movieService service.MovieService) *MovieHandler {
	return &MovieHandler{
		movieService: movieService,
	}
}

// Search proxies a movie search to the upstream source
// @Summary Search movies
// @Tags movies
// @Produce json
// @Param query query string true "Search query"
// @Param page query int false "Page number"
// @Success 200 {object} tmdb.MoviePage
// @Failure 400 {object} dto.ErrorResponse
// @Router /movies/search [get]
func (h *MovieHandler) Search(c *gin.Context) {
	page := parsePage(c)

	result, err := h.movieService.Search(c.Request.Context(), c.Query("query"), page)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Popular returns currently popular movies from the upstream source
// @Summary List popular movies
// @Tags movies
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} tmdb.MoviePage
// @Router /movies/popular [get]
func (h *MovieHandler) Popular(c *gin.Context) {
	result, err := h.movieService.Popular(c.Request.Context(), parsePage(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Details returns one movie, served cache-aside
// @Summary Get movie details
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Success 200 {object} domain.Movie
// @Failure 404 {object} dto.ErrorResponse
// @Router /movies/{id} [get]
func (h *MovieHandler) Details(c *gin.Context) {
	movieID, err := parseMovieID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	movie, err := h.movieService.Resolve(c.Request.Context(), movieID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, movie)
}

// Similar returns movies similar to the given one
// @Summary List similar movies
// @Tags movies
// @Produce json
// @Param id path int true "Movie ID"
// @Param page query int false "Page number"
// @Success 200 {object} tmdb.MoviePage
// @Failure 404 {object} dto.ErrorResponse
// @Router /movies/{id}/similar [get]
func (h *MovieHandler) Similar(c *gin.Context) {
	movieID, err := parseMovieID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	result, err := h.movieService.Similar(c.Request.Context(), movieID, parsePage(c))
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func parsePage(c *gin.Context) int {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func parseMovieID(c *gin.Context, param string) (int64, error) {
	movieID, err := strconv.ParseInt(c.Param(param), 10, 64)
	if err != nil || movieID < 1 {
		return 0, domain.NewValidationError("invalid movie id")
	}
	return movieID, nil
}
