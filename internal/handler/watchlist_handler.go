package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkhalizov/movielog/internal/dto"
	"github.com/dkhalizov/movielog/internal/service"
)

// WatchlistHandler handles watchlist requests
type WatchlistHandler struct {
	watchlistService service.WatchlistService
}

// NewWatchlistHandler creates a new watchlist handler
func NewWatchlistHandler(watchlistService service.WatchlistService) *WatchlistHandler {
	return &WatchlistHandler{
		watchlistService: watchlistService,
	}
}

// List returns one page of the authenticated user's watchlist
// @Summary List watchlist
// @Tags watchlist
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.WatchlistListResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /users/watchlist [get]
func (h *WatchlistHandler) List(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindingError(c, err)
		return
	}
	query.Normalize()

	items, total, err := h.watchlistService.List(c.Request.Context(), currentUserID(c), query.Page, query.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.WatchlistListResponse{
		Results: items,
		Page:    query.Page,
		Limit:   query.Limit,
		Total:   total,
	})
}

// Add puts a movie on the authenticated user's watchlist
// @Summary Add movie to watchlist
// @Tags watchlist
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.AddWatchlistRequest true "Watchlist add request"
// @Success 201 {object} domain.WatchlistEntry
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /users/watchlist [post]
func (h *WatchlistHandler) Add(c *gin.Context) {
	var req dto.AddWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	entry, err := h.watchlistService.Add(c.Request.Context(), currentUserID(c), req.MovieID)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// Remove deletes a movie from the authenticated user's watchlist
// @Summary Remove movie from watchlist
// @Tags watchlist
// @Security BearerAuth
// @Param movieId path int true "Movie ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /users/watchlist/{movieId} [delete]
func (h *WatchlistHandler) Remove(c *gin.Context) {
	movieID, err := parseMovieID(c, "movieId")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.watchlistService.Remove(c.Request.Context(), currentUserID(c), movieID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
