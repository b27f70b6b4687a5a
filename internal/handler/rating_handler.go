package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dkhalizov/movielog/internal/dto"
	"github.com/dkhalizov/movielog/internal/service"
)

// RatingHandler handles rating requests
type RatingHandler struct {
	ratingService service.RatingService
}

// NewRatingHandler creates a new rating handler
func NewRatingHandler(ratingService service.RatingService) *RatingHandler {
	return &RatingHandler{
		ratingService: ratingService,
	}
}

// Upsert creates or updates the authenticated user's rating for a movie.
// Responds 201 when the rating was newly created and 200 when an existing one
// was overwritten.
// @Summary Rate a movie
// @Tags ratings
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Movie ID"
// @Param request body dto.UpsertRatingRequest true "Rating"
// @Success 200 {object} dto.RatingResponse
// @Success 201 {object} dto.RatingResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /movies/{id}/ratings [post]
func (h *RatingHandler) Upsert(c *gin.Context) {
	movieID, err := parseMovieID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var req dto.UpsertRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindingError(c, err)
		return
	}

	rating, created, err := h.ratingService.Upsert(c.Request.Context(), currentUserID(c), movieID, req.Rating, req.Review)
	if err != nil {
		writeError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}

	c.JSON(status, dto.RatingResponse{
		Rating:  rating,
		Created: created,
	})
}

// ListByMovie returns one page of a movie's ratings plus the mean and count
// over all of them. Public, no authentication required.
// @Summary List ratings for a movie
// @Tags ratings
// @Produce json
// @Param id path int true "Movie ID"
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.RatingListResponse
// @Router /movies/{id}/ratings [get]
func (h *RatingHandler) ListByMovie(c *gin.Context) {
	movieID, err := parseMovieID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindingError(c, err)
		return
	}
	query.Normalize()

	ratings, stats, err := h.ratingService.ListByMovie(c.Request.Context(), movieID, query.Page, query.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RatingListResponse{
		Results:       ratings,
		Page:          query.Page,
		Limit:         query.Limit,
		Total:         stats.TotalRatings,
		AverageRating: &stats.AverageRating,
		TotalRatings:  &stats.TotalRatings,
	})
}

// Delete removes the authenticated user's rating for a movie
// @Summary Delete own rating
// @Tags ratings
// @Security BearerAuth
// @Param id path int true "Movie ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /movies/{id}/ratings [delete]
func (h *RatingHandler) Delete(c *gin.Context) {
	movieID, err := parseMovieID(c, "id")
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.ratingService.Delete(c.Request.Context(), currentUserID(c), movieID); err != nil {
		writeError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// ListByUser returns one page of the authenticated user's ratings
// @Summary List own ratings
// @Tags ratings
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.RatingListResponse
// @Router /users/ratings [get]
func (h *RatingHandler) ListByUser(c *gin.Context) {
	var query dto.PageQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		writeBindingError(c, err)
		return
	}
	query.Normalize()

	ratings, total, err := h.ratingService.ListByUser(c.Request.Context(), currentUserID(c), query.Page, query.Limit)
	if err != nil {
		writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RatingListResponse{
		Results: ratings,
		Page:    query.Page,
		Limit:   query.Limit,
		Total:   total,
	})
}
