package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/cache"
	"github.com/gamegalaxy/exchange/models"
	"github.com/gamegalaxy/exchange/utils"
)

// GetReviews lists a game's reviews, served from Redis when available.
// GET /games/:id/reviews
func (h *Handler) GetReviews(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		fail(c, apperr.New(apperr.NotFound, "Game not found."))
		return
	}

	var cached []models.ReviewView
	if err := cache.GetReviews(gameID, &cached); err == nil {
		c.JSON(http.StatusOK, cached)
		return
	}

	views, err := h.Reviews.List(gameID)
	if err != nil {
		fail(c, err)
		return
	}

	if err := cache.SetReviews(gameID, views); err != nil {
		utils.LogWarn("Failed to cache reviews", map[string]interface{}{"gameId": gameID, "error": err.Error()})
	}
	c.JSON(http.StatusOK, views)
}

// PostReview appends a review and invalidates the game's cached list.
// POST /games/:id/reviews
func (h *Handler) PostReview(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		fail(c, apperr.New(apperr.NotFound, "Game not found."))
		return
	}
	var input models.ReviewInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.New(apperr.Validation, "Invalid request body."))
		return
	}

	view, err := h.Reviews.Add(currentUser(c), gameID, input)
	if err != nil {
		fail(c, err)
		return
	}

	if err := cache.InvalidateReviews(gameID); err != nil {
		utils.LogWarn("Failed to invalidate review cache", map[string]interface{}{"gameId": gameID, "error": err.Error()})
	}
	c.JSON(http.StatusCreated, view)
}
