package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamegalaxy/exchange/cache"
	"github.com/gamegalaxy/exchange/models"
	"github.com/gamegalaxy/exchange/utils"
)

// ListPlatforms returns the platform reference data, served from Redis
// when available.
// GET /platforms/all
func (h *Handler) ListPlatforms(c *gin.Context) {
	var cached []models.Platform
	if err := cache.GetPlatforms(&cached); err == nil && len(cached) > 0 {
		c.JSON(http.StatusOK, cached)
		return
	}

	platforms, err := h.Catalog.Platforms()
	if err != nil {
		fail(c, err)
		return
	}

	if err := cache.SetPlatforms(platforms); err != nil {
		utils.LogWarn("Failed to cache platforms", map[string]interface{}{"error": err.Error()})
	}
	c.JSON(http.StatusOK, platforms)
}
