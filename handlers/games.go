package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
	"github.com/gamegalaxy/exchange/monitoring"
)

// BrowseGames returns one page of listings, hiding sold games and games
// already on the caller's wishlist.
// GET /games/all?page&perPage
func (h *Handler) BrowseGames(c *gin.Context) {
	page, perPage := pageParams(c)
	games, total, err := h.Catalog.Browse(currentUser(c), page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games, "totalGames": total})
}

// SearchGames is BrowseGames narrowed to a title substring.
// GET /games/search?searchTerm&page&perPage
func (h *Handler) SearchGames(c *gin.Context) {
	page, perPage := pageParams(c)
	games, total, err := h.Catalog.Search(currentUser(c), c.Query("searchTerm"), page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": games, "totalGames": total})
}

// GetGame returns the inventory-joined detail view of one listing.
// GET /games/:id
func (h *Handler) GetGame(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		fail(c, apperr.New(apperr.NotFound, "Game not found."))
		return
	}
	detail, err := h.Catalog.Detail(gameID, currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateGame lists a game for the caller (multipart, optional picture).
// POST /games/add
func (h *Handler) CreateGame(c *gin.Context) {
	var draft models.GameDraft
	if err := c.ShouldBind(&draft); err != nil {
		fail(c, apperr.New(apperr.Validation, "Invalid request body."))
		return
	}
	picture, _ := c.FormFile("gamePicture")

	if _, err := h.Catalog.Create(currentUser(c), draft, picture); err != nil {
		fail(c, err)
		return
	}
	monitoring.TotalListings.Inc()
	c.JSON(http.StatusOK, gin.H{"message": "Game added successfully!"})
}

// UpdateGame applies a partial multipart patch to a listing the caller
// owns.
// PUT /games/:id
func (h *Handler) UpdateGame(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		fail(c, apperr.New(apperr.NotFound, "Game not found."))
		return
	}
	var patch models.GamePatch
	if err := c.ShouldBind(&patch); err != nil {
		fail(c, apperr.New(apperr.Validation, "Invalid request body."))
		return
	}

	if _, err := h.Catalog.Update(currentUser(c), gameID, patch); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game updated successfully!"})
}

// UploadGamePicture replaces the listing picture.
// POST /games/:id/upload-picture
func (h *Handler) UploadGamePicture(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		fail(c, apperr.New(apperr.NotFound, "Game not found."))
		return
	}
	picture, err := c.FormFile("gamePicture")
	if err != nil {
		fail(c, apperr.New(apperr.Validation, "No game picture uploaded."))
		return
	}

	if _, err := h.Catalog.SetPicture(currentUser(c), gameID, picture); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game picture uploaded successfully!"})
}

// DeleteGame removes a listing the caller owns, cascading to inventory and
// wishlist rows.
// DELETE /games/:id/delete
func (h *Handler) DeleteGame(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		fail(c, apperr.New(apperr.NotFound, "Game not found."))
		return
	}
	if err := h.Catalog.Delete(currentUser(c), gameID); err != nil {
		fail(c, err)
		return
	}
	monitoring.TotalListings.Dec()
	c.Status(http.StatusNoContent)
}
