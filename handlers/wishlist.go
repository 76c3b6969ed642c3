package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamegalaxy/exchange/apperr"
)

// AddToWishlist saves a listing onto the caller's wishlist. The listing
// then disappears from the caller's browse and search results.
// POST /wishlist/add/:id
func (h *Handler) AddToWishlist(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		fail(c, apperr.New(apperr.NotFound, "Game not found."))
		return
	}
	entry, err := h.Wishlist.Add(currentUser(c), gameID)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}

// RemoveFromWishlist drops a listing from the caller's wishlist.
// DELETE /wishlist/remove/:id
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	gameID, ok := pathID(c, "id")
	if !ok {
		fail(c, apperr.New(apperr.NotFound, "Game not found in wishlist."))
		return
	}
	if err := h.Wishlist.Remove(currentUser(c), gameID); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Game removed from wishlist."})
}

// GetWishlist lists the caller's wishlisted games.
// GET /wishlist
func (h *Handler) GetWishlist(c *gin.Context) {
	items, err := h.Wishlist.List(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}
