package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/models"
)

// Profile returns the caller's own profile.
// GET /user/profile
func (h *Handler) Profile(c *gin.Context) {
	profile, err := h.Accounts.Profile(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, profile)
}

// UpdateProfile applies a partial multipart update, optionally including a
// new profile picture. A request that changes nothing answers 204.
// PUT /user/modify_profile
func (h *Handler) UpdateProfile(c *gin.Context) {
	var input models.UpdateProfileInput
	if err := c.ShouldBind(&input); err != nil {
		fail(c, apperr.New(apperr.Validation, "Invalid request body."))
		return
	}
	picture, _ := c.FormFile("profilePicture")

	changed, err := h.Accounts.UpdateProfile(currentUser(c), input, picture)
	if err != nil {
		fail(c, err)
		return
	}
	if !changed {
		c.Status(http.StatusNoContent)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully"})
}
