package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/cache"
	"github.com/gamegalaxy/exchange/models"
	"github.com/gamegalaxy/exchange/monitoring"
	"github.com/gamegalaxy/exchange/utils"
)

const (
	loginMaxAttempts = 10
	loginWindow      = time.Minute
)

// Register creates a new account.
// POST /user/register
func (h *Handler) Register(c *gin.Context) {
	var input models.RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		fail(c, apperr.New(apperr.Validation, "Invalid request body."))
		return
	}

	user, err := h.Accounts.Register(input)
	if err != nil {
		fail(c, err)
		return
	}

	monitoring.TotalUsers.Inc()
	utils.LogInfo("User registered", map[string]interface{}{"username": user.Username})
	c.JSON(http.StatusCreated, gin.H{"message": "User registered successfully."})
}

// Login checks the password and issues a fresh credential pair, displacing
// any pair issued earlier for the same account.
// POST /user/login
func (h *Handler) Login(c *gin.Context) {
	allowed, err := cache.CheckRateLimit("login:"+c.ClientIP(), loginMaxAttempts, loginWindow)
	if err == nil && !allowed {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": "Too many login attempts. Try again later."})
		return
	}

	var input models.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.New(apperr.Validation, "Invalid request body."))
		return
	}

	user, err := h.Accounts.Authenticate(input)
	if err != nil {
		monitoring.AuthenticationAttempts.WithLabelValues("failure").Inc()
		fail(c, err)
		return
	}

	pair, err := h.Sessions.Issue(c.Request.Context(), user.ID, user.Username)
	if err != nil {
		fail(c, err)
		return
	}

	monitoring.AuthenticationAttempts.WithLabelValues("success").Inc()
	utils.LogInfo("User logged in", map[string]interface{}{"username": user.Username})
	c.JSON(http.StatusOK, pair)
}

// Refresh rotates the credential pair.
// POST /user/refresh
func (h *Handler) Refresh(c *gin.Context) {
	var input models.RefreshInput
	if err := c.ShouldBindJSON(&input); err != nil {
		fail(c, apperr.New(apperr.Validation, "Invalid request body."))
		return
	}
	if err := utils.ValidateStruct(input); err != nil {
		fail(c, err)
		return
	}

	pair, err := h.Sessions.Refresh(c.Request.Context(), input.Username, input.RefreshToken)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, pair)
}

// Logout revokes the caller's stored credential pair. The presented access
// token stays valid until expiry; only refresh is cut off.
// POST /user/logout
func (h *Handler) Logout(c *gin.Context) {
	if err := h.Sessions.Revoke(c.Request.Context(), currentUsername(c)); err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Logged out."})
}
