// Package handlers is the HTTP edge: request binding, auth middleware and
// status mapping. All domain decisions live in the service packages; a
// handler only translates between HTTP and a service call.
package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/gamegalaxy/exchange/accounts"
	"github.com/gamegalaxy/exchange/apperr"
	"github.com/gamegalaxy/exchange/auth"
	"github.com/gamegalaxy/exchange/catalog"
	"github.com/gamegalaxy/exchange/reporting"
	"github.com/gamegalaxy/exchange/reviews"
	"github.com/gamegalaxy/exchange/wishlist"
)

type Handler struct {
	Accounts  *accounts.Service
	Sessions  *auth.Manager
	Catalog   *catalog.Service
	Wishlist  *wishlist.Service
	Reviews   *reviews.Service
	Reporting *reporting.Service
}

func New(accts *accounts.Service, sessions *auth.Manager, cat *catalog.Service, wish *wishlist.Service, revs *reviews.Service, rep *reporting.Service) *Handler {
	return &Handler{
		Accounts:  accts,
		Sessions:  sessions,
		Catalog:   cat,
		Wishlist:  wish,
		Reviews:   revs,
		Reporting: rep,
	}
}

// fail writes the error's mapped status and client-visible message and
// records it on the context for the error-logging middleware.
func fail(c *gin.Context, err error) {
	_ = c.Error(err)
	c.JSON(apperr.Status(err), gin.H{"error": apperr.Message(err)})
}

// AuthMiddleware validates the bearer token and stores the principal in
// the context under "userID" and "username".
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}
		userID, username, err := h.Sessions.Principal(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token."})
			return
		}
		c.Set("userID", userID)
		c.Set("username", username)
		c.Next()
	}
}

func currentUser(c *gin.Context) uint {
	return c.GetUint("userID")
}

func currentUsername(c *gin.Context) string {
	return c.GetString("username")
}

// pathID parses a numeric path segment; 0 means missing or malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// pageParams reads ?page and ?perPage with the browse defaults.
func pageParams(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	perPage, err := strconv.Atoi(c.DefaultQuery("perPage", "6"))
	if err != nil || perPage < 1 {
		perPage = 6
	}
	return page, perPage
}
