package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes wires the full REST surface onto the router. Everything
// except registration, login, refresh, health and metrics sits behind the
// bearer middleware.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/user/register", h.Register)
	r.POST("/user/login", h.Login)
	r.POST("/user/refresh", h.Refresh)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	authed := r.Group("/", h.AuthMiddleware())

	authed.POST("/user/logout", h.Logout)
	authed.GET("/user/profile", h.Profile)
	authed.PUT("/user/modify_profile", h.UpdateProfile)

	authed.GET("/games/all", h.BrowseGames)
	authed.GET("/games/search", h.SearchGames)
	authed.GET("/games/:id", h.GetGame)
	authed.POST("/games/add", h.CreateGame)
	authed.PUT("/games/:id", h.UpdateGame)
	authed.POST("/games/:id/upload-picture", h.UploadGamePicture)
	authed.DELETE("/games/:id/delete", h.DeleteGame)

	authed.GET("/platforms/all", h.ListPlatforms)

	authed.POST("/wishlist/add/:id", h.AddToWishlist)
	authed.DELETE("/wishlist/remove/:id", h.RemoveFromWishlist)
	authed.GET("/wishlist", h.GetWishlist)

	authed.GET("/games/:id/reviews", h.GetReviews)
	authed.POST("/games/:id/reviews", h.PostReview)

	authed.GET("/sellerInventory", h.SellerInventory)
	authed.GET("/sales/total", h.TotalSales)
	authed.GET("/sales/monthly", h.MonthlySales)
	authed.GET("/sales/platforms", h.PlatformSales)
	authed.GET("/sales/trend", h.SalesTrend)
	authed.GET("/sales/dashboard", h.SalesDashboard)
	authed.GET("/inventory/status", h.InventoryStatus)
	authed.GET("/reviews/average", h.AverageRating)
}
