package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// The dashboard endpoints all answer for the authenticated seller only.

// GET /sales/total
func (h *Handler) TotalSales(c *gin.Context) {
	total, err := h.Reporting.TotalSales(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"totalSales": total})
}

// GET /sales/monthly
func (h *Handler) MonthlySales(c *gin.Context) {
	total, err := h.Reporting.MonthlySales(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"monthlySales": total})
}

// GET /inventory/status
func (h *Handler) InventoryStatus(c *gin.Context) {
	rows, err := h.Reporting.InventoryStatus(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /sales/platforms
func (h *Handler) PlatformSales(c *gin.Context) {
	rows, err := h.Reporting.PlatformSales(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, rows)
}

// GET /sales/trend
func (h *Handler) SalesTrend(c *gin.Context) {
	points, err := h.Reporting.SalesTrend(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, points)
}

// GET /reviews/average
func (h *Handler) AverageRating(c *gin.Context) {
	avg, err := h.Reporting.AverageRating(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"averageRating": avg})
}

// SellerInventory lists the caller's unsold listings with quantities.
// GET /sellerInventory?page&perPage
func (h *Handler) SellerInventory(c *gin.Context) {
	page, perPage := pageParams(c)
	items, total, err := h.Reporting.InventoryPage(currentUser(c), page, perPage)
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"games": items, "totalGames": total})
}

// SalesDashboard bundles every aggregate into one response.
// GET /sales/dashboard
func (h *Handler) SalesDashboard(c *gin.Context) {
	dash, err := h.Reporting.Dashboard(currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	c.JSON(http.StatusOK, dash)
}
