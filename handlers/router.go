// handlers/router.go
package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/services"
)

// NewRouter registers every read-only API route.
func NewRouter(reports *services.ReportService) *gin.Engine {
	h := NewPriceHandler(reports)

	r := gin.Default()
	r.GET("/", h.Home)
	r.GET("/docs", h.Docs)
	r.GET("/api/health", h.Health)
	r.GET("/prices", h.GetPrices)
	r.GET("/stats", h.GetStats)
	r.GET("/compare", h.GetComparison)
	r.GET("/top", h.GetTop)
	r.GET("/groups/:column", h.GetGroups)
	return r
}
