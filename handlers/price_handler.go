// handlers/price_handler.go
package handlers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/services"
)

const (
	defaultCompareLimit = 10
	defaultTopN         = 5
)

type PriceHandler struct {
	reports *services.ReportService
}

func NewPriceHandler(reports *services.ReportService) *PriceHandler {
	return &PriceHandler{reports: reports}
}

func (h *PriceHandler) Home(c *gin.Context) {
	respondWithJSON(c, http.StatusOK, gin.H{"message": "Welcome to the Market Intelligence API. Go to /docs for the route list."})
}

func (h *PriceHandler) Docs(c *gin.Context) {
	respondWithJSON(c, http.StatusOK, gin.H{"routes": []string{
		"GET /api/health",
		"GET /prices?max_price=<number>",
		"GET /stats",
		"GET /compare?limit=<n>",
		"GET /top?n=<n>&order=asc|desc",
		"GET /groups/:column",
	}})
}

func (h *PriceHandler) Health(c *gin.Context) {
	if err := h.reports.Ping(c.Request.Context()); err != nil {
		respondWithError(c, http.StatusServiceUnavailable, "price store is unavailable: "+err.Error())
		return
	}
	respondWithJSON(c, http.StatusOK, gin.H{"status": "ok"})
}

// GetPrices handles GET /prices?max_price=20.
func (h *PriceHandler) GetPrices(c *gin.Context) {
	var maxPrice *float64
	if raw, ok := c.GetQuery("max_price"); ok {
		v, err := parsePrice(raw)
		if err != nil {
			respondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		maxPrice = &v
	}

	resp, err := h.reports.Prices(c.Request.Context(), maxPrice)
	if err != nil {
		respondWithStoreError(c, err)
		return
	}
	respondWithJSON(c, http.StatusOK, resp)
}

func (h *PriceHandler) GetStats(c *gin.Context) {
	stats, err := h.reports.Stats(c.Request.Context())
	if err != nil {
		respondWithStoreError(c, err)
		return
	}
	respondWithJSON(c, http.StatusOK, stats)
}

func (h *PriceHandler) GetComparison(c *gin.Context) {
	limit, err := positiveInt(c.DefaultQuery("limit", strconv.Itoa(defaultCompareLimit)), "limit")
	if err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	rows, err := h.reports.Comparison(c.Request.Context(), limit)
	if err != nil {
		respondWithStoreError(c, err)
		return
	}
	respondWithJSON(c, http.StatusOK, rows)
}

func (h *PriceHandler) GetTop(c *gin.Context) {
	n, err := positiveInt(c.DefaultQuery("n", strconv.Itoa(defaultTopN)), "n")
	if err != nil {
		respondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	var descending bool
	switch strings.ToLower(c.DefaultQuery("order", "desc")) {
	case "desc":
		descending = true
	case "asc":
	default:
		respondWithError(c, http.StatusBadRequest, "order must be asc or desc")
		return
	}

	rows, err := h.reports.Top(c.Request.Context(), n, descending)
	if err != nil {
		respondWithStoreError(c, err)
		return
	}
	respondWithJSON(c, http.StatusOK, rows)
}

func (h *PriceHandler) GetGroups(c *gin.Context) {
	counts, err := h.reports.Groups(c.Request.Context(), c.Param("column"))
	if err != nil {
		respondWithStoreError(c, err)
		return
	}
	respondWithJSON(c, http.StatusOK, counts)
}

func parsePrice(raw string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("max_price must be a number, got %q", raw)
	}
	return v, nil
}

func positiveInt(raw, name string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || v <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", name, raw)
	}
	return v, nil
}
