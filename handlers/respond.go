// handlers/respond.go
package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/KARTHIKBM7/Market-Intelligence---Competitive-Pricing-Engine/database"
)

func respondWithJSON(c *gin.Context, code int, payload interface{}) {
	c.JSON(code, payload)
}

func respondWithError(c *gin.Context, code int, message string) {
	log.Printf("API Error %d: %s", code, message)
	respondWithJSON(c, code, gin.H{"error": message})
}

// respondWithStoreError maps store failures onto status codes. Nothing is
// retried; the caller sees a readable message.
func respondWithStoreError(c *gin.Context, err error) {
	var queryErr *database.QueryError
	var connErr *database.StoreConnectionError

	switch {
	case errors.As(err, &connErr):
		respondWithError(c, http.StatusServiceUnavailable, "price store is unavailable: "+connErr.Error())
	case errors.As(err, &queryErr) && queryErr.Kind == database.QueryInvalid:
		respondWithError(c, http.StatusBadRequest, queryErr.Error())
	case errors.As(err, &queryErr) && queryErr.Kind == database.QueryEmpty:
		respondWithError(c, http.StatusNotFound, "no price data available yet")
	default:
		respondWithError(c, http.StatusInternalServerError, err.Error())
	}
}
