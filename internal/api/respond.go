package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-service-backend/internal/logs"
	"fleet-service-backend/internal/scope"
	"fleet-service-backend/internal/store"
)

// writeError maps the store/scope error taxonomy onto HTTP statuses:
// validation → 400, permission → 403, missing or out-of-scope → 404,
// still-referenced catalog delete → 409. Anything else is a 500 and
// gets logged; the four domain errors are the caller's to fix.
func writeError(c *gin.Context, err error) {
	var vErr *store.ValidationError
	switch {
	case errors.As(err, &vErr):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": vErr.Message, "field": vErr.Field})
	case errors.Is(err, scope.ErrDenied):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "permission denied"})
	case errors.Is(err, store.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, store.ErrStillReferenced):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{
			"error": "reference item is still used by machines, maintenance records or claims",
		})
	default:
		logs.Logger.WithError(err).Error("request failed")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
