package handlers

import (
	"errors"
	"net/http"

	"peerlink/internal/logger"
	"peerlink/internal/services"

	"github.com/gin-gonic/gin"
)

// abortWithError maps the service error taxonomy onto HTTP statuses.
func abortWithError(c *gin.Context, err error) {
	var ve *services.ValidationError
	switch {
	case errors.As(err, &ve):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "validation failed", "problems": ve.Problems})
	case errors.Is(err, services.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrDuplicate):
		c.AbortWithStatusJSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrConstraint):
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, services.ErrForbidden):
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": err.Error()})
	default:
		logger.L.Error("request failed", logger.Err(err))
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// created writes a 201 with the record and any sanitizer warnings.
func created(c *gin.Context, record interface{}, warnings []string) {
	resp := gin.H{"record": record}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusCreated, resp)
}

// updated is created's 200 counterpart.
func updated(c *gin.Context, record interface{}, warnings []string) {
	resp := gin.H{"record": record}
	if len(warnings) > 0 {
		resp["warnings"] = warnings
	}
	c.JSON(http.StatusOK, resp)
}
