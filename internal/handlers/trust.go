package handlers

import (
	"net/http"

	"peerlink/internal/middleware"
	"peerlink/internal/services"

	"github.com/gin-gonic/gin"
)

type TrustHandler struct {
	registry *services.RegistryService
}

func NewTrustHandler(registry *services.RegistryService) *TrustHandler {
	return &TrustHandler{registry: registry}
}

func (h *TrustHandler) AddTrust(c *gin.Context) {
	ok, err := h.registry.AddTrust(middleware.Username(c), c.Param("reviewer"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !ok {
		// Duplicate trust is a first-class rejection, not a silent no-op.
		c.JSON(http.StatusConflict, gin.H{"error": "reviewer already trusted"})
		return
	}
	c.Status(http.StatusCreated)
}

func (h *TrustHandler) RemoveTrust(c *gin.Context) {
	ok, err := h.registry.RemoveTrust(middleware.Username(c), c.Param("reviewer"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "reviewer not trusted"})
		return
	}
	c.Status(http.StatusNoContent)
}

type setEdgeRequest struct {
	Value int `json:"value"`
}

func (h *TrustHandler) SetWeight(c *gin.Context) {
	var req setEdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ok, err := h.registry.SetWeight(middleware.Username(c), c.Param("reviewer"), req.Value)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}

func (h *TrustHandler) SetRating(c *gin.Context) {
	var req setEdgeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	ok, err := h.registry.SetRating(middleware.Username(c), c.Param("reviewer"), req.Value)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": ok})
}
