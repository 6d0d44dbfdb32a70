package handlers

import (
	"net/http"

	"peerlink/internal/middleware"
	"peerlink/internal/services"
	"peerlink/internal/utils"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notifier *services.NotificationService
}

func NewNotificationHandler(notifier *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{notifier: notifier}
}

func (h *NotificationHandler) List(c *gin.Context) {
	items, err := h.notifier.List(middleware.Username(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"records": items})
}

func (h *NotificationHandler) Read(c *gin.Context) {
	if err := h.notifier.MarkRead(middleware.Username(c), utils.ParseID(c.Param("id"))); err != nil {
		abortWithError(c, err)
		return
	}
	c.Status(http.StatusOK)
}
