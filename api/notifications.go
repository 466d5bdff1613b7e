package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/skylift/skybook/internal/service/notifications"
)

type NotificationHandler struct {
	service notifications.NotificationUseCase
}

func NewNotificationHandler(service notifications.NotificationUseCase) *NotificationHandler {
	return &NotificationHandler{service: service}
}

func (h *NotificationHandler) Register(admin *gin.RouterGroup) {
	admin.GET("/notifications", h.list)
	admin.PATCH("/notifications/:id/seen", h.markSeen)
	admin.PATCH("/notifications/seen-all", h.markAllSeen)
	admin.DELETE("/notifications/cleanup", h.cleanup)
}

func (h *NotificationHandler) list(c *gin.Context) {
	unseenOnly := c.Query("unseen") == "true"
	result, err := h.service.List(c.Request.Context(), unseenOnly)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *NotificationHandler) markSeen(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid id"})
		return
	}
	if err := h.service.MarkSeen(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *NotificationHandler) markAllSeen(c *gin.Context) {
	updated, err := h.service.MarkAllSeen(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": updated})
}

func (h *NotificationHandler) cleanup(c *gin.Context) {
	deleted, err := h.service.Cleanup(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}
