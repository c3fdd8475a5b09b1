package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/freshfold/freshfold/internal/server/http/dto"
)

// NotificationHandler exposes notification dispatch to operators.
type NotificationHandler struct {
	facade NotificationFacade
}

// NewNotificationHandler constructs NotificationHandler.
func NewNotificationHandler(facade NotificationFacade) *NotificationHandler {
	return &NotificationHandler{facade: facade}
}

// Send handles POST /api/notifications/send.
func (h *NotificationHandler) Send(c *gin.Context) {
	var req dto.SendNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.StatusEnvelope{Status: "BAD_REQUEST", Message: "invalid request body"})
		return
	}

	queued, err := h.facade.SendNotification(c.Request.Context(), req.UserIDs, req.Broadcast, req.Title, req.Body, req.Data)
	if err != nil {
		respondUserError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatusEnvelope{
		Status:  "SUCCESS",
		Message: "Notification queued",
		Data:    gin.H{"queued": queued},
	})
}
