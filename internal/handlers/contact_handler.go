package handlers

import (
	"net/http"

	"portfolio-api/internal/models"
	"portfolio-api/internal/portfolio"
	"portfolio-api/internal/realtime"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// UpdateMessageStatusRequest represents a minimal request to change status
type UpdateMessageStatusRequest struct {
	Status models.MessageStatus `json:"status" binding:"required"`
}

// Contact stores a contact form submission and notifies the owner.
// Email failures are logged and never fail the request.
// POST /api/contact
func (h *Handler) Contact(c *gin.Context) {
	var req portfolio.MessageInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	msg, err := h.svc.CreateMessage(ctx, req)
	if err != nil {
		h.fail(c, "message", "send", err)
		return
	}

	if err := h.mailer.NotifyContact(ctx, msg); err != nil {
		h.logger.Warn("mail-failed", zap.String("message-id", msg.ID), zap.Error(err))
	}
	evt := realtime.Event{Type: realtime.EventMessageReceived, ID: msg.ID, Timestamp: h.now().UnixMilli()}
	if err := h.hub.Publish(evt, realtime.ChannelAdmin); err != nil {
		h.logger.Warn("publish-failed", zap.String("type", evt.Type), zap.Error(err))
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message sent successfully", "data": msg})
}

// GetMessages handles GET /api/admin/messages
func (h *Handler) GetMessages(c *gin.Context) {
	msgs, err := h.svc.Messages(c.Request.Context())
	if err != nil {
		h.fail(c, "messages", "fetch", err)
		return
	}
	c.JSON(http.StatusOK, msgs)
}

// UpdateMessageStatus handles PATCH /api/admin/messages/:id/status
func (h *Handler) UpdateMessageStatus(c *gin.Context) {
	var req UpdateMessageStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	msg, err := h.svc.SetMessageStatus(c.Request.Context(), c.Param("id"), req.Status)
	if err != nil {
		h.fail(c, "message", "update", err)
		return
	}
	c.JSON(http.StatusOK, msg)
}

// DeleteMessage handles DELETE /api/admin/messages/:id
func (h *Handler) DeleteMessage(c *gin.Context) {
	if err := h.svc.DeleteMessage(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, "message", "delete", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Message deleted"})
}
