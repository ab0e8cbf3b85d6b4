package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
)

type messageService interface {
	Send(ctx context.Context, senderID, clientID uuid.UUID, body string) (*domain.Message, error)
}

type sendMessageRequest struct {
	ClientID uuid.UUID `json:"client_id"`
	Body     string    `json:"message_body"`
}

type MessageHandler struct {
	messageSvc messageService
}

func NewMessageHandler(messageSvc messageService) *MessageHandler {
	return &MessageHandler{messageSvc: messageSvc}
}

func (h *MessageHandler) Register(member *gin.RouterGroup) {
	member.POST("/messages", h.Send)
}

func (h *MessageHandler) Send(c *gin.Context) {
	var req sendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}
	msg, err := h.messageSvc.Send(c.Request.Context(), principalFrom(c).UserID, req.ClientID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusAccepted, msg)
}
