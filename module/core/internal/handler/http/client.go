package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
)

type clientService interface {
	Add(ctx context.Context, name, email string) (*domain.Client, error)
	List(ctx context.Context, actor domain.Principal) ([]domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type addClientRequest struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type ClientHandler struct {
	clientSvc clientService
}

func NewClientHandler(clientSvc clientService) *ClientHandler {
	return &ClientHandler{clientSvc: clientSvc}
}

func (h *ClientHandler) Register(member, owner *gin.RouterGroup) {
	member.GET("/clients", h.List)
	owner.POST("/clients", h.Add)
	owner.DELETE("/clients/:client_id", h.Delete)
}

func (h *ClientHandler) List(c *gin.Context) {
	clients, err := h.clientSvc.List(c.Request.Context(), principalFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(clients))
}

func (h *ClientHandler) Add(c *gin.Context) {
	var req addClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	client, err := h.clientSvc.Add(c.Request.Context(), req.Name, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, client)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := paramID(c, "client_id")
	if !ok {
		return
	}
	if err := h.clientSvc.Delete(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
