package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
)

type taskService interface {
	Dispatch(ctx context.Context, task *domain.Task) (*domain.Task, error)
	ListAssigned(ctx context.Context, employeeID uuid.UUID) ([]domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	MarkDone(ctx context.Context, actor domain.Principal, taskID uuid.UUID) (*domain.Task, error)
}

type dispatchRequest struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ClientID    uuid.UUID `json:"client_id"`
	AssignedTo  uuid.UUID `json:"assigned_to"`
	DueDate     string    `json:"due_date"`
}

type TaskHandler struct {
	taskSvc taskService
}

func NewTaskHandler(taskSvc taskService) *TaskHandler {
	return &TaskHandler{taskSvc: taskSvc}
}

func (h *TaskHandler) Register(member, owner *gin.RouterGroup) {
	member.GET("/tasks/mine", h.ListMine)
	member.POST("/tasks/:task_id/done", h.MarkDone)
	owner.POST("/tasks", h.Dispatch)
	owner.GET("/tasks", h.List)
}

func (h *TaskHandler) ListMine(c *gin.Context) {
	tasks, err := h.taskSvc.ListAssigned(c.Request.Context(), principalFrom(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(tasks))
}

func (h *TaskHandler) MarkDone(c *gin.Context) {
	taskID, ok := paramID(c, "task_id")
	if !ok {
		return
	}
	task, err := h.taskSvc.MarkDone(c.Request.Context(), principalFrom(c), taskID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

func (h *TaskHandler) Dispatch(c *gin.Context) {
	var req dispatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body", "detail": err.Error()})
		return
	}

	task := &domain.Task{
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		ClientID:    req.ClientID,
		AssignedTo:  req.AssignedTo,
	}
	if req.DueDate != "" {
		due, err := time.Parse(time.DateOnly, req.DueDate)
		if err != nil {
			respondError(c, domain.NewValidationError("due_date", "want YYYY-MM-DD"))
			return
		}
		task.DueDate = &due
	}

	created, err := h.taskSvc.Dispatch(c.Request.Context(), task)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *TaskHandler) List(c *gin.Context) {
	tasks, err := h.taskSvc.List(c.Request.Context(), domain.TaskFilter(c.DefaultQuery("status", string(domain.TaskFilterAll))))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(tasks))
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
