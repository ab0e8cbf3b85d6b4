package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/service"
)

type staffService interface {
	Me(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Rename(ctx context.Context, id uuid.UUID, fullName string) error
	ListEmployees(ctx context.Context) ([]domain.Profile, error)
	UpdateEmployee(ctx context.Context, id uuid.UUID, u service.EmployeeUpdate) (*domain.Profile, error)
	RemoveEmployee(ctx context.Context, id uuid.UUID) error
}

type renameRequest struct {
	FullName string `json:"full_name"`
}

type updateEmployeeRequest struct {
	FullName   *string          `json:"full_name"`
	Email      *string          `json:"email"`
	HourlyRate *decimal.Decimal `json:"hourly_rate"`
}

type StaffHandler struct {
	staffSvc staffService
}

func NewStaffHandler(staffSvc staffService) *StaffHandler {
	return &StaffHandler{staffSvc: staffSvc}
}

func (h *StaffHandler) Register(member, owner *gin.RouterGroup) {
	member.GET("/me", h.Me)
	member.PATCH("/me", h.Rename)
	owner.GET("/staff", h.List)
	owner.PATCH("/staff/:employee_id", h.Update)
	owner.DELETE("/staff/:employee_id", h.Remove)
}

func (h *StaffHandler) Me(c *gin.Context) {
	p, err := h.staffSvc.Me(c.Request.Context(), principalFrom(c).UserID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *StaffHandler) Rename(c *gin.Context) {
	var req renameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if err := h.staffSvc.Rename(c.Request.Context(), principalFrom(c).UserID, req.FullName); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *StaffHandler) List(c *gin.Context) {
	staff, err := h.staffSvc.ListEmployees(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, nonNil(staff))
}

func (h *StaffHandler) Update(c *gin.Context) {
	id, ok := paramID(c, "employee_id")
	if !ok {
		return
	}
	var req updateEmployeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	p, err := h.staffSvc.UpdateEmployee(c.Request.Context(), id, service.EmployeeUpdate{
		FullName:   req.FullName,
		Email:      req.Email,
		HourlyRate: req.HourlyRate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *StaffHandler) Remove(c *gin.Context) {
	id, ok := paramID(c, "employee_id")
	if !ok {
		return
	}
	if err := h.staffSvc.RemoveEmployee(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
