package http

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/service"
)

type attendanceService interface {
	ActiveShift(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceInterval, error)
	ClockIn(ctx context.Context, employeeID uuid.UUID, reported *domain.Coordinate) (*domain.AttendanceInterval, domain.GeofenceResult, error)
	ClockOut(ctx context.Context, employeeID uuid.UUID, comments string) (*domain.AttendanceInterval, error)
	Recent(ctx context.Context, limit int) ([]domain.AttendanceInterval, error)
	History(ctx context.Context, from, to time.Time) ([]service.ShiftHours, error)
}

type geofenceService interface {
	Check(reported *domain.Coordinate) (domain.GeofenceResult, error)
}

type positionRequest struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

type clockOutRequest struct {
	Comments string `json:"comments"`
}

type geofenceResponse struct {
	domain.GeofenceResult
	Display string `json:"display"`
}

type shiftResponse struct {
	ID           uuid.UUID          `json:"id"`
	EmployeeID   uuid.UUID          `json:"employee_id"`
	EmployeeName string             `json:"employee_name,omitempty"`
	ClockIn      time.Time          `json:"clock_in"`
	ClockOut     *time.Time         `json:"clock_out,omitempty"`
	Hours        string             `json:"hours,omitempty"`
	Location     *domain.Coordinate `json:"location,omitempty"`
	Verified     bool               `json:"is_verified"`
	Status       string             `json:"status"`
	Comments     string             `json:"comments,omitempty"`
}

type AttendanceHandler struct {
	attendanceSvc attendanceService
	geofenceSvc   geofenceService
	loc           *time.Location
}

// NewAttendanceHandler renders timestamps and day windows in loc.
func NewAttendanceHandler(attendanceSvc attendanceService, geofenceSvc geofenceService, loc *time.Location) *AttendanceHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceHandler{attendanceSvc: attendanceSvc, geofenceSvc: geofenceSvc, loc: loc}
}

func (h *AttendanceHandler) Register(member, owner *gin.RouterGroup) {
	member.POST("/geofence/check", h.CheckGeofence)
	member.GET("/attendance/active", h.GetActive)
	member.POST("/attendance/clock-in", h.ClockIn)
	member.POST("/attendance/clock-out", h.ClockOut)
	owner.GET("/attendance/recent", h.GetRecent)
	owner.GET("/attendance/history", h.GetHistory)
}

func (h *AttendanceHandler) CheckGeofence(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	result, err := h.geofenceSvc.Check(domain.NewCoordinate(req.Latitude, req.Longitude))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toGeofenceResponse(result))
}

func (h *AttendanceHandler) GetActive(c *gin.Context) {
	shift, err := h.attendanceSvc.ActiveShift(c.Request.Context(), principalFrom(c).UserID)
	if errors.Is(err, domain.ErrNotFound) {
		c.JSON(http.StatusOK, gin.H{"clocked_in": false})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clocked_in": true, "shift": h.toShiftResponse(shift, nil)})
}

func (h *AttendanceHandler) ClockIn(c *gin.Context) {
	var req positionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}

	shift, result, err := h.attendanceSvc.ClockIn(c.Request.Context(), principalFrom(c).UserID, domain.NewCoordinate(req.Latitude, req.Longitude))
	if errors.Is(err, domain.ErrOutsideGeofence) {
		c.JSON(http.StatusForbidden, gin.H{"error": "outside geofence range", "geofence": toGeofenceResponse(result)})
		return
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"shift": h.toShiftResponse(shift, nil), "geofence": toGeofenceResponse(result)})
}

func (h *AttendanceHandler) ClockOut(c *gin.Context) {
	var req clockOutRequest
	// empty body is allowed
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
	}

	shift, err := h.attendanceSvc.ClockOut(c.Request.Context(), principalFrom(c).UserID, req.Comments)
	if err != nil {
		respondError(c, err)
		return
	}
	hours := shift.ClockOut.Sub(shift.ClockIn).Hours()
	c.JSON(http.StatusOK, h.toShiftResponse(shift, &hours))
}

func (h *AttendanceHandler) GetRecent(c *gin.Context) {
	limit := service.DefaultRecentLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid limit parameter"})
			return
		}
		limit = n
	}

	shifts, err := h.attendanceSvc.Recent(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	results := make([]shiftResponse, len(shifts))
	for i := range shifts {
		results[i] = h.toShiftResponse(&shifts[i], nil)
	}
	c.JSON(http.StatusOK, results)
}

func (h *AttendanceHandler) GetHistory(c *gin.Context) {
	day := time.Now().In(h.loc)
	if v := c.Query("date"); v != "" {
		parsed, err := time.ParseInLocation(time.DateOnly, v, h.loc)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date parameter, want YYYY-MM-DD"})
			return
		}
		day = parsed
	}
	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, h.loc)
	to := from.AddDate(0, 0, 1)

	shifts, err := h.attendanceSvc.History(c.Request.Context(), from, to)
	if err != nil {
		respondError(c, err)
		return
	}
	results := make([]shiftResponse, len(shifts))
	for i := range shifts {
		hours := shifts[i].Hours
		results[i] = h.toShiftResponse(&shifts[i].AttendanceInterval, &hours)
	}
	c.JSON(http.StatusOK, gin.H{
		"date":          from.Format(time.DateOnly),
		"total_present": len(results),
		"shifts":        results,
	})
}

func (h *AttendanceHandler) toShiftResponse(a *domain.AttendanceInterval, hours *float64) shiftResponse {
	resp := shiftResponse{
		ID:           a.ID,
		EmployeeID:   a.EmployeeID,
		EmployeeName: a.EmployeeName,
		ClockIn:      a.ClockIn.In(h.loc),
		Location:     a.Location,
		Verified:     a.Verified,
		Status:       string(a.Status),
		Comments:     a.Comments,
	}
	if a.ClockOut != nil {
		out := a.ClockOut.In(h.loc)
		resp.ClockOut = &out
	}
	if hours != nil {
		resp.Hours = strconv.FormatFloat(*hours, 'f', 2, 64)
	}
	return resp
}

func toGeofenceResponse(r domain.GeofenceResult) geofenceResponse {
	return geofenceResponse{GeofenceResult: r, Display: r.DisplayDistance()}
}
