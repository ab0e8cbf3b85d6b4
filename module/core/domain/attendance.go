package domain

import (
	"time"

	"github.com/google/uuid"
)

type AttendanceStatus string

const (
	AttendanceActive    AttendanceStatus = "active"
	AttendanceCompleted AttendanceStatus = "completed"
)

// AttendanceInterval is one shift: created on clock-in, closed once on clock-out.
type AttendanceInterval struct {
	ID           uuid.UUID        `json:"id"`
	EmployeeID   uuid.UUID        `json:"employee_id"`
	EmployeeName string           `json:"employee_name,omitempty"`
	ClockIn      time.Time        `json:"clock_in"`
	ClockOut     *time.Time       `json:"clock_out,omitempty"`
	Location     *Coordinate      `json:"location,omitempty"`
	Verified     bool             `json:"is_verified"`
	Status       AttendanceStatus `json:"status"`
	Comments     string           `json:"comments,omitempty"`
}

func (a *AttendanceInterval) Open() bool {
	return a.ClockOut == nil
}

type AttendanceEventType string

const (
	EventClockIn  AttendanceEventType = "clock_in"
	EventClockOut AttendanceEventType = "clock_out"
)

type AttendanceEvent struct {
	Type         AttendanceEventType `json:"type"`
	AttendanceID uuid.UUID           `json:"attendance_id"`
	EmployeeID   uuid.UUID           `json:"employee_id"`
	At           time.Time           `json:"at"`
	Location     *Coordinate         `json:"location,omitempty"`
	Verified     bool                `json:"is_verified"`
}

// AttendanceQuery selects intervals by clock-in time in [From, To).
type AttendanceQuery struct {
	EmployeeID *uuid.UUID
	From       time.Time
	To         time.Time
}
