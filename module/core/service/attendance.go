package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database"
	"github.com/23f3000115/agency-os/module/core/internal/repository/publisher"
)

const (
	DefaultRecentLimit = 20
	MaxRecentLimit     = 100
)

type geofenceChecker interface {
	Check(reported *domain.Coordinate) (domain.GeofenceResult, error)
}

// ShiftHours pairs an interval with its completed hours (0 while open).
type ShiftHours struct {
	domain.AttendanceInterval
	Hours float64 `json:"hours"`
}

type AttendanceService struct {
	repo      database.AttendanceRepository
	geofence  geofenceChecker
	publisher publisher.EventPublisher
	now       func() time.Time
	logger    *slog.Logger
}

func NewAttendanceService(repo database.AttendanceRepository, geofence geofenceChecker, pub publisher.EventPublisher, logger *slog.Logger) *AttendanceService {
	return &AttendanceService{
		repo:      repo,
		geofence:  geofence,
		publisher: pub,
		now:       time.Now,
		logger:    defaultLogger(logger).With("service", "attendance"),
	}
}

// ActiveShift returns the employee's open shift or domain.ErrNotFound.
func (s *AttendanceService) ActiveShift(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceInterval, error) {
	return s.repo.GetOpen(ctx, employeeID)
}

// ClockIn opens a verified shift if the reported position is inside the office
// geofence. The geofence result is returned even when the punch is refused.
func (s *AttendanceService) ClockIn(ctx context.Context, employeeID uuid.UUID, reported *domain.Coordinate) (*domain.AttendanceInterval, domain.GeofenceResult, error) {
	open, err := s.repo.GetOpen(ctx, employeeID)
	switch {
	case err == nil:
		return open, domain.GeofenceResult{}, domain.ErrShiftOpen
	case !errors.Is(err, domain.ErrNotFound):
		return nil, domain.GeofenceResult{}, fmt.Errorf("check open shift: %w", err)
	}

	result, err := s.geofence.Check(reported)
	if err != nil {
		return nil, domain.GeofenceResult{}, err
	}
	if !result.Inside {
		s.logger.InfoContext(ctx, "clock-in refused outside geofence",
			"employee_id", employeeID, "distance_m", result.DistanceMeters, "location_known", result.LocationKnown)
		return nil, result, domain.ErrOutsideGeofence
	}

	shift := &domain.AttendanceInterval{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		ClockIn:    s.now().UTC(),
		Location:   reported,
		Verified:   true,
		Status:     domain.AttendanceActive,
	}
	if err := s.repo.Insert(ctx, shift); err != nil {
		return nil, result, fmt.Errorf("insert attendance: %w", err)
	}

	s.publish(ctx, &domain.AttendanceEvent{
		Type:         domain.EventClockIn,
		AttendanceID: shift.ID,
		EmployeeID:   employeeID,
		At:           shift.ClockIn,
		Location:     reported,
		Verified:     true,
	})
	return shift, result, nil
}

// ClockOut closes the employee's open shift.
func (s *AttendanceService) ClockOut(ctx context.Context, employeeID uuid.UUID, comments string) (*domain.AttendanceInterval, error) {
	shift, err := s.repo.GetOpen(ctx, employeeID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, domain.ErrNoOpenShift
	}
	if err != nil {
		return nil, fmt.Errorf("find open shift: %w", err)
	}

	out := s.now().UTC()
	if out.Before(shift.ClockIn) {
		out = shift.ClockIn
	}
	if err := s.repo.Close(ctx, shift.ID, out, comments); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			// closed concurrently
			return nil, domain.ErrNoOpenShift
		}
		return nil, fmt.Errorf("close attendance: %w", err)
	}
	shift.ClockOut = &out
	shift.Comments = comments
	shift.Status = domain.AttendanceCompleted

	s.publish(ctx, &domain.AttendanceEvent{
		Type:         domain.EventClockOut,
		AttendanceID: shift.ID,
		EmployeeID:   employeeID,
		At:           out,
		Location:     shift.Location,
		Verified:     shift.Verified,
	})
	return shift, nil
}

func (s *AttendanceService) Recent(ctx context.Context, limit int) ([]domain.AttendanceInterval, error) {
	if limit <= 0 {
		limit = DefaultRecentLimit
	}
	if limit > MaxRecentLimit {
		limit = MaxRecentLimit
	}
	return s.repo.ListRecent(ctx, limit)
}

// History lists shifts that clocked in during [from, to) with their hours.
func (s *AttendanceService) History(ctx context.Context, from, to time.Time) ([]ShiftHours, error) {
	if !from.Before(to) {
		return nil, domain.NewValidationError("date", "window start must be before its end")
	}
	intervals, err := s.repo.ListByClockIn(ctx, &domain.AttendanceQuery{From: from, To: to})
	if err != nil {
		return nil, err
	}

	results := make([]ShiftHours, 0, len(intervals))
	for i := range intervals {
		sh := ShiftHours{AttendanceInterval: intervals[i]}
		if intervals[i].ClockOut != nil {
			d, err := elapsed(&intervals[i])
			if err != nil {
				s.logger.ErrorContext(ctx, "corrupt attendance in history", "error", err)
				return nil, err
			}
			sh.Hours = d.Hours()
		}
		results = append(results, sh)
	}
	return results, nil
}

func (s *AttendanceService) publish(ctx context.Context, event *domain.AttendanceEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishAttendance(ctx, event); err != nil {
		s.logger.ErrorContext(ctx, "publish attendance event", "type", event.Type, "attendance_id", event.AttendanceID, "error", err)
	}
}
