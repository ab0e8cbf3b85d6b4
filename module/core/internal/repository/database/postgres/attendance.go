package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database"
)

var _ database.AttendanceRepository = (*AttendanceRepo)(nil)

const attendanceColumns = `a.id, a.employee_id, COALESCE(p.full_name, ''), a.clock_in, a.clock_out,
	a.location_lat, a.location_long, a.is_verified, a.status, COALESCE(a.comments, '')`

const (
	uniqueViolation   = pq.ErrorCode("23505")
	attendancePrimary = "attendance_logs_pkey"
)

const attendanceFrom = `FROM attendance_logs a LEFT JOIN profiles p ON p.id = a.employee_id`

type AttendanceRepo struct {
	db *sql.DB
}

func NewAttendanceRepo(db *sql.DB) *AttendanceRepo {
	return &AttendanceRepo{db: db}
}

func (r *AttendanceRepo) Insert(ctx context.Context, a *domain.AttendanceInterval) error {
	var lat, lon sql.NullFloat64
	if a.Location != nil {
		lat = sql.NullFloat64{Float64: a.Location.Lat, Valid: true}
		lon = sql.NullFloat64{Float64: a.Location.Lon, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO attendance_logs (id, employee_id, clock_in, location_lat, location_long, is_verified, status) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		a.ID, a.EmployeeID, a.ClockIn, lat, lon, a.Verified, string(a.Status),
	)
	// a concurrent clock-in won the race for idx_attendance_one_open
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation && pqErr.Constraint != attendancePrimary {
		return domain.ErrShiftOpen
	}
	return err
}

func (r *AttendanceRepo) GetOpen(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceInterval, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+attendanceColumns+` `+attendanceFrom+` WHERE a.employee_id = $1 AND a.clock_out IS NULL ORDER BY a.clock_in DESC LIMIT 1`,
		employeeID,
	)
	a, err := scanAttendance(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

func (r *AttendanceRepo) Close(ctx context.Context, id uuid.UUID, clockOut time.Time, comments string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE attendance_logs SET clock_out = $1, comments = $2, status = $3 WHERE id = $4 AND clock_out IS NULL`,
		clockOut, comments, string(domain.AttendanceCompleted), id,
	)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func (r *AttendanceRepo) ListRecent(ctx context.Context, limit int) ([]domain.AttendanceInterval, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+attendanceColumns+` `+attendanceFrom+` ORDER BY a.clock_in DESC LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

func (r *AttendanceRepo) ListByClockIn(ctx context.Context, query *domain.AttendanceQuery) ([]domain.AttendanceInterval, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if query.EmployeeID != nil {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+attendanceColumns+` `+attendanceFrom+` WHERE a.clock_in >= $1 AND a.clock_in < $2 AND a.employee_id = $3 ORDER BY a.clock_in DESC`,
			query.From, query.To, *query.EmployeeID,
		)
	} else {
		rows, err = r.db.QueryContext(ctx,
			`SELECT `+attendanceColumns+` `+attendanceFrom+` WHERE a.clock_in >= $1 AND a.clock_in < $2 ORDER BY a.clock_in DESC`,
			query.From, query.To,
		)
	}
	if err != nil {
		return nil, err
	}
	return collectAttendance(rows)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAttendance(s scanner) (*domain.AttendanceInterval, error) {
	var (
		a        domain.AttendanceInterval
		clockOut sql.NullTime
		lat, lon sql.NullFloat64
		status   string
	)
	if err := s.Scan(&a.ID, &a.EmployeeID, &a.EmployeeName, &a.ClockIn, &clockOut,
		&lat, &lon, &a.Verified, &status, &a.Comments); err != nil {
		return nil, err
	}
	if clockOut.Valid {
		t := clockOut.Time
		a.ClockOut = &t
	}
	if lat.Valid && lon.Valid {
		a.Location = &domain.Coordinate{Lat: lat.Float64, Lon: lon.Float64}
	}
	a.Status = domain.AttendanceStatus(status)
	return &a, nil
}

func collectAttendance(rows *sql.Rows) ([]domain.AttendanceInterval, error) {
	defer func() { _ = rows.Close() }()

	var results []domain.AttendanceInterval
	for rows.Next() {
		a, err := scanAttendance(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *a)
	}
	return results, rows.Err()
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
