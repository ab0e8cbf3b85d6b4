package service

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database"
)

var hourNanos = decimal.NewFromInt(int64(time.Hour))

// ComputePayroll totals completed hours and pay per employee for intervals whose
// clock-in falls in [periodStart, periodEndExclusive). Selection is by clock-in only:
// a shift that starts inside the period counts in full even if it ends after it.
//
// Open shifts are skipped entirely. Employees without a rate are paid at 0. Output is
// sorted by employee name, then id.
func ComputePayroll(intervals []domain.AttendanceInterval, rates map[uuid.UUID]domain.EmployeeRate, periodStart, periodEndExclusive time.Time) ([]domain.PayrollLineItem, error) {
	if len(intervals) == 0 || len(rates) == 0 {
		return []domain.PayrollLineItem{}, nil
	}

	start := periodStart.UTC()
	end := periodEndExclusive.UTC()

	worked := make(map[uuid.UUID]time.Duration)
	names := make(map[uuid.UUID]string)
	for i := range intervals {
		iv := &intervals[i]
		in := iv.ClockIn.UTC()
		if in.Before(start) || !in.Before(end) {
			continue
		}
		if iv.ClockOut == nil {
			continue
		}
		d, err := elapsed(iv)
		if err != nil {
			return nil, err
		}
		worked[iv.EmployeeID] += d
		if _, ok := names[iv.EmployeeID]; !ok {
			names[iv.EmployeeID] = iv.EmployeeName
		}
	}

	items := make([]domain.PayrollLineItem, 0, len(worked))
	for employeeID, d := range worked {
		li := domain.PayrollLineItem{
			EmployeeID:   employeeID,
			EmployeeName: names[employeeID],
			Worked:       d,
			HourlyRate:   decimal.Zero,
		}
		if rate, ok := rates[employeeID]; ok {
			li.HourlyRate = rate.HourlyRate
			if rate.FullName != "" {
				li.EmployeeName = rate.FullName
			}
		}
		nanos := decimal.NewFromInt(int64(d))
		li.TotalHours = nanos.Div(hourNanos).Round(4)
		// pay from exact elapsed time, rounded once to the cent
		li.TotalPay = li.HourlyRate.Mul(nanos).Div(hourNanos).Round(2)
		items = append(items, li)
	}

	sort.Slice(items, func(i, j int) bool {
		if items[i].EmployeeName != items[j].EmployeeName {
			return items[i].EmployeeName < items[j].EmployeeName
		}
		return items[i].EmployeeID.String() < items[j].EmployeeID.String()
	})
	return items, nil
}

// elapsed is the completed interval's duration. A clock-out before the clock-in
// is corrupt data and yields ErrInvalidInterval.
func elapsed(iv *domain.AttendanceInterval) (time.Duration, error) {
	in, out := iv.ClockIn.UTC(), iv.ClockOut.UTC()
	if out.Before(in) {
		return 0, fmt.Errorf("%w: %s clocks out at %s before clocking in at %s",
			domain.ErrInvalidInterval, iv.ID, out.Format(time.RFC3339), in.Format(time.RFC3339))
	}
	return out.Sub(in), nil
}

// TotalOutflow sums the payouts of items.
func TotalOutflow(items []domain.PayrollLineItem) decimal.Decimal {
	total := decimal.Zero
	for _, li := range items {
		total = total.Add(li.TotalPay)
	}
	return total
}

type PayrollService struct {
	attendance database.AttendanceRepository
	profiles   database.ProfileRepository
	logger     *slog.Logger
}

func NewPayrollService(attendance database.AttendanceRepository, profiles database.ProfileRepository, logger *slog.Logger) *PayrollService {
	return &PayrollService{
		attendance: attendance,
		profiles:   profiles,
		logger:     defaultLogger(logger).With("service", "payroll"),
	}
}

// Run fetches the period's attendance and employee rates and aggregates them.
func (s *PayrollService) Run(ctx context.Context, period domain.PayrollPeriod) (*domain.PayrollReport, error) {
	if !period.Start.Before(period.EndExclusive) {
		return nil, domain.NewValidationError("period", "start must be before end")
	}

	intervals, err := s.attendance.ListByClockIn(ctx, &domain.AttendanceQuery{
		From: period.Start,
		To:   period.EndExclusive,
	})
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}

	employees, err := s.profiles.ListByRole(ctx, domain.RoleEmployee)
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	rates := make(map[uuid.UUID]domain.EmployeeRate, len(employees))
	for _, p := range employees {
		rates[p.ID] = domain.EmployeeRate{EmployeeID: p.ID, FullName: p.FullName, HourlyRate: p.HourlyRate}
	}

	items, err := ComputePayroll(intervals, rates, period.Start, period.EndExclusive)
	if err != nil {
		s.logger.ErrorContext(ctx, "payroll aborted on corrupt attendance", "error", err)
		return nil, err
	}

	report := &domain.PayrollReport{
		Period:       period,
		Items:        items,
		TotalOutflow: TotalOutflow(items),
	}
	s.logger.InfoContext(ctx, "payroll computed",
		"period_start", period.Start, "employees", len(items), "total_outflow", report.TotalOutflow.StringFixed(2))
	return report, nil
}
