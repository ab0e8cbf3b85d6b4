package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type EmployeeRate struct {
	EmployeeID uuid.UUID       `json:"employee_id"`
	FullName   string          `json:"full_name"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
}

type PayrollPeriod struct {
	Start        time.Time `json:"start"`
	EndExclusive time.Time `json:"end_exclusive"`
}

// MonthPeriod spans the calendar month in loc.
func MonthPeriod(year int, month time.Month, loc *time.Location) PayrollPeriod {
	if loc == nil {
		loc = time.UTC
	}
	start := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	return PayrollPeriod{Start: start, EndExclusive: start.AddDate(0, 1, 0)}
}

type PayrollLineItem struct {
	EmployeeID   uuid.UUID       `json:"employee_id"`
	EmployeeName string          `json:"employee_name"`
	Worked       time.Duration   `json:"-"`
	TotalHours   decimal.Decimal `json:"total_hours"`
	HourlyRate   decimal.Decimal `json:"hourly_rate"`
	TotalPay     decimal.Decimal `json:"total_pay"`
}

// PayrollCSVHeader is the bank export column order.
var PayrollCSVHeader = []string{"Employee", "Hours Worked", "Rate", "Payout"}

func (li PayrollLineItem) Record() []string {
	return []string{
		li.EmployeeName,
		li.TotalHours.StringFixed(2),
		li.HourlyRate.StringFixed(2),
		li.TotalPay.StringFixed(2),
	}
}

type PayrollReport struct {
	Period       PayrollPeriod     `json:"period"`
	Items        []PayrollLineItem `json:"items"`
	TotalOutflow decimal.Decimal   `json:"total_outflow"`
}
