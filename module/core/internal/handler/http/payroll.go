package http

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"github.com/23f3000115/agency-os/module/core/domain"
)

type payrollService interface {
	Run(ctx context.Context, period domain.PayrollPeriod) (*domain.PayrollReport, error)
}

type PayrollHandler struct {
	payrollSvc payrollService
	loc        *time.Location
}

// NewPayrollHandler resolves calendar months in loc.
func NewPayrollHandler(payrollSvc payrollService, loc *time.Location) *PayrollHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollHandler{payrollSvc: payrollSvc, loc: loc}
}

func (h *PayrollHandler) Register(owner *gin.RouterGroup) {
	owner.GET("/payroll", h.GetPayroll)
}

func (h *PayrollHandler) GetPayroll(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year < 2000 || year > 9999 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid year parameter"})
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid month parameter"})
		return
	}

	period := domain.MonthPeriod(year, time.Month(month), h.loc)
	report, err := h.payrollSvc.Run(c.Request.Context(), period)
	if err != nil {
		respondError(c, err)
		return
	}

	name := fmt.Sprintf("payroll_%s_%d", time.Month(month), year)
	switch c.DefaultQuery("format", "json") {
	case "json":
		c.JSON(http.StatusOK, report)
	case "csv":
		writeCSV(c, name+".csv", report)
	case "xlsx":
		writeXLSX(c, name+".xlsx", report)
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid format parameter"})
	}
}

func writeCSV(c *gin.Context, filename string, report *domain.PayrollReport) {
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)

	w := csv.NewWriter(c.Writer)
	_ = w.Write(domain.PayrollCSVHeader)
	for _, li := range report.Items {
		_ = w.Write(li.Record())
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = c.Error(err)
	}
}

const payrollSheet = "Payroll"

func writeXLSX(c *gin.Context, filename string, report *domain.PayrollReport) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName("Sheet1", payrollSheet); err != nil {
		respondError(c, err)
		return
	}
	if err := f.SetSheetRow(payrollSheet, "A1", &domain.PayrollCSVHeader); err != nil {
		respondError(c, err)
		return
	}
	for i, li := range report.Items {
		hours, _ := li.TotalHours.Round(2).Float64()
		rate, _ := li.HourlyRate.Float64()
		pay, _ := li.TotalPay.Float64()
		if err := setRow(f, 1, i+2, []any{li.EmployeeName, hours, rate, pay}); err != nil {
			respondError(c, err)
			return
		}
	}
	outflow, _ := report.TotalOutflow.Float64()
	if err := setRow(f, 3, len(report.Items)+2, []any{"Total Outflow", outflow}); err != nil {
		respondError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Status(http.StatusOK)
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

// setRow writes values across the payroll sheet starting at (col, row), both 1-based.
func setRow(f *excelize.File, col, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return fmt.Errorf("payroll sheet cell: %w", err)
	}
	if err := f.SetSheetRow(payrollSheet, cell, &values); err != nil {
		return fmt.Errorf("payroll sheet row %d: %w", row, err)
	}
	return nil
}
