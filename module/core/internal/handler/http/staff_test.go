package http

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/service"
)

type mockStaffService struct {
	meFn             func(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	renameFn         func(ctx context.Context, id uuid.UUID, fullName string) error
	listEmployeesFn  func(ctx context.Context) ([]domain.Profile, error)
	updateEmployeeFn func(ctx context.Context, id uuid.UUID, u service.EmployeeUpdate) (*domain.Profile, error)
	removeEmployeeFn func(ctx context.Context, id uuid.UUID) error
}

func (m *mockStaffService) Me(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return m.meFn(ctx, id)
}

func (m *mockStaffService) Rename(ctx context.Context, id uuid.UUID, fullName string) error {
	return m.renameFn(ctx, id, fullName)
}

func (m *mockStaffService) ListEmployees(ctx context.Context) ([]domain.Profile, error) {
	return m.listEmployeesFn(ctx)
}

func (m *mockStaffService) UpdateEmployee(ctx context.Context, id uuid.UUID, u service.EmployeeUpdate) (*domain.Profile, error) {
	return m.updateEmployeeFn(ctx, id, u)
}

func (m *mockStaffService) RemoveEmployee(ctx context.Context, id uuid.UUID) error {
	return m.removeEmployeeFn(ctx, id)
}

func TestMe(t *testing.T) {
	svc := &mockStaffService{
		meFn: func(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
			return &domain.Profile{ID: id, FullName: "Asha", Role: domain.RoleEmployee, HourlyRate: decimal.RequireFromString("500")}, nil
		},
	}
	h := NewStaffHandler(svc)
	r := setupRouter(employeePrincipal, h.Register)
	w := do(t, r, "GET", "/me", nil)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp domain.Profile
	decode(t, w, &resp)
	if resp.ID != employeePrincipal.UserID || resp.FullName != "Asha" {
		t.Errorf("unexpected profile %+v", resp)
	}
}

func TestRename(t *testing.T) {
	var got string
	svc := &mockStaffService{
		renameFn: func(_ context.Context, _ uuid.UUID, fullName string) error {
			got = fullName
			return nil
		},
	}
	h := NewStaffHandler(svc)
	r := setupRouter(employeePrincipal, h.Register)
	w := do(t, r, "PATCH", "/me", renameRequest{FullName: "Asha K"})

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", w.Code)
	}
	if got != "Asha K" {
		t.Errorf("expected Asha K, got %q", got)
	}
}

func TestUpdateEmployee_Rate(t *testing.T) {
	id := uuid.New()
	svc := &mockStaffService{
		updateEmployeeFn: func(_ context.Context, got uuid.UUID, u service.EmployeeUpdate) (*domain.Profile, error) {
			if got != id {
				t.Fatalf("expected %s, got %s", id, got)
			}
			if u.HourlyRate == nil || !u.HourlyRate.Equal(decimal.RequireFromString("612.5")) {
				t.Fatalf("unexpected rate %v", u.HourlyRate)
			}
			if u.FullName != nil || u.Email != nil {
				t.Fatalf("expected only rate, got %+v", u)
			}
			return &domain.Profile{ID: id, HourlyRate: *u.HourlyRate}, nil
		},
	}
	h := NewStaffHandler(svc)
	r := setupRouter(ownerPrincipal, h.Register)
	w := do(t, r, "PATCH", "/staff/"+id.String(), map[string]any{"hourly_rate": "612.50"})

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
}

func TestUpdateEmployee_EmployeeForbidden(t *testing.T) {
	h := NewStaffHandler(&mockStaffService{})
	r := setupRouter(employeePrincipal, h.Register)
	w := do(t, r, "PATCH", "/staff/"+uuid.NewString(), map[string]any{"hourly_rate": 1})
	if w.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", w.Code)
	}
}

func TestRemoveEmployee_NotFound(t *testing.T) {
	svc := &mockStaffService{
		removeEmployeeFn: func(_ context.Context, _ uuid.UUID) error { return domain.ErrNotFound },
	}
	h := NewStaffHandler(svc)
	r := setupRouter(ownerPrincipal, h.Register)
	w := do(t, r, "DELETE", "/staff/"+uuid.NewString(), nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}
