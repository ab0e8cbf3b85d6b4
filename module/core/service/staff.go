package service

import (
	"context"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database"
)

type StaffService struct {
	repo database.ProfileRepository
}

func NewStaffService(repo database.ProfileRepository) *StaffService {
	return &StaffService{repo: repo}
}

func (s *StaffService) Me(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *StaffService) Rename(ctx context.Context, id uuid.UUID, fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if fullName == "" {
		return domain.NewValidationError("full_name", "required")
	}
	return s.repo.Rename(ctx, id, fullName)
}

func (s *StaffService) ListEmployees(ctx context.Context) ([]domain.Profile, error) {
	return s.repo.ListByRole(ctx, domain.RoleEmployee)
}

type EmployeeUpdate struct {
	FullName   *string
	Email      *string
	HourlyRate *decimal.Decimal
}

// UpdateEmployee applies the non-nil fields of u to an employee profile.
func (s *StaffService) UpdateEmployee(ctx context.Context, id uuid.UUID, u EmployeeUpdate) (*domain.Profile, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p.Role != domain.RoleEmployee {
		return nil, domain.ErrNotFound
	}

	vErr := &domain.ValidationError{}
	if u.FullName != nil {
		if name := strings.TrimSpace(*u.FullName); name == "" {
			vErr.Add("full_name", "required")
		} else {
			p.FullName = name
		}
	}
	if u.Email != nil {
		if email := strings.TrimSpace(*u.Email); email == "" {
			vErr.Add("email", "required")
		} else if _, err := mail.ParseAddress(email); err != nil {
			vErr.Add("email", "invalid address")
		} else {
			p.Email = email
		}
	}
	if u.HourlyRate != nil {
		if u.HourlyRate.IsNegative() {
			vErr.Add("hourly_rate", "must not be negative")
		} else {
			p.HourlyRate = u.HourlyRate.Round(2)
		}
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	if err := s.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *StaffService) RemoveEmployee(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
