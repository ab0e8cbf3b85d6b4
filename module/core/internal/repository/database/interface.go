package database

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
)

type AttendanceRepository interface {
	Insert(ctx context.Context, a *domain.AttendanceInterval) error
	GetOpen(ctx context.Context, employeeID uuid.UUID) (*domain.AttendanceInterval, error)
	Close(ctx context.Context, id uuid.UUID, clockOut time.Time, comments string) error
	ListRecent(ctx context.Context, limit int) ([]domain.AttendanceInterval, error)
	ListByClockIn(ctx context.Context, query *domain.AttendanceQuery) ([]domain.AttendanceInterval, error)
}

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ListByRole(ctx context.Context, role domain.Role) ([]domain.Profile, error)
	Update(ctx context.Context, p *domain.Profile) error
	Rename(ctx context.Context, id uuid.UUID, fullName string) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type TaskRepository interface {
	Insert(ctx context.Context, t *domain.Task) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error)
	ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]domain.Task, error)
	List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error
}

type ClientRepository interface {
	Insert(ctx context.Context, c *domain.Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Client, error)
	List(ctx context.Context) ([]domain.Client, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type MessageRepository interface {
	Insert(ctx context.Context, m *domain.Message) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error
}
