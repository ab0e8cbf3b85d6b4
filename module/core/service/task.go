package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database"
)

type TaskService struct {
	repo database.TaskRepository
	now  func() time.Time
}

func NewTaskService(repo database.TaskRepository) *TaskService {
	return &TaskService{repo: repo, now: time.Now}
}

func (s *TaskService) Dispatch(ctx context.Context, task *domain.Task) (*domain.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	vErr := &domain.ValidationError{}
	if task.Title == "" {
		vErr.Add("title", "required")
	}
	if task.ClientID == uuid.Nil {
		vErr.Add("client_id", "required")
	}
	if task.AssignedTo == uuid.Nil {
		vErr.Add("assigned_to", "required")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	task.ID = uuid.New()
	task.Status = domain.TaskTodo
	task.CreatedAt = s.now().UTC()
	if err := s.repo.Insert(ctx, task); err != nil {
		return nil, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (s *TaskService) ListAssigned(ctx context.Context, employeeID uuid.UUID) ([]domain.Task, error) {
	return s.repo.ListByAssignee(ctx, employeeID)
}

func (s *TaskService) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	switch filter {
	case "", domain.TaskFilterAll, domain.TaskFilterPending, domain.TaskFilterDone:
	default:
		return nil, domain.NewValidationError("status", "must be all, pending or done")
	}
	return s.repo.List(ctx, filter)
}

// MarkDone completes a task. Employees may only complete their own tasks.
func (s *TaskService) MarkDone(ctx context.Context, actor domain.Principal, taskID uuid.UUID) (*domain.Task, error) {
	task, err := s.repo.GetByID(ctx, taskID)
	if err != nil {
		return nil, err
	}
	if !actor.IsOwner() && task.AssignedTo != actor.UserID {
		return nil, domain.ErrForbidden
	}
	if task.Status == domain.TaskDone {
		return task, nil
	}
	if err := s.repo.UpdateStatus(ctx, taskID, domain.TaskDone); err != nil {
		return nil, fmt.Errorf("update task: %w", err)
	}
	task.Status = domain.TaskDone
	return task, nil
}
