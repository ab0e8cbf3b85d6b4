package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database"
)

var _ database.TaskRepository = (*TaskRepo)(nil)

const taskSelect = `SELECT t.id, t.title, COALESCE(t.description, ''), t.client_id, COALESCE(c.name, ''),
	t.assigned_to, COALESCE(p.full_name, ''), t.due_date, t.status, t.created_at
	FROM tasks t
	LEFT JOIN clients c ON c.id = t.client_id
	LEFT JOIN profiles p ON p.id = t.assigned_to`

type TaskRepo struct {
	db *sql.DB
}

func NewTaskRepo(db *sql.DB) *TaskRepo {
	return &TaskRepo{db: db}
}

func (r *TaskRepo) Insert(ctx context.Context, t *domain.Task) error {
	var due sql.NullTime
	if t.DueDate != nil {
		due = sql.NullTime{Time: *t.DueDate, Valid: true}
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tasks (id, title, description, client_id, assigned_to, due_date, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		t.ID, t.Title, t.Description, t.ClientID, t.AssignedTo, due, string(t.Status), t.CreatedAt,
	)
	return err
}

func (r *TaskRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	row := r.db.QueryRowContext(ctx, taskSelect+` WHERE t.id = $1`, id)
	t, err := scanTask(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	return t, err
}

func (r *TaskRepo) ListByAssignee(ctx context.Context, employeeID uuid.UUID) ([]domain.Task, error) {
	rows, err := r.db.QueryContext(ctx, taskSelect+` WHERE t.assigned_to = $1 ORDER BY t.created_at DESC`, employeeID)
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepo) List(ctx context.Context, filter domain.TaskFilter) ([]domain.Task, error) {
	var (
		rows *sql.Rows
		err  error
	)
	switch filter {
	case domain.TaskFilterPending:
		rows, err = r.db.QueryContext(ctx, taskSelect+` WHERE t.status <> $1 ORDER BY t.created_at DESC`, string(domain.TaskDone))
	case domain.TaskFilterDone:
		rows, err = r.db.QueryContext(ctx, taskSelect+` WHERE t.status = $1 ORDER BY t.created_at DESC`, string(domain.TaskDone))
	default:
		rows, err = r.db.QueryContext(ctx, taskSelect+` ORDER BY t.created_at DESC`)
	}
	if err != nil {
		return nil, err
	}
	return collectTasks(rows)
}

func (r *TaskRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.TaskStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE tasks SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}

func scanTask(s scanner) (*domain.Task, error) {
	var (
		t      domain.Task
		due    sql.NullTime
		status string
	)
	if err := s.Scan(&t.ID, &t.Title, &t.Description, &t.ClientID, &t.ClientName,
		&t.AssignedTo, &t.AssigneeName, &due, &status, &t.CreatedAt); err != nil {
		return nil, err
	}
	if due.Valid {
		d := due.Time
		t.DueDate = &d
	}
	t.Status = domain.TaskStatus(status)
	return &t, nil
}

func collectTasks(rows *sql.Rows) ([]domain.Task, error) {
	defer func() { _ = rows.Close() }()

	var results []domain.Task
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		results = append(results, *t)
	}
	return results, rows.Err()
}
