package domain

import (
	"time"

	"github.com/google/uuid"
)

type TaskStatus string

const (
	TaskTodo TaskStatus = "todo"
	TaskDone TaskStatus = "done"
)

type Task struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ClientID     uuid.UUID  `json:"client_id"`
	ClientName   string     `json:"client_name,omitempty"`
	AssignedTo   uuid.UUID  `json:"assigned_to"`
	AssigneeName string     `json:"assignee_name,omitempty"`
	DueDate      *time.Time `json:"due_date,omitempty"`
	Status       TaskStatus `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
}

type TaskFilter string

const (
	TaskFilterAll     TaskFilter = "all"
	TaskFilterPending TaskFilter = "pending"
	TaskFilterDone    TaskFilter = "done"
)
