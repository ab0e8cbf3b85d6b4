package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Role string

const (
	RoleOwner    Role = "owner"
	RoleEmployee Role = "employee"
)

type Profile struct {
	ID         uuid.UUID       `json:"id"`
	FullName   string          `json:"full_name"`
	Email      string          `json:"email"`
	Role       Role            `json:"role"`
	HourlyRate decimal.Decimal `json:"hourly_rate"`
	CreatedAt  time.Time       `json:"created_at"`
}

// Principal is the authenticated caller resolved from a verified token.
type Principal struct {
	UserID   uuid.UUID
	Role     Role
	FullName string
}

func (p Principal) IsOwner() bool {
	return p.Role == RoleOwner
}
