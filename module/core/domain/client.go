package domain

import (
	"time"

	"github.com/google/uuid"
)

type Client struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Redacted hides contact details from employees.
func (c Client) Redacted() Client {
	return Client{ID: c.ID, Name: c.Name}
}
