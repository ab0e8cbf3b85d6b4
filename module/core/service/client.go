package service

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database"
)

type ClientService struct {
	repo database.ClientRepository
	now  func() time.Time
}

func NewClientService(repo database.ClientRepository) *ClientService {
	return &ClientService{repo: repo, now: time.Now}
}

func (s *ClientService) Add(ctx context.Context, name, email string) (*domain.Client, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	vErr := &domain.ValidationError{}
	if name == "" {
		vErr.Add("name", "required")
	}
	if email == "" {
		vErr.Add("email", "required")
	} else if _, err := mail.ParseAddress(email); err != nil {
		vErr.Add("email", "invalid address")
	}
	if vErr.HasErrors() {
		return nil, vErr
	}

	c := &domain.Client{ID: uuid.New(), Name: name, Email: email, CreatedAt: s.now().UTC()}
	if err := s.repo.Insert(ctx, c); err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return c, nil
}

// List returns all clients; contact emails are only visible to owners.
func (s *ClientService) List(ctx context.Context, actor domain.Principal) ([]domain.Client, error) {
	clients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	if actor.IsOwner() {
		return clients, nil
	}
	redacted := make([]domain.Client, len(clients))
	for i, c := range clients {
		redacted[i] = c.Redacted()
	}
	return redacted, nil
}

func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.Delete(ctx, id)
}
