package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
)

func TestClientService_Add(t *testing.T) {
	var stored *domain.Client
	repo := &mockClientRepo{
		insertFn: func(_ context.Context, c *domain.Client) error {
			stored = c
			return nil
		},
	}
	svc := NewClientService(repo)
	svc.now = fixedClock(punchTime)

	c, err := svc.Add(context.Background(), " Acme Foods ", "ops@acme.example")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stored != c || c.Name != "Acme Foods" || c.ID == uuid.Nil || !c.CreatedAt.Equal(punchTime) {
		t.Errorf("unexpected client %+v", c)
	}
}

func TestClientService_AddValidation(t *testing.T) {
	tests := []struct {
		name, clientName, email, field string
	}{
		{"missing name", "", "a@b.example", "name"},
		{"missing email", "Acme", " ", "email"},
		{"bad email", "Acme", "not-an-email", "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClientService(&mockClientRepo{}).Add(context.Background(), tt.clientName, tt.email)
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if _, ok := vErr.FieldErrors[tt.field]; !ok {
				t.Errorf("expected error on %s, got %v", tt.field, vErr.FieldErrors)
			}
		})
	}
}

func TestClientService_ListRedactsForEmployees(t *testing.T) {
	repo := &mockClientRepo{
		listFn: func(context.Context) ([]domain.Client, error) {
			return []domain.Client{{ID: uuid.New(), Name: "Acme", Email: "ops@acme.example"}}, nil
		},
	}
	svc := NewClientService(repo)

	owner, err := svc.List(context.Background(), domain.Principal{Role: domain.RoleOwner})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if owner[0].Email == "" {
		t.Error("expected owner to see email")
	}

	employee, err := svc.List(context.Background(), domain.Principal{Role: domain.RoleEmployee})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if employee[0].Email != "" || employee[0].Name != "Acme" {
		t.Errorf("expected redacted client, got %+v", employee[0])
	}
}
