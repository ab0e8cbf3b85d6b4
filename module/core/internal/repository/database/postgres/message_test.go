package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
)

func TestMessageInsert(t *testing.T) {
	db, mock := newMock(t)

	m := &domain.Message{ID: uuid.New(), ClientID: uuid.New(), SenderID: uuid.New(), Body: "hi",
		Direction: domain.DirectionOutbound, Status: domain.MessageQueued, CreatedAt: time.Unix(1715003456, 0)}
	mock.ExpectExec(`INSERT INTO communications`).
		WithArgs(m.ID, m.ClientID, m.SenderID, "hi", "outbound", "queued", m.CreatedAt).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := NewMessageRepo(db).Insert(context.Background(), m); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatal(err)
	}
}

func TestMessageGetByID(t *testing.T) {
	db, mock := newMock(t)

	id := uuid.New()
	mock.ExpectQuery(`FROM communications WHERE id = \$1`).
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows([]string{"id", "client_id", "sender_id", "message_body", "direction", "status", "created_at"}).
			AddRow(id.String(), uuid.NewString(), uuid.NewString(), "hi", "outbound", "sent", time.Now()))

	m, err := NewMessageRepo(db).GetByID(context.Background(), id)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Status != domain.MessageSent {
		t.Errorf("expected sent, got %s", m.Status)
	}
}

func TestMessageUpdateStatus(t *testing.T) {
	db, mock := newMock(t)

	id := uuid.New()
	mock.ExpectExec(`UPDATE communications SET status = \$1 WHERE id = \$2`).
		WithArgs("failed", id).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := NewMessageRepo(db).UpdateStatus(context.Background(), id, domain.MessageFailed); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}
