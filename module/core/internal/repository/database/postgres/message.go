package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database"
)

var _ database.MessageRepository = (*MessageRepo)(nil)

type MessageRepo struct {
	db *sql.DB
}

func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

func (r *MessageRepo) Insert(ctx context.Context, m *domain.Message) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO communications (id, client_id, sender_id, message_body, direction, status, created_at) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		m.ID, m.ClientID, m.SenderID, m.Body, m.Direction, string(m.Status), m.CreatedAt,
	)
	return err
}

func (r *MessageRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	var (
		m      domain.Message
		status string
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, client_id, sender_id, message_body, direction, status, created_at FROM communications WHERE id = $1`, id,
	).Scan(&m.ID, &m.ClientID, &m.SenderID, &m.Body, &m.Direction, &status, &m.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	m.Status = domain.MessageStatus(status)
	return &m, nil
}

func (r *MessageRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error {
	res, err := r.db.ExecContext(ctx, `UPDATE communications SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	return expectOneRow(res)
}
