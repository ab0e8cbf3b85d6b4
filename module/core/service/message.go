package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/database"
	"github.com/23f3000115/agency-os/module/core/internal/repository/publisher"
)

const maxMessageBody = 4000

type MessageService struct {
	messages  database.MessageRepository
	clients   database.ClientRepository
	publisher publisher.EventPublisher
	now       func() time.Time
	logger    *slog.Logger
}

func NewMessageService(messages database.MessageRepository, clients database.ClientRepository, pub publisher.EventPublisher, logger *slog.Logger) *MessageService {
	return &MessageService{
		messages:  messages,
		clients:   clients,
		publisher: pub,
		now:       time.Now,
		logger:    defaultLogger(logger).With("service", "message"),
	}
}

// Send queues an outbound message for the relay. The row is the source of truth;
// a failed publish leaves it queued.
func (s *MessageService) Send(ctx context.Context, senderID, clientID uuid.UUID, body string) (*domain.Message, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, domain.NewValidationError("message_body", "please write a message first")
	}
	if len(body) > maxMessageBody {
		return nil, domain.NewValidationError("message_body", fmt.Sprintf("must be at most %d characters", maxMessageBody))
	}
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return nil, err
	}

	msg := &domain.Message{
		ID:        uuid.New(),
		ClientID:  clientID,
		SenderID:  senderID,
		Body:      body,
		Direction: domain.DirectionOutbound,
		Status:    domain.MessageQueued,
		CreatedAt: s.now().UTC(),
	}
	if err := s.messages.Insert(ctx, msg); err != nil {
		return nil, fmt.Errorf("insert message: %w", err)
	}

	if err := s.publisher.PublishMessage(ctx, msg); err != nil {
		s.logger.ErrorContext(ctx, "publish client message", "message_id", msg.ID, "error", err)
	}
	return msg, nil
}
