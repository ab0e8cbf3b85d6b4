package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/publisher/rabbitmq"
)

const (
	consumerTag   = "agency-relay"
	prefetchCount = 8
)

type messageStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error
}

// Deliverer hands a message to the client-facing channel.
type Deliverer interface {
	Deliver(ctx context.Context, msg *domain.Message) error
}

// Channel is the subset of *amqp.Channel the relay consumes with.
type Channel interface {
	Qos(prefetchCount, prefetchSize int, global bool) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
}

// MessageRelay drains the client message queue. Deliveries are acked manually,
// so a crash before the status update leads to a redelivery.
type MessageRelay struct {
	ch        Channel
	messages  messageStore
	deliverer Deliverer
	logger    *slog.Logger
}

func NewMessageRelay(ch Channel, messages messageStore, deliverer Deliverer, logger *slog.Logger) *MessageRelay {
	if logger == nil {
		logger = slog.Default()
	}
	return &MessageRelay{
		ch:        ch,
		messages:  messages,
		deliverer: deliverer,
		logger:    logger.With("consumer", "client_messages"),
	}
}

// Run consumes until ctx is done or the channel closes.
func (r *MessageRelay) Run(ctx context.Context) error {
	if err := r.ch.Qos(prefetchCount, 0, false); err != nil {
		return fmt.Errorf("qos: %w", err)
	}
	deliveries, err := r.ch.Consume(rabbitmq.ClientMessageQueue, consumerTag, false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	r.logger.Info("consuming", "queue", rabbitmq.ClientMessageQueue)
	for {
		select {
		case <-ctx.Done():
			return nil
		case d, ok := <-deliveries:
			if !ok {
				return errors.New("delivery channel closed")
			}
			r.handle(ctx, d)
		}
	}
}

func (r *MessageRelay) handle(ctx context.Context, d amqp.Delivery) {
	var work rabbitmq.ClientMessage
	if err := json.Unmarshal(d.Body, &work); err != nil {
		r.logger.Warn("invalid relay message", "error", err)
		_ = d.Reject(false)
		return
	}
	id, err := uuid.Parse(work.MessageID)
	if err != nil {
		r.logger.Warn("invalid message id", "message_id", work.MessageID)
		_ = d.Reject(false)
		return
	}
	log := r.logger.With("message_id", id)

	msg, err := r.messages.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		// client deleted since it was queued
		log.Info("message gone, dropping")
		_ = d.Ack(false)
		return
	}
	if err != nil {
		log.Error("load message", "error", err)
		_ = d.Nack(false, true)
		return
	}
	if msg.Status == domain.MessageSent {
		_ = d.Ack(false)
		return
	}

	status := domain.MessageSent
	if err := r.deliverer.Deliver(ctx, msg); err != nil {
		log.Error("deliver message", "client_id", msg.ClientID, "error", err)
		status = domain.MessageFailed
	}
	if err := r.messages.UpdateStatus(ctx, id, status); err != nil {
		log.Error("update message status", "status", status, "error", err)
		_ = d.Nack(false, true)
		return
	}
	log.Info("message relayed", "status", status)
	_ = d.Ack(false)
}
