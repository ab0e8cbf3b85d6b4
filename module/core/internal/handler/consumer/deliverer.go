package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"

	"github.com/23f3000115/agency-os/module/core/domain"
)

var _ Deliverer = (*MQTTDeliverer)(nil)

var errPublishTimeout = errors.New("mqtt publish timed out")

type mqttPublisher interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
}

type outboxMessage struct {
	MessageID string `json:"message_id"`
	SenderID  string `json:"sender_id"`
	Body      string `json:"message_body"`
	SentAt    int64  `json:"sent_at"`
}

// MQTTDeliverer publishes messages to a per-client outbox topic.
type MQTTDeliverer struct {
	client  mqttPublisher
	timeout time.Duration
}

func NewMQTTDeliverer(client mqttPublisher, timeout time.Duration) *MQTTDeliverer {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &MQTTDeliverer{client: client, timeout: timeout}
}

func OutboxTopic(clientID uuid.UUID) string {
	return "agency/clients/" + clientID.String() + "/messages"
}

func (d *MQTTDeliverer) Deliver(ctx context.Context, msg *domain.Message) error {
	payload, err := json.Marshal(outboxMessage{
		MessageID: msg.ID.String(),
		SenderID:  msg.SenderID.String(),
		Body:      msg.Body,
		SentAt:    msg.CreatedAt.Unix(),
	})
	if err != nil {
		return fmt.Errorf("marshal outbox message: %w", err)
	}

	token := d.client.Publish(OutboxTopic(msg.ClientID), 1, false, payload)
	select {
	case <-token.Done():
		return token.Error()
	case <-time.After(d.timeout):
		return errPublishTimeout
	case <-ctx.Done():
		return ctx.Err()
	}
}
