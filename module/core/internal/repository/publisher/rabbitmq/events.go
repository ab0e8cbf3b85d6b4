package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/publisher"
)

var _ publisher.EventPublisher = (*EventPublisher)(nil)

const (
	ExchangeName         = "agency.events"
	AttendanceQueue      = "attendance_events"
	ClientMessageQueue   = "client_messages"
	attendanceRoutingKey = "attendance"
)

// Channel is the subset of *amqp.Channel the publisher needs.
type Channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type EventPublisher struct {
	ch Channel
}

// Topology is the subset of *amqp.Channel needed to declare exchanges and queues.
type Topology interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
}

type publishChannel interface {
	Topology
	Channel
	Close() error
}

// Declare sets up the topology shared by the publisher and the relay.
func Declare(ch Topology) error {
	if err := ch.ExchangeDeclare(ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := ch.QueueDeclare(AttendanceQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	if err := ch.QueueBind(AttendanceQueue, "", ExchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	if _, err := ch.QueueDeclare(ClientMessageQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	return nil
}

func NewEventPublisher(conn *amqp.Connection) (*EventPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("rabbitmq channel: %w", err)
	}
	return newEventPublisher(ch)
}

func newEventPublisher(ch publishChannel) (*EventPublisher, error) {
	if err := Declare(ch); err != nil {
		_ = ch.Close()
		return nil, err
	}
	return &EventPublisher{ch: ch}, nil
}

type attendanceMessage struct {
	Type         domain.AttendanceEventType `json:"type"`
	AttendanceID string                     `json:"attendance_id"`
	EmployeeID   string                     `json:"employee_id"`
	Timestamp    int64                      `json:"timestamp"`
	Location     *domain.Coordinate         `json:"location,omitempty"`
	Verified     bool                       `json:"is_verified"`
}

// ClientMessage is the relay work item; the relay reloads the row by id.
type ClientMessage struct {
	MessageID string `json:"message_id"`
}

func (p *EventPublisher) PublishAttendance(ctx context.Context, event *domain.AttendanceEvent) error {
	body, err := json.Marshal(attendanceMessage{
		Type:         event.Type,
		AttendanceID: event.AttendanceID.String(),
		EmployeeID:   event.EmployeeID.String(),
		Timestamp:    event.At.Unix(),
		Location:     event.Location,
		Verified:     event.Verified,
	})
	if err != nil {
		return fmt.Errorf("marshal attendance event: %w", err)
	}

	return p.ch.PublishWithContext(ctx, ExchangeName, attendanceRoutingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
}

func (p *EventPublisher) PublishMessage(ctx context.Context, msg *domain.Message) error {
	body, err := json.Marshal(ClientMessage{MessageID: msg.ID.String()})
	if err != nil {
		return fmt.Errorf("marshal client message: %w", err)
	}

	// default exchange routes by queue name
	return p.ch.PublishWithContext(ctx, "", ClientMessageQueue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID.String(),
		Body:         body,
	})
}
