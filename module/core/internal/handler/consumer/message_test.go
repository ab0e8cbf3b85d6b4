package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/23f3000115/agency-os/module/core/domain"
	"github.com/23f3000115/agency-os/module/core/internal/repository/publisher/rabbitmq"
)

type mockMessageStore struct {
	getByIDFn      func(ctx context.Context, id uuid.UUID) (*domain.Message, error)
	updateStatusFn func(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error
}

func (m *mockMessageStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Message, error) {
	return m.getByIDFn(ctx, id)
}

func (m *mockMessageStore) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.MessageStatus) error {
	return m.updateStatusFn(ctx, id, status)
}

type mockDeliverer struct {
	deliverFn func(ctx context.Context, msg *domain.Message) error
	calls     int
}

func (m *mockDeliverer) Deliver(ctx context.Context, msg *domain.Message) error {
	m.calls++
	return m.deliverFn(ctx, msg)
}

// fakeAcknowledger records how a delivery was settled.
type fakeAcknowledger struct {
	acked, nacked, rejected, requeued bool
}

func (f *fakeAcknowledger) Ack(uint64, bool) error { f.acked = true; return nil }

func (f *fakeAcknowledger) Nack(_ uint64, _ bool, requeue bool) error {
	f.nacked, f.requeued = true, requeue
	return nil
}

func (f *fakeAcknowledger) Reject(_ uint64, requeue bool) error {
	f.rejected, f.requeued = true, requeue
	return nil
}

type fakeChannel struct {
	deliveries chan amqp.Delivery
	queue      string
	autoAck    bool
}

func (f *fakeChannel) Qos(int, int, bool) error { return nil }

func (f *fakeChannel) Consume(queue, _ string, autoAck, _, _, _ bool, _ amqp.Table) (<-chan amqp.Delivery, error) {
	f.queue, f.autoAck = queue, autoAck
	return f.deliveries, nil
}

func delivery(t *testing.T, id string) (amqp.Delivery, *fakeAcknowledger) {
	t.Helper()
	body, err := json.Marshal(rabbitmq.ClientMessage{MessageID: id})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	ack := &fakeAcknowledger{}
	return amqp.Delivery{Acknowledger: ack, DeliveryTag: 1, Body: body}, ack
}

func queuedMessage(id uuid.UUID) *domain.Message {
	return &domain.Message{ID: id, ClientID: uuid.New(), Body: "hello", Status: domain.MessageQueued}
}

func TestHandle_Delivered(t *testing.T) {
	id := uuid.New()
	var status domain.MessageStatus
	store := &mockMessageStore{
		getByIDFn: func(_ context.Context, got uuid.UUID) (*domain.Message, error) {
			return queuedMessage(got), nil
		},
		updateStatusFn: func(_ context.Context, _ uuid.UUID, s domain.MessageStatus) error {
			status = s
			return nil
		},
	}
	dlv := &mockDeliverer{deliverFn: func(context.Context, *domain.Message) error { return nil }}
	relay := NewMessageRelay(nil, store, dlv, nil)

	d, ack := delivery(t, id.String())
	relay.handle(context.Background(), d)

	if status != domain.MessageSent {
		t.Errorf("expected sent, got %s", status)
	}
	if !ack.acked {
		t.Error("expected ack")
	}
}

func TestHandle_DeliveryFails(t *testing.T) {
	var status domain.MessageStatus
	store := &mockMessageStore{
		getByIDFn: func(_ context.Context, got uuid.UUID) (*domain.Message, error) {
			return queuedMessage(got), nil
		},
		updateStatusFn: func(_ context.Context, _ uuid.UUID, s domain.MessageStatus) error {
			status = s
			return nil
		},
	}
	dlv := &mockDeliverer{deliverFn: func(context.Context, *domain.Message) error { return errors.New("broker down") }}
	relay := NewMessageRelay(nil, store, dlv, nil)

	d, ack := delivery(t, uuid.NewString())
	relay.handle(context.Background(), d)

	if status != domain.MessageFailed {
		t.Errorf("expected failed, got %s", status)
	}
	if !ack.acked {
		t.Error("expected ack")
	}
}

func TestHandle_AlreadySentIsNoop(t *testing.T) {
	store := &mockMessageStore{
		getByIDFn: func(_ context.Context, got uuid.UUID) (*domain.Message, error) {
			m := queuedMessage(got)
			m.Status = domain.MessageSent
			return m, nil
		},
		updateStatusFn: func(context.Context, uuid.UUID, domain.MessageStatus) error {
			t.Fatal("UpdateStatus should not be called")
			return nil
		},
	}
	dlv := &mockDeliverer{deliverFn: func(context.Context, *domain.Message) error { return nil }}
	relay := NewMessageRelay(nil, store, dlv, nil)

	d, ack := delivery(t, uuid.NewString())
	relay.handle(context.Background(), d)

	if dlv.calls != 0 {
		t.Errorf("expected no delivery, got %d", dlv.calls)
	}
	if !ack.acked {
		t.Error("expected ack")
	}
}

func TestHandle_MessageGone(t *testing.T) {
	store := &mockMessageStore{
		getByIDFn: func(context.Context, uuid.UUID) (*domain.Message, error) { return nil, domain.ErrNotFound },
	}
	relay := NewMessageRelay(nil, store, &mockDeliverer{}, nil)

	d, ack := delivery(t, uuid.NewString())
	relay.handle(context.Background(), d)

	if !ack.acked {
		t.Error("expected ack")
	}
}

func TestHandle_LoadErrorRequeues(t *testing.T) {
	store := &mockMessageStore{
		getByIDFn: func(context.Context, uuid.UUID) (*domain.Message, error) { return nil, errors.New("db down") },
	}
	relay := NewMessageRelay(nil, store, &mockDeliverer{}, nil)

	d, ack := delivery(t, uuid.NewString())
	relay.handle(context.Background(), d)

	if !ack.nacked || !ack.requeued {
		t.Errorf("expected nack with requeue, got %+v", ack)
	}
}

func TestHandle_BadPayloadRejected(t *testing.T) {
	relay := NewMessageRelay(nil, &mockMessageStore{}, &mockDeliverer{}, nil)

	ack := &fakeAcknowledger{}
	relay.handle(context.Background(), amqp.Delivery{Acknowledger: ack, Body: []byte("{")})
	if !ack.rejected || ack.requeued {
		t.Errorf("expected reject without requeue, got %+v", ack)
	}

	d, ack := delivery(t, "not-a-uuid")
	relay.handle(context.Background(), d)
	if !ack.rejected {
		t.Errorf("expected reject, got %+v", ack)
	}
}

func TestRun_ConsumesUntilCancelled(t *testing.T) {
	id := uuid.New()
	done := make(chan struct{})
	store := &mockMessageStore{
		getByIDFn: func(_ context.Context, got uuid.UUID) (*domain.Message, error) {
			return queuedMessage(got), nil
		},
		updateStatusFn: func(context.Context, uuid.UUID, domain.MessageStatus) error {
			close(done)
			return nil
		},
	}
	dlv := &mockDeliverer{deliverFn: func(context.Context, *domain.Message) error { return nil }}
	ch := &fakeChannel{deliveries: make(chan amqp.Delivery, 1)}
	relay := NewMessageRelay(ch, store, dlv, nil)

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() { errCh <- relay.Run(ctx) }()

	d, _ := delivery(t, id.String())
	ch.deliveries <- d

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("delivery was not processed")
	}
	cancel()

	if err := <-errCh; err != nil {
		t.Errorf("expected nil error, got %v", err)
	}
	if ch.queue != rabbitmq.ClientMessageQueue || ch.autoAck {
		t.Errorf("unexpected consume args queue=%s autoAck=%v", ch.queue, ch.autoAck)
	}
}
