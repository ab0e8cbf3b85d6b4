package domain

import (
	"time"

	"github.com/google/uuid"
)

type MessageStatus string

const (
	MessageQueued MessageStatus = "queued"
	MessageSent   MessageStatus = "sent"
	MessageFailed MessageStatus = "failed"
)

const DirectionOutbound = "outbound"

type Message struct {
	ID        uuid.UUID     `json:"id"`
	ClientID  uuid.UUID     `json:"client_id"`
	SenderID  uuid.UUID     `json:"sender_id"`
	Body      string        `json:"message_body"`
	Direction string        `json:"direction"`
	Status    MessageStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}
