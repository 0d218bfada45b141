package messaging

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

const AggregateTypeMessage = "Message"

const (
	EventTypeMessageSent = "MessageSent"
)

// MessageSentEvent is raised when a message is sent in a conversation
type MessageSentEvent struct {
	shared.BaseDomainEvent
	SellerID   uuid.UUID `json:"seller_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Subject    string    `json:"subject,omitempty"`
	FromSeller bool      `json:"from_seller"`
}

func NewMessageSentEvent(m *Message) *MessageSentEvent {
	return &MessageSentEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeMessageSent, AggregateTypeMessage, m.ID),
		SellerID:        m.SellerID,
		CustomerID:      m.CustomerID,
		Subject:         m.Subject,
		FromSeller:      m.IsSellerMessage,
	}
}
