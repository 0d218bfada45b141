package messaging

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/messaging"
)

// SendMessageRequest represents one side contacting the other.
// FromSeller marks the seller as the sender; the default is a customer
// writing to the seller.
type SendMessageRequest struct {
	SellerID   uuid.UUID  `json:"seller_id" binding:"required"`
	CustomerID uuid.UUID  `json:"customer_id" binding:"required"`
	OrderID    *uuid.UUID `json:"order_id"`
	Subject    string     `json:"subject" binding:"max=255"`
	Body       string     `json:"body" binding:"required,max=5000"`
	FromSeller bool       `json:"from_seller"`
}

// ReplyRequest represents a reply within an existing conversation.
// The direction is the opposite of the message being replied to.
type ReplyRequest struct {
	Body string `json:"body" binding:"required,max=5000"`
}

// MarkConversationReadRequest identifies which participant is reading
// the conversation
type MarkConversationReadRequest struct {
	Participant string `json:"participant" binding:"required,oneof=seller customer"`
}

// MessageResponse represents a message in API responses
type MessageResponse struct {
	ID              uuid.UUID `json:"id"`
	SellerID        uuid.UUID `json:"seller_id"`
	CustomerID      uuid.UUID `json:"customer_id"`
	OrderID         uuid.UUID `json:"order_id,omitempty"`
	Subject         string    `json:"subject"`
	Body            string    `json:"body"`
	IsSellerMessage bool      `json:"is_seller_message"`
	IsRead          bool      `json:"is_read"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// UnreadCountResponse reports the unread message count for one side
// of the conversation
type UnreadCountResponse struct {
	Count int64 `json:"count"`
}

// MarkAllReadResponse reports how many messages a read sweep flipped
type MarkAllReadResponse struct {
	MarkedRead int64 `json:"marked_read"`
}

// ToMessageResponse converts a domain Message to MessageResponse
func ToMessageResponse(m *messaging.Message) MessageResponse {
	return MessageResponse{
		ID:              m.ID,
		SellerID:        m.SellerID,
		CustomerID:      m.CustomerID,
		OrderID:         m.OrderID,
		Subject:         m.Subject,
		Body:            m.Body,
		IsSellerMessage: m.IsSellerMessage,
		IsRead:          m.IsRead,
		CreatedAt:       m.CreatedAt,
		UpdatedAt:       m.UpdatedAt,
	}
}

// ToMessageResponses converts a slice of domain Messages
func ToMessageResponses(messages []messaging.Message) []MessageResponse {
	responses := make([]MessageResponse, len(messages))
	for i := range messages {
		responses[i] = ToMessageResponse(&messages[i])
	}
	return responses
}
