package messaging

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

const (
	maxSubjectLength = 255
	maxBodyLength    = 5000
)

// Message is a single message in a customer-seller conversation.
// IsSellerMessage records the direction: true when the seller wrote
// it, false when the customer did.
type Message struct {
	shared.BaseAggregateRoot
	SellerID        uuid.UUID `gorm:"type:uuid;not null;index:idx_message_conversation,priority:1"`
	CustomerID      uuid.UUID `gorm:"type:uuid;not null;index:idx_message_conversation,priority:2"`
	OrderID         uuid.UUID `gorm:"type:uuid"`
	Subject         string    `gorm:"type:varchar(255)"`
	Body            string    `gorm:"type:varchar(5000);not null"`
	IsSellerMessage bool      `gorm:"not null;default:false"`
	IsRead          bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Message) TableName() string {
	return "marketplace_messages"
}

// NewMessage creates a new message between a customer and a seller
func NewMessage(sellerID, customerID uuid.UUID, subject, body string, fromSeller bool) (*Message, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewValidationError("seller_id", "seller ID is required")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id", "customer ID is required")
	}
	if err := ValidateSubject(subject); err != nil {
		return nil, err
	}
	if err := ValidateBody(body); err != nil {
		return nil, err
	}

	m := &Message{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          sellerID,
		CustomerID:        customerID,
		Subject:           strings.TrimSpace(subject),
		Body:              body,
		IsSellerMessage:   fromSeller,
	}

	m.AddDomainEvent(NewMessageSentEvent(m))

	return m, nil
}

// SetOrderReference attaches an order to the message
func (m *Message) SetOrderReference(orderID uuid.UUID) {
	m.OrderID = orderID
	m.UpdatedAt = time.Now()
}

// MarkAsRead marks the message as read. Idempotent.
func (m *Message) MarkAsRead() {
	if m.IsRead {
		return
	}
	m.IsRead = true
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// MarkAsUnread marks the message as unread. Idempotent.
func (m *Message) MarkAsUnread() {
	if !m.IsRead {
		return
	}
	m.IsRead = false
	m.UpdatedAt = time.Now()
	m.IncrementVersion()
}

// HasOrderReference reports whether the message cites an order
func (m *Message) HasOrderReference() bool {
	return m.OrderID != uuid.Nil
}

// ValidateSubject checks the subject length
func ValidateSubject(subject string) error {
	if len(subject) > maxSubjectLength {
		return shared.NewValidationError("subject", "cannot exceed 255 characters")
	}
	return nil
}

// ValidateBody checks the body is present and within the length limit
func ValidateBody(body string) error {
	if strings.TrimSpace(body) == "" {
		return shared.NewValidationError("body", "message body is required")
	}
	if len(body) > maxBodyLength {
		return shared.NewValidationError("body", "cannot exceed 5000 characters")
	}
	return nil
}
