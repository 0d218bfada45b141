package messaging

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Repository defines the persistence interface for messages
type Repository interface {
	// FindByID finds a message by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Message, error)

	// FindConversation finds the messages between a seller and a customer
	FindConversation(ctx context.Context, sellerID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Message], error)

	// FindBySeller finds a seller's messages across conversations
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Message], error)

	// FindByCustomer finds a customer's messages across conversations
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Message], error)

	// Save persists a message
	Save(ctx context.Context, m *Message) error

	// Delete removes a message
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all messages
	Count(ctx context.Context) (int64, error)

	// ExistsBetween checks whether any message exists between a seller
	// and a customer
	ExistsBetween(ctx context.Context, sellerID, customerID uuid.UUID) (bool, error)

	// CountUnreadForSeller counts customer messages the seller has not read
	CountUnreadForSeller(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// CountUnreadForCustomer counts seller messages the customer has not read
	CountUnreadForCustomer(ctx context.Context, customerID uuid.UUID) (int64, error)

	// MarkConversationRead marks every unread message addressed to the
	// reader within a conversation. Seller readers consume customer
	// messages and vice versa.
	MarkConversationRead(ctx context.Context, sellerID, customerID uuid.UUID, sellerReader bool) error

	// MarkAllRead marks every unread message addressed to the participant
	// across all of their conversations, returning the number of messages
	// flipped.
	MarkAllRead(ctx context.Context, participantID uuid.UUID, sellerParticipant bool) (int64, error)
}
