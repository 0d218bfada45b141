package messaging

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/marketplace"
	"github.com/marketplace/backend/internal/domain/messaging"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
)

// MessageService handles customer-seller conversations and the policy
// gate deciding who may start one
type MessageService struct {
	messageRepo messaging.Repository
	sellerRepo  seller.Repository
	policies    marketplace.Policies
	eventBus    shared.EventPublisher
}

// NewMessageService creates a new MessageService
func NewMessageService(
	messageRepo messaging.Repository,
	sellerRepo seller.Repository,
	policies marketplace.Policies,
	eventBus shared.EventPublisher,
) *MessageService {
	return &MessageService{
		messageRepo: messageRepo,
		sellerRepo:  sellerRepo,
		policies:    policies,
		eventBus:    eventBus,
	}
}

// Send sends a message in either direction, subject to the
// messaging gate
func (s *MessageService) Send(ctx context.Context, req SendMessageRequest) (*MessageResponse, error) {
	if !s.policies.Enabled() || !s.policies.MessagingEnabled() {
		return nil, shared.NewDomainError("POLICY_VIOLATION", "Messaging is disabled")
	}

	if err := s.authorizeContact(ctx, req); err != nil {
		return nil, err
	}

	msg, err := messaging.NewMessage(req.SellerID, req.CustomerID, req.Subject, req.Body, req.FromSeller)
	if err != nil {
		return nil, err
	}
	if req.OrderID != nil {
		msg.SetOrderReference(*req.OrderID)
	}

	if err := s.messageRepo.Save(ctx, msg); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, msg)

	response := ToMessageResponse(msg)
	return &response, nil
}

// authorizeContact is the messaging gate. A seller may only write to
// customers while able to sell. Customer contact is open with anonymous
// messaging enabled; otherwise the seller must be approved and active,
// and the customer needs either an existing conversation with the
// seller or an order reference on the message.
func (s *MessageService) authorizeContact(ctx context.Context, req SendMessageRequest) error {
	sel, err := s.sellerRepo.FindByID(ctx, req.SellerID)
	if err != nil {
		return err
	}

	if req.FromSeller {
		if !sel.CanSell() {
			return shared.NewDomainError("POLICY_VIOLATION", "Seller is not allowed to send messages")
		}
		return nil
	}

	if s.policies.AnonymousMessagingAllowed() {
		return nil
	}

	if !sel.CanSell() {
		return shared.NewDomainError("POLICY_VIOLATION", "Seller is not accepting messages")
	}

	if req.OrderID != nil {
		return nil
	}

	prior, err := s.messageRepo.ExistsBetween(ctx, req.SellerID, req.CustomerID)
	if err != nil {
		return err
	}
	if !prior {
		return shared.NewDomainError("POLICY_VIOLATION", "Messaging this seller requires a prior order or conversation")
	}
	return nil
}

// Reply answers a message in an existing conversation. The reply
// direction is the opposite of the original message.
func (s *MessageService) Reply(ctx context.Context, messageID uuid.UUID, req ReplyRequest) (*MessageResponse, error) {
	if !s.policies.Enabled() || !s.policies.MessagingEnabled() {
		return nil, shared.NewDomainError("POLICY_VIOLATION", "Messaging is disabled")
	}

	original, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	subject := original.Subject
	if subject != "" && len(subject) <= 251 {
		subject = "Re: " + subject
	}

	reply, err := messaging.NewMessage(original.SellerID, original.CustomerID, subject, req.Body, !original.IsSellerMessage)
	if err != nil {
		return nil, err
	}
	if original.HasOrderReference() {
		reply.SetOrderReference(original.OrderID)
	}

	if err := s.messageRepo.Save(ctx, reply); err != nil {
		return nil, err
	}

	// Answering implies the original was read
	original.MarkAsRead()
	if err := s.messageRepo.Save(ctx, original); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, reply)

	response := ToMessageResponse(reply)
	return &response, nil
}

// GetByID retrieves a message by ID
func (s *MessageService) GetByID(ctx context.Context, messageID uuid.UUID) (*MessageResponse, error) {
	msg, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return nil, err
	}

	response := ToMessageResponse(msg)
	return &response, nil
}

// GetConversation retrieves the messages between a seller and a customer
func (s *MessageService) GetConversation(ctx context.Context, sellerID, customerID uuid.UUID, filter shared.Filter) ([]MessageResponse, int64, error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
		filter.OrderDir = "asc"
	}

	page, err := s.messageRepo.FindConversation(ctx, sellerID, customerID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToMessageResponses(page.Items), page.Total, nil
}

// ListBySeller retrieves a seller's inbox across conversations
func (s *MessageService) ListBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]MessageResponse, int64, error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	page, err := s.messageRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToMessageResponses(page.Items), page.Total, nil
}

// ListByCustomer retrieves a customer's inbox across conversations
func (s *MessageService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) ([]MessageResponse, int64, error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	page, err := s.messageRepo.FindByCustomer(ctx, customerID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToMessageResponses(page.Items), page.Total, nil
}

// MarkRead marks a message as read
func (s *MessageService) MarkRead(ctx context.Context, messageID uuid.UUID) error {
	return s.setRead(ctx, messageID, true)
}

// MarkUnread marks a message as unread
func (s *MessageService) MarkUnread(ctx context.Context, messageID uuid.UUID) error {
	return s.setRead(ctx, messageID, false)
}

func (s *MessageService) setRead(ctx context.Context, messageID uuid.UUID, read bool) error {
	msg, err := s.messageRepo.FindByID(ctx, messageID)
	if err != nil {
		return err
	}

	if read {
		msg.MarkAsRead()
	} else {
		msg.MarkAsUnread()
	}

	return s.messageRepo.Save(ctx, msg)
}

// MarkConversationRead marks every unread message addressed to the
// reading participant within a conversation. Idempotent.
func (s *MessageService) MarkConversationRead(ctx context.Context, sellerID, customerID uuid.UUID, req MarkConversationReadRequest) error {
	return s.messageRepo.MarkConversationRead(ctx, sellerID, customerID, req.Participant == "seller")
}

// MarkAllReadForSeller marks every customer message to the seller as read
func (s *MessageService) MarkAllReadForSeller(ctx context.Context, sellerID uuid.UUID) (*MarkAllReadResponse, error) {
	marked, err := s.messageRepo.MarkAllRead(ctx, sellerID, true)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadResponse{MarkedRead: marked}, nil
}

// MarkAllReadForCustomer marks every seller message to the customer as read
func (s *MessageService) MarkAllReadForCustomer(ctx context.Context, customerID uuid.UUID) (*MarkAllReadResponse, error) {
	marked, err := s.messageRepo.MarkAllRead(ctx, customerID, false)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadResponse{MarkedRead: marked}, nil
}

// UnreadCountForSeller counts customer messages the seller has not read
func (s *MessageService) UnreadCountForSeller(ctx context.Context, sellerID uuid.UUID) (*UnreadCountResponse, error) {
	count, err := s.messageRepo.CountUnreadForSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Count: count}, nil
}

// UnreadCountForCustomer counts seller messages the customer has not read
func (s *MessageService) UnreadCountForCustomer(ctx context.Context, customerID uuid.UUID) (*UnreadCountResponse, error) {
	count, err := s.messageRepo.CountUnreadForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{Count: count}, nil
}

// Delete removes a message
func (s *MessageService) Delete(ctx context.Context, messageID uuid.UUID) error {
	if _, err := s.messageRepo.FindByID(ctx, messageID); err != nil {
		return err
	}
	return s.messageRepo.Delete(ctx, messageID)
}

func (s *MessageService) publishEvents(ctx context.Context, msg *messaging.Message) {
	for _, event := range msg.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	msg.ClearDomainEvents()
}
