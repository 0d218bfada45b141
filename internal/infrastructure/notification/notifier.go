// Package notification delivers seller-facing notifications in reaction to
// domain events. The current delivery channel is the structured log; the
// handler is the integration point for an email or push transport later.
package notification

import (
	"context"

	"github.com/marketplace/backend/internal/domain/messaging"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notifier reacts to marketplace events that a seller or admin should hear
// about: registration, approval decisions, new reviews and new messages.
type Notifier struct {
	logger *zap.Logger
}

// NewNotifier creates a notifier logging through the given logger.
func NewNotifier(logger *zap.Logger) *Notifier {
	return &Notifier{logger: logger.Named("notification")}
}

// EventTypes returns the event types the notifier subscribes to.
func (n *Notifier) EventTypes() []string {
	return []string{
		seller.EventTypeSellerRegistered,
		seller.EventTypeSellerApprovalChanged,
		review.EventTypeReviewSubmitted,
		messaging.EventTypeMessageSent,
	}
}

// Handle dispatches an event to the matching notification.
func (n *Notifier) Handle(ctx context.Context, event shared.DomainEvent) error {
	switch e := event.(type) {
	case *seller.SellerRegisteredEvent:
		n.notifySellerRegistered(e)
	case *seller.SellerApprovalChangedEvent:
		n.notifyApprovalChanged(e)
	case *review.ReviewSubmittedEvent:
		n.notifyReviewSubmitted(e)
	case *messaging.MessageSentEvent:
		n.notifyMessageSent(e)
	default:
		n.logger.Debug("ignoring unhandled event",
			zap.String("event_type", event.EventType()),
		)
	}
	return nil
}

// Register subscribes the notifier on the given bus.
func (n *Notifier) Register(bus shared.EventSubscriber) {
	bus.Subscribe(n)
}

func (n *Notifier) notifySellerRegistered(e *seller.SellerRegisteredEvent) {
	n.logger.Info("seller registered, notifying admin",
		zap.String("seller_id", e.SellerID.String()),
		zap.String("company_name", e.CompanyName),
		zap.String("subdomain", e.Subdomain),
		zap.String("approval_status", string(e.ApprovalStatus)),
	)
}

func (n *Notifier) notifyApprovalChanged(e *seller.SellerApprovalChangedEvent) {
	fields := []zap.Field{
		zap.String("seller_id", e.SellerID.String()),
		zap.String("old_status", string(e.OldStatus)),
		zap.String("new_status", string(e.NewStatus)),
	}
	if e.Reason != "" {
		fields = append(fields, zap.String("reason", e.Reason))
	}
	n.logger.Info("seller approval changed, notifying seller", fields...)
}

func (n *Notifier) notifyReviewSubmitted(e *review.ReviewSubmittedEvent) {
	n.logger.Info("review submitted, notifying seller",
		zap.String("seller_id", e.SellerID.String()),
		zap.Int("rating", e.Rating),
		zap.Bool("approved", e.Approved),
	)
}

func (n *Notifier) notifyMessageSent(e *messaging.MessageSentEvent) {
	recipient := "seller"
	if e.FromSeller {
		recipient = "customer"
	}
	n.logger.Info("message sent, notifying recipient",
		zap.String("seller_id", e.SellerID.String()),
		zap.String("customer_id", e.CustomerID.String()),
		zap.String("recipient", recipient),
	)
}

var _ shared.EventHandler = (*Notifier)(nil)
