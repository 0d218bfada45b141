package seller

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Aggregate type constant
const AggregateTypeSeller = "Seller"

// Event type constants
const (
	EventTypeSellerRegistered      = "SellerRegistered"
	EventTypeSellerApprovalChanged = "SellerApprovalChanged"
	EventTypeSellerStatusChanged   = "SellerStatusChanged"
	EventTypeSellerDeleted         = "SellerDeleted"
)

// SellerRegisteredEvent is published when a new seller registers
type SellerRegisteredEvent struct {
	shared.BaseDomainEvent
	SellerID       uuid.UUID      `json:"seller_id"`
	CustomerID     uuid.UUID      `json:"customer_id"`
	CompanyName    string         `json:"company_name"`
	Subdomain      string         `json:"subdomain"`
	ApprovalStatus ApprovalStatus `json:"approval_status"`
}

// NewSellerRegisteredEvent creates a new SellerRegisteredEvent
func NewSellerRegisteredEvent(s *Seller) *SellerRegisteredEvent {
	return &SellerRegisteredEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSellerRegistered, AggregateTypeSeller, s.ID),
		SellerID:        s.ID,
		CustomerID:      s.CustomerID,
		CompanyName:     s.CompanyName,
		Subdomain:       s.Subdomain,
		ApprovalStatus:  s.ApprovalStatus,
	}
}

// SellerApprovalChangedEvent is published when a seller's approval status changes
type SellerApprovalChangedEvent struct {
	shared.BaseDomainEvent
	SellerID   uuid.UUID      `json:"seller_id"`
	CustomerID uuid.UUID      `json:"customer_id"`
	OldStatus  ApprovalStatus `json:"old_status"`
	NewStatus  ApprovalStatus `json:"new_status"`
	Reason     string         `json:"reason,omitempty"`
}

// NewSellerApprovalChangedEvent creates a new SellerApprovalChangedEvent
func NewSellerApprovalChangedEvent(s *Seller, oldStatus, newStatus ApprovalStatus, reason string) *SellerApprovalChangedEvent {
	return &SellerApprovalChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSellerApprovalChanged, AggregateTypeSeller, s.ID),
		SellerID:        s.ID,
		CustomerID:      s.CustomerID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		Reason:          reason,
	}
}

// SellerStatusChangedEvent is published when a seller's operational status changes
type SellerStatusChangedEvent struct {
	shared.BaseDomainEvent
	SellerID   uuid.UUID `json:"seller_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	OldStatus  Status    `json:"old_status"`
	NewStatus  Status    `json:"new_status"`
	Reason     string    `json:"reason,omitempty"`
}

// NewSellerStatusChangedEvent creates a new SellerStatusChangedEvent
func NewSellerStatusChangedEvent(s *Seller, oldStatus, newStatus Status, reason string) *SellerStatusChangedEvent {
	return &SellerStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSellerStatusChanged, AggregateTypeSeller, s.ID),
		SellerID:        s.ID,
		CustomerID:      s.CustomerID,
		OldStatus:       oldStatus,
		NewStatus:       newStatus,
		Reason:          reason,
	}
}

// SellerDeletedEvent is published when a seller is removed by an admin
type SellerDeletedEvent struct {
	shared.BaseDomainEvent
	SellerID    uuid.UUID `json:"seller_id"`
	CustomerID  uuid.UUID `json:"customer_id"`
	CompanyName string    `json:"company_name"`
}

// NewSellerDeletedEvent creates a new SellerDeletedEvent
func NewSellerDeletedEvent(s *Seller) *SellerDeletedEvent {
	return &SellerDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSellerDeleted, AggregateTypeSeller, s.ID),
		SellerID:        s.ID,
		CustomerID:      s.CustomerID,
		CompanyName:     s.CompanyName,
	}
}
