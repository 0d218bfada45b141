package listing

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

const AggregateTypeListing = "Listing"

const (
	EventTypeListingCreated         = "ListingCreated"
	EventTypeListingApprovalChanged = "ListingApprovalChanged"
	EventTypeListingDeleted         = "ListingDeleted"
)

// ListingCreatedEvent is raised when a seller lists a catalog product
type ListingCreatedEvent struct {
	shared.BaseDomainEvent
	SellerID  uuid.UUID `json:"seller_id"`
	ProductID uuid.UUID `json:"product_id"`
	Condition Condition `json:"condition"`
	Approved  bool      `json:"approved"`
}

func NewListingCreatedEvent(l *Listing) *ListingCreatedEvent {
	return &ListingCreatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingCreated, AggregateTypeListing, l.ID),
		SellerID:        l.SellerID,
		ProductID:       l.ProductID,
		Condition:       l.Condition,
		Approved:        l.IsApproved,
	}
}

// ListingApprovalChangedEvent is raised when a listing is approved or rejected
type ListingApprovalChangedEvent struct {
	shared.BaseDomainEvent
	SellerID  uuid.UUID `json:"seller_id"`
	ProductID uuid.UUID `json:"product_id"`
	Approved  bool      `json:"approved"`
	Reason    string    `json:"reason,omitempty"`
}

func NewListingApprovalChangedEvent(l *Listing, approved bool, reason string) *ListingApprovalChangedEvent {
	return &ListingApprovalChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingApprovalChanged, AggregateTypeListing, l.ID),
		SellerID:        l.SellerID,
		ProductID:       l.ProductID,
		Approved:        approved,
		Reason:          reason,
	}
}

// ListingDeletedEvent is raised when a seller delists a product
type ListingDeletedEvent struct {
	shared.BaseDomainEvent
	SellerID  uuid.UUID `json:"seller_id"`
	ProductID uuid.UUID `json:"product_id"`
}

func NewListingDeletedEvent(l *Listing) *ListingDeletedEvent {
	return &ListingDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeListingDeleted, AggregateTypeListing, l.ID),
		SellerID:        l.SellerID,
		ProductID:       l.ProductID,
	}
}
