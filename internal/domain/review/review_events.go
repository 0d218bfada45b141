package review

import (
	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

const AggregateTypeReview = "Review"

const (
	EventTypeReviewSubmitted = "ReviewSubmitted"
	EventTypeReviewUpdated   = "ReviewUpdated"
	EventTypeReviewModerated = "ReviewModerated"
	EventTypeReviewDeleted   = "ReviewDeleted"
)

// ReviewSubmittedEvent is raised when a customer submits a review
type ReviewSubmittedEvent struct {
	shared.BaseDomainEvent
	SellerID   uuid.UUID `json:"seller_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	Rating     int       `json:"rating"`
	Approved   bool      `json:"approved"`
}

func NewReviewSubmittedEvent(r *Review) *ReviewSubmittedEvent {
	return &ReviewSubmittedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewSubmitted, AggregateTypeReview, r.ID),
		SellerID:        r.SellerID,
		CustomerID:      r.CustomerID,
		Rating:          r.Rating,
		Approved:        r.IsApproved,
	}
}

// ReviewUpdatedEvent is raised when a customer edits their review
type ReviewUpdatedEvent struct {
	shared.BaseDomainEvent
	SellerID       uuid.UUID `json:"seller_id"`
	Rating         int       `json:"rating"`
	PreviousRating int       `json:"previous_rating"`
}

func NewReviewUpdatedEvent(r *Review, previousRating int) *ReviewUpdatedEvent {
	return &ReviewUpdatedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewUpdated, AggregateTypeReview, r.ID),
		SellerID:        r.SellerID,
		Rating:          r.Rating,
		PreviousRating:  previousRating,
	}
}

// ReviewModeratedEvent is raised when a review is approved or unapproved.
// Reason is set on unapprovals only and travels to notifications, it is
// not persisted on the review.
type ReviewModeratedEvent struct {
	shared.BaseDomainEvent
	SellerID uuid.UUID `json:"seller_id"`
	Rating   int       `json:"rating"`
	Approved bool      `json:"approved"`
	Reason   string    `json:"reason,omitempty"`
}

func NewReviewModeratedEvent(r *Review, approved bool, reason string) *ReviewModeratedEvent {
	return &ReviewModeratedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewModerated, AggregateTypeReview, r.ID),
		SellerID:        r.SellerID,
		Rating:          r.Rating,
		Approved:        approved,
		Reason:          reason,
	}
}

// ReviewDeletedEvent is raised when a review is removed
type ReviewDeletedEvent struct {
	shared.BaseDomainEvent
	SellerID    uuid.UUID `json:"seller_id"`
	WasApproved bool      `json:"was_approved"`
}

func NewReviewDeletedEvent(r *Review) *ReviewDeletedEvent {
	return &ReviewDeletedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeReviewDeleted, AggregateTypeReview, r.ID),
		SellerID:        r.SellerID,
		WasApproved:     r.IsApproved,
	}
}
