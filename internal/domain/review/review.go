package review

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

const (
	// MinRating is the lowest rating a customer can give
	MinRating = 1
	// MaxRating is the highest rating a customer can give
	MaxRating = 5

	maxTitleLength   = 255
	maxCommentLength = 1000
)

// Review is a customer's rating of a seller. Only approved reviews
// contribute to the seller's aggregate rating.
type Review struct {
	shared.BaseAggregateRoot
	SellerID   uuid.UUID `gorm:"type:uuid;not null;index:idx_review_seller"`
	CustomerID uuid.UUID `gorm:"type:uuid;not null;index:idx_review_customer"`
	OrderID    uuid.UUID `gorm:"type:uuid"`
	Rating     int       `gorm:"not null"`
	Title      string    `gorm:"type:varchar(255)"`
	Comment    string    `gorm:"type:varchar(1000)"`
	IsApproved bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Review) TableName() string {
	return "marketplace_reviews"
}

// NewReview creates a new seller review
func NewReview(sellerID, customerID uuid.UUID, rating int, title, comment string, approved bool) (*Review, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewValidationError("seller_id", "seller ID is required")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewValidationError("customer_id", "customer ID is required")
	}
	if err := ValidateRating(rating); err != nil {
		return nil, err
	}
	if err := validateTitle(title); err != nil {
		return nil, err
	}
	if err := validateComment(comment); err != nil {
		return nil, err
	}

	r := &Review{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          sellerID,
		CustomerID:        customerID,
		Rating:            rating,
		Title:             strings.TrimSpace(title),
		Comment:           strings.TrimSpace(comment),
		IsApproved:        approved,
	}

	r.AddDomainEvent(NewReviewSubmittedEvent(r))

	return r, nil
}

// SetOrderReference records the order the review is based on
func (r *Review) SetOrderReference(orderID uuid.UUID) {
	r.OrderID = orderID
	r.UpdatedAt = time.Now()
}

// Approve publishes the review so it counts toward the seller rating
func (r *Review) Approve() {
	if r.IsApproved {
		return
	}
	r.IsApproved = true
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewReviewModeratedEvent(r, true, ""))
}

// Unapprove withdraws the review from the seller rating
func (r *Review) Unapprove(reason string) {
	if !r.IsApproved {
		return
	}
	r.IsApproved = false
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewReviewModeratedEvent(r, false, reason))
}

// UpdateContent replaces the review's rating, title and comment
func (r *Review) UpdateContent(rating int, title, comment string) error {
	if err := ValidateRating(rating); err != nil {
		return err
	}
	if err := validateTitle(title); err != nil {
		return err
	}
	if err := validateComment(comment); err != nil {
		return err
	}

	previousRating := r.Rating
	r.Rating = rating
	r.Title = strings.TrimSpace(title)
	r.Comment = strings.TrimSpace(comment)
	r.UpdatedAt = time.Now()
	r.IncrementVersion()

	r.AddDomainEvent(NewReviewUpdatedEvent(r, previousRating))

	return nil
}

// HasOrderReference reports whether the review cites a purchase
func (r *Review) HasOrderReference() bool {
	return r.OrderID != uuid.Nil
}

// ValidateRating checks a rating against the allowed range
func ValidateRating(rating int) error {
	if rating < MinRating || rating > MaxRating {
		return shared.NewValidationError("rating", "must be between 1 and 5")
	}
	return nil
}

func validateTitle(title string) error {
	if len(title) > maxTitleLength {
		return shared.NewValidationError("title", "cannot exceed 255 characters")
	}
	return nil
}

func validateComment(comment string) error {
	if len(comment) > maxCommentLength {
		return shared.NewValidationError("comment", "cannot exceed 1000 characters")
	}
	return nil
}
