package review

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// RatingAggregate is the result of aggregating a seller's approved
// reviews in a single query. Count and Average always come from the
// same snapshot.
type RatingAggregate struct {
	Count   int64
	Average float64
}

// Repository defines the persistence interface for reviews
type Repository interface {
	// FindByID finds a review by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Review, error)

	// FindBySeller finds reviews for a seller
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Review], error)

	// FindApprovedBySeller finds a seller's approved reviews
	FindApprovedBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Review], error)

	// FindByCustomer finds reviews written by a customer
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Review], error)

	// FindPendingModeration finds reviews awaiting moderation
	FindPendingModeration(ctx context.Context, filter shared.Filter) (*shared.Paginated[Review], error)

	// Save persists a review
	Save(ctx context.Context, r *Review) error

	// Delete removes a review
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all reviews, moderated or not
	Count(ctx context.Context) (int64, error)

	// CountPendingModeration counts reviews awaiting moderation
	CountPendingModeration(ctx context.Context) (int64, error)

	// AggregateApproved computes count and average rating over every
	// approved review in the marketplace
	AggregateApproved(ctx context.Context) (*RatingAggregate, error)

	// AggregateForSeller computes count and average rating over the
	// seller's approved reviews
	AggregateForSeller(ctx context.Context, sellerID uuid.UUID) (*RatingAggregate, error)

	// RatingDistribution counts approved reviews per rating value
	RatingDistribution(ctx context.Context, sellerID uuid.UUID) (map[int]int64, error)

	// ExistsBySellerAndCustomer checks whether a customer already
	// reviewed a seller
	ExistsBySellerAndCustomer(ctx context.Context, sellerID, customerID uuid.UUID) (bool, error)
}
