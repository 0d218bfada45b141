package listing

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Repository defines the persistence interface for listings
type Repository interface {
	// FindByID finds a listing by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Listing, error)

	// FindBySellerAndProduct finds the listing for a (seller, product) pair
	FindBySellerAndProduct(ctx context.Context, sellerID, productID uuid.UUID) (*Listing, error)

	// FindBySeller finds all listings belonging to a seller
	FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[Listing], error)

	// FindAll finds listings matching the filter
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Listing], error)

	// FindPendingApproval finds listings awaiting moderation
	FindPendingApproval(ctx context.Context, filter shared.Filter) (*shared.Paginated[Listing], error)

	// Save persists a listing. A duplicate (seller, product) pair
	// surfaces as shared.ErrAlreadyExists.
	Save(ctx context.Context, l *Listing) error

	// Delete removes a listing
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts all listings
	Count(ctx context.Context) (int64, error)

	// CountPendingApproval counts listings awaiting moderation
	CountPendingApproval(ctx context.Context) (int64, error)

	// CountBySeller counts a seller's listings, approved or not
	CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// CountApprovedBySeller counts a seller's approved listings
	CountApprovedBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error)

	// ExistsBySellerAndProduct checks whether a seller already lists a product
	ExistsBySellerAndProduct(ctx context.Context, sellerID, productID uuid.UUID) (bool, error)
}
