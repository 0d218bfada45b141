package seller

import (
	"context"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Repository defines the interface for seller persistence
type Repository interface {
	// FindByID finds a seller by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Seller, error)

	// FindByCustomerID finds the seller owned by a customer account
	FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*Seller, error)

	// FindBySubdomain finds a seller by its storefront subdomain
	FindBySubdomain(ctx context.Context, subdomain string) (*Seller, error)

	// FindAll finds all sellers matching the filter
	FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[Seller], error)

	// FindByApprovalStatus finds sellers by approval status
	FindByApprovalStatus(ctx context.Context, status ApprovalStatus, filter shared.Filter) (*shared.Paginated[Seller], error)

	// Save creates or updates a seller. Unique-constraint violations on
	// customer_id or subdomain surface as ErrAlreadyExists.
	Save(ctx context.Context, s *Seller) error

	// SaveWithLock saves a seller with optimistic locking (version check).
	// Returns ErrConcurrencyConflict if the version has changed.
	SaveWithLock(ctx context.Context, s *Seller) error

	// Delete deletes a seller (admin escape hatch)
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts sellers matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// CountByApprovalStatus counts sellers in an approval state
	CountByApprovalStatus(ctx context.Context, status ApprovalStatus) (int64, error)

	// ExistsByCustomerID checks whether a customer already owns a seller
	ExistsByCustomerID(ctx context.Context, customerID uuid.UUID) (bool, error)

	// ExistsBySubdomain checks whether a subdomain is taken
	ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error)
}
