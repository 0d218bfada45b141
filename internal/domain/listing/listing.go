package listing

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/shared"
)

// Condition represents the physical condition of a listed product
type Condition string

const (
	ConditionNew         Condition = "new"
	ConditionUsed        Condition = "used"
	ConditionRefurbished Condition = "refurbished"
	ConditionForParts    Condition = "for_parts"
)

// Listing joins a seller to an external catalog product, carrying the
// marketplace-specific condition and approval metadata. At most one
// listing exists per (seller, product) pair.
type Listing struct {
	shared.BaseAggregateRoot
	SellerID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_listing_seller_product,priority:1"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_listing_seller_product,priority:2"`
	Condition  Condition `gorm:"type:varchar(20);not null;default:'new'"`
	IsApproved bool      `gorm:"not null;default:false"`
}

// TableName returns the table name for GORM
func (Listing) TableName() string {
	return "marketplace_listings"
}

// NewListing creates a new listing for a seller and catalog product
func NewListing(sellerID, productID uuid.UUID, condition Condition, approved bool) (*Listing, error) {
	if sellerID == uuid.Nil {
		return nil, shared.NewValidationError("seller_id", "seller ID is required")
	}
	if productID == uuid.Nil {
		return nil, shared.NewValidationError("product_id", "product ID is required")
	}
	if err := ValidateCondition(condition); err != nil {
		return nil, err
	}

	l := &Listing{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SellerID:          sellerID,
		ProductID:         productID,
		Condition:         condition,
		IsApproved:        approved,
	}

	l.AddDomainEvent(NewListingCreatedEvent(l))

	return l, nil
}

// Approve marks the listing as approved for the storefront
func (l *Listing) Approve() {
	if l.IsApproved {
		return
	}
	l.IsApproved = true
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewListingApprovalChangedEvent(l, true, ""))
}

// Reject withdraws storefront approval. The reason is carried on the
// event for notification only; it is not persisted on the listing.
func (l *Listing) Reject(reason string) {
	if !l.IsApproved {
		return
	}
	l.IsApproved = false
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	l.AddDomainEvent(NewListingApprovalChangedEvent(l, false, reason))
}

// SetCondition updates the product condition
func (l *Listing) SetCondition(condition Condition) error {
	if err := ValidateCondition(condition); err != nil {
		return err
	}

	l.Condition = condition
	l.UpdatedAt = time.Now()
	l.IncrementVersion()

	return nil
}

// ValidateCondition checks a condition against the enumerated values
func ValidateCondition(condition Condition) error {
	switch condition {
	case ConditionNew, ConditionUsed, ConditionRefurbished, ConditionForParts:
		return nil
	default:
		return shared.NewValidationError("condition", "must be one of new, used, refurbished, for_parts")
	}
}

// AvailableConditions returns all valid listing conditions
func AvailableConditions() []Condition {
	return []Condition{ConditionNew, ConditionUsed, ConditionRefurbished, ConditionForParts}
}
