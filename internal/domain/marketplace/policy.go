package marketplace

import "github.com/shopspring/decimal"

// Policies is the read-only configuration port consulted by the
// marketplace services. Implementations must be safe for concurrent use;
// values reflect runtime configuration, not request input, which is why
// violations surface as POLICY_VIOLATION rather than VALIDATION_ERROR.
type Policies interface {
	// Enabled reports whether the marketplace as a whole is enabled.
	Enabled() bool

	// SellerRegistrationAllowed reports whether new sellers may register.
	SellerRegistrationAllowed() bool

	// AutoApproveSellers reports whether new sellers skip the pending queue.
	AutoApproveSellers() bool

	// DefaultCommissionRate returns the commission assigned at registration.
	DefaultCommissionRate() decimal.Decimal

	// CommissionBounds returns the inclusive [min, max] commission range.
	CommissionBounds() (min, max decimal.Decimal)

	// MaxProductsPerSeller returns the per-seller listing quota.
	MaxProductsPerSeller() int

	// AutoApproveProducts reports whether new listings skip moderation.
	AutoApproveProducts() bool

	// RatingEnabled reports whether the review/rating system is enabled.
	RatingEnabled() bool

	// ReviewModerationRequired reports whether new reviews start unapproved.
	ReviewModerationRequired() bool

	// PurchaseRequiredForReview reports whether a review must reference
	// an order with the seller.
	PurchaseRequiredForReview() bool

	// MessagingEnabled reports whether buyer/seller messaging is enabled.
	MessagingEnabled() bool

	// AnonymousMessagingAllowed reports whether unrelated parties may
	// initiate contact.
	AnonymousMessagingAllowed() bool
}
