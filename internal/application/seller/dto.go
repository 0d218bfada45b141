package seller

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/shopspring/decimal"
)

// =============================================================================
// Seller DTOs
// =============================================================================

// RegisterSellerRequest represents a request to register a new seller
type RegisterSellerRequest struct {
	CustomerID      uuid.UUID        `json:"customer_id" binding:"required"`
	CompanyName     string           `json:"company_name" binding:"required,min=2,max=200"`
	Subdomain       string           `json:"subdomain" binding:"omitempty,max=32"`
	BusinessLicense string           `json:"business_license" binding:"max=100"`
	TaxID           string           `json:"tax_id" binding:"max=50"`
	Phone           string           `json:"phone" binding:"max=50"`
	Address         string           `json:"address" binding:"max=500"`
	City            string           `json:"city" binding:"max=100"`
	Region          string           `json:"region" binding:"max=100"`
	Postcode        string           `json:"postcode" binding:"max=20"`
	CountryID       string           `json:"country_id" binding:"omitempty,len=2"`
	CommissionRate  *decimal.Decimal `json:"commission_rate"`
}

// UpdateSellerRequest represents a request to update a seller's profile
type UpdateSellerRequest struct {
	CompanyName     *string          `json:"company_name" binding:"omitempty,min=2,max=200"`
	BusinessLicense *string          `json:"business_license" binding:"omitempty,max=100"`
	TaxID           *string          `json:"tax_id" binding:"omitempty,max=50"`
	Phone           *string          `json:"phone" binding:"omitempty,max=50"`
	Address         *string          `json:"address" binding:"omitempty,max=500"`
	City            *string          `json:"city" binding:"omitempty,max=100"`
	Region          *string          `json:"region" binding:"omitempty,max=100"`
	Postcode        *string          `json:"postcode" binding:"omitempty,max=20"`
	CountryID       *string          `json:"country_id" binding:"omitempty,len=2"`
	CommissionRate  *decimal.Decimal `json:"commission_rate"`
}

// SellerListFilter represents filter options for listing sellers
type SellerListFilter struct {
	Page           int    `form:"page"`
	PageSize       int    `form:"page_size"`
	OrderBy        string `form:"order_by"`
	OrderDir       string `form:"order_dir"`
	Search         string `form:"search"`
	Status         string `form:"status" binding:"omitempty,oneof=inactive active suspended"`
	ApprovalStatus string `form:"approval_status" binding:"omitempty,oneof=pending approved rejected"`
}

// RecordSaleRequest represents a completed order amount to credit to a seller
type RecordSaleRequest struct {
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

// SuspendSellerRequest carries the reason for a suspension
type SuspendSellerRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// SellerResponse represents a seller in API responses
type SellerResponse struct {
	ID              uuid.UUID       `json:"id"`
	CustomerID      uuid.UUID       `json:"customer_id"`
	CompanyName     string          `json:"company_name"`
	Subdomain       string          `json:"subdomain"`
	BusinessLicense string          `json:"business_license"`
	TaxID           string          `json:"tax_id"`
	Phone           string          `json:"phone"`
	Address         string          `json:"address"`
	City            string          `json:"city"`
	Region          string          `json:"region"`
	Postcode        string          `json:"postcode"`
	CountryID       string          `json:"country_id"`
	Status          string          `json:"status"`
	ApprovalStatus  string          `json:"approval_status"`
	RejectionReason string          `json:"rejection_reason,omitempty"`
	CommissionRate  decimal.Decimal `json:"commission_rate"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"review_count"`
	ProductCount    int             `json:"product_count"`
	TotalSales      decimal.Decimal `json:"total_sales"`
	CanSell         bool            `json:"can_sell"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// SellerListResponse represents a list item for sellers
type SellerListResponse struct {
	ID             uuid.UUID       `json:"id"`
	CustomerID     uuid.UUID       `json:"customer_id"`
	CompanyName    string          `json:"company_name"`
	Subdomain      string          `json:"subdomain"`
	Status         string          `json:"status"`
	ApprovalStatus string          `json:"approval_status"`
	CommissionRate decimal.Decimal `json:"commission_rate"`
	Rating         float64         `json:"rating"`
	ReviewCount    int             `json:"review_count"`
	ProductCount   int             `json:"product_count"`
	CreatedAt      time.Time       `json:"created_at"`
}

// ToSellerResponse converts a domain Seller to SellerResponse
func ToSellerResponse(s *seller.Seller) SellerResponse {
	return SellerResponse{
		ID:              s.ID,
		CustomerID:      s.CustomerID,
		CompanyName:     s.CompanyName,
		Subdomain:       s.Subdomain,
		BusinessLicense: s.BusinessLicense,
		TaxID:           s.TaxID,
		Phone:           s.Phone,
		Address:         s.Address,
		City:            s.City,
		Region:          s.Region,
		Postcode:        s.Postcode,
		CountryID:       s.CountryID,
		Status:          string(s.Status),
		ApprovalStatus:  string(s.ApprovalStatus),
		RejectionReason: s.RejectionReason,
		CommissionRate:  s.CommissionRate,
		Rating:          s.Rating,
		ReviewCount:     s.ReviewCount,
		ProductCount:    s.ProductCount,
		TotalSales:      s.TotalSales,
		CanSell:         s.CanSell(),
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
		Version:         s.Version,
	}
}

// ToSellerListResponse converts a domain Seller to SellerListResponse
func ToSellerListResponse(s *seller.Seller) SellerListResponse {
	return SellerListResponse{
		ID:             s.ID,
		CustomerID:     s.CustomerID,
		CompanyName:    s.CompanyName,
		Subdomain:      s.Subdomain,
		Status:         string(s.Status),
		ApprovalStatus: string(s.ApprovalStatus),
		CommissionRate: s.CommissionRate,
		Rating:         s.Rating,
		ReviewCount:    s.ReviewCount,
		ProductCount:   s.ProductCount,
		CreatedAt:      s.CreatedAt,
	}
}

// ToSellerListResponses converts a slice of domain Sellers
func ToSellerListResponses(sellers []seller.Seller) []SellerListResponse {
	responses := make([]SellerListResponse, len(sellers))
	for i := range sellers {
		responses[i] = ToSellerListResponse(&sellers[i])
	}
	return responses
}

// =============================================================================
// Admin DTOs
// =============================================================================

// RejectSellerRequest carries the moderation reason for a rejection
type RejectSellerRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// BulkSellerRequest represents a bulk approval or rejection
type BulkSellerRequest struct {
	SellerIDs []uuid.UUID `json:"seller_ids" binding:"required,min=1"`
	Reason    string      `json:"reason" binding:"max=500"`
}

// BulkFailure reports one failed item of a bulk operation
type BulkFailure struct {
	SellerID uuid.UUID `json:"seller_id"`
	Error    string    `json:"error"`
}

// BulkSellerResponse reports the per-item outcome of a bulk operation
type BulkSellerResponse struct {
	Success []uuid.UUID   `json:"success"`
	Failed  []BulkFailure `json:"failed"`
}

// UpdateSellerStatusRequest names the lifecycle state a seller should
// move to. Reason only applies to suspensions.
type UpdateSellerStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=active inactive suspended"`
	Reason string `json:"reason" binding:"omitempty,max=500"`
}

// ConfigurationResponse is the marketplace policy snapshot shown to
// admins. Values come from runtime configuration, not the database.
type ConfigurationResponse struct {
	Enabled                   bool            `json:"enabled"`
	SellerRegistrationAllowed bool            `json:"seller_registration_allowed"`
	AutoApproveSellers        bool            `json:"auto_approve_sellers"`
	DefaultCommissionRate     decimal.Decimal `json:"default_commission_rate"`
	MinCommissionRate         decimal.Decimal `json:"min_commission_rate"`
	MaxCommissionRate         decimal.Decimal `json:"max_commission_rate"`
	MaxProductsPerSeller      int             `json:"max_products_per_seller"`
	AutoApproveProducts       bool            `json:"auto_approve_products"`
	RatingEnabled             bool            `json:"rating_enabled"`
	ReviewModerationRequired  bool            `json:"review_moderation_required"`
	PurchaseRequiredForReview bool            `json:"purchase_required_for_review"`
	MessagingEnabled          bool            `json:"messaging_enabled"`
	AnonymousMessagingAllowed bool            `json:"anonymous_messaging_allowed"`
}

// MarketplaceStatsResponse is the admin dashboard counter block.
// AverageRating spans every approved review in the marketplace; it is
// zero while no review has been approved yet.
type MarketplaceStatsResponse struct {
	TotalSellers    int64   `json:"total_sellers"`
	ActiveSellers   int64   `json:"active_sellers"`
	PendingSellers  int64   `json:"pending_sellers"`
	ApprovedSellers int64   `json:"approved_sellers"`
	RejectedSellers int64   `json:"rejected_sellers"`
	TotalProducts   int64   `json:"total_products"`
	PendingListings int64   `json:"pending_listings"`
	TotalReviews    int64   `json:"total_reviews"`
	PendingReviews  int64   `json:"pending_reviews"`
	TotalMessages   int64   `json:"total_messages"`
	AverageRating   float64 `json:"average_rating"`
}

// DashboardResponse aggregates the admin landing page data
type DashboardResponse struct {
	Stats          MarketplaceStatsResponse `json:"stats"`
	PendingSellers []SellerListResponse     `json:"pending_sellers"`
}

// ActivityEntry is one item of a seller's recent activity feed
type ActivityEntry struct {
	Type       string    `json:"type"`
	RefID      uuid.UUID `json:"ref_id"`
	Summary    string    `json:"summary"`
	OccurredAt time.Time `json:"occurred_at"`
}

// SellerDashboardResponse is the per-seller moderation view: the
// profile plus a merged feed of recent listings, reviews and messages
type SellerDashboardResponse struct {
	Seller         SellerResponse  `json:"seller"`
	RecentActivity []ActivityEntry `json:"recent_activity"`
}
