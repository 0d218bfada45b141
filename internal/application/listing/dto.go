package listing

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/listing"
)

// ListProductRequest represents a request to list a catalog product
type ListProductRequest struct {
	SellerID  uuid.UUID `json:"seller_id" binding:"required"`
	ProductID uuid.UUID `json:"product_id" binding:"required"`
	Condition string    `json:"condition" binding:"omitempty,oneof=new used refurbished for_parts"`
}

// UpdateConditionRequest represents a request to change a listing condition
type UpdateConditionRequest struct {
	Condition string `json:"condition" binding:"required,oneof=new used refurbished for_parts"`
}

// RejectListingRequest carries the moderation reason for a rejection
type RejectListingRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// BulkListingRequest represents a bulk approval or rejection
type BulkListingRequest struct {
	ListingIDs []uuid.UUID `json:"listing_ids" binding:"required,min=1"`
	Reason     string      `json:"reason" binding:"max=500"`
}

// BulkFailure reports one failed item of a bulk operation
type BulkFailure struct {
	ListingID uuid.UUID `json:"listing_id"`
	Error     string    `json:"error"`
}

// BulkListingResponse reports the per-item outcome of a bulk operation
type BulkListingResponse struct {
	Success []uuid.UUID   `json:"success"`
	Failed  []BulkFailure `json:"failed"`
}

// ListingQuotaResponse reports whether a seller may list another product
type ListingQuotaResponse struct {
	SellerID     uuid.UUID `json:"seller_id"`
	CanAdd       bool      `json:"can_add"`
	CurrentCount int64     `json:"current_count"`
	MaxProducts  int       `json:"max_products"`
}

// SellerListingStatsResponse summarizes a seller's catalog footprint
type SellerListingStatsResponse struct {
	SellerID         uuid.UUID `json:"seller_id"`
	TotalListings    int64     `json:"total_listings"`
	ApprovedListings int64     `json:"approved_listings"`
	PendingListings  int64     `json:"pending_listings"`
}

// ListingResponse represents a listing in API responses
type ListingResponse struct {
	ID         uuid.UUID `json:"id"`
	SellerID   uuid.UUID `json:"seller_id"`
	ProductID  uuid.UUID `json:"product_id"`
	Condition  string    `json:"condition"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// ToListingResponse converts a domain Listing to ListingResponse
func ToListingResponse(l *listing.Listing) ListingResponse {
	return ListingResponse{
		ID:         l.ID,
		SellerID:   l.SellerID,
		ProductID:  l.ProductID,
		Condition:  string(l.Condition),
		IsApproved: l.IsApproved,
		CreatedAt:  l.CreatedAt,
		UpdatedAt:  l.UpdatedAt,
		Version:    l.Version,
	}
}

// ToListingResponses converts a slice of domain Listings
func ToListingResponses(listings []listing.Listing) []ListingResponse {
	responses := make([]ListingResponse, len(listings))
	for i := range listings {
		responses[i] = ToListingResponse(&listings[i])
	}
	return responses
}
