package listing

import (
	"context"

	"github.com/google/uuid"
	sellerapp "github.com/marketplace/backend/internal/application/seller"
	"github.com/marketplace/backend/internal/domain/listing"
	"github.com/marketplace/backend/internal/domain/marketplace"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ListingService handles catalog membership: which products a seller
// offers on the marketplace
type ListingService struct {
	listingRepo listing.Repository
	sellerRepo  seller.Repository
	policies    marketplace.Policies
	eventBus    shared.EventPublisher
	stats       *sellerapp.StatsService
}

// NewListingService creates a new ListingService
func NewListingService(
	listingRepo listing.Repository,
	sellerRepo seller.Repository,
	policies marketplace.Policies,
	eventBus shared.EventPublisher,
	stats *sellerapp.StatsService,
) *ListingService {
	return &ListingService{
		listingRepo: listingRepo,
		sellerRepo:  sellerRepo,
		policies:    policies,
		eventBus:    eventBus,
		stats:       stats,
	}
}

// ListProduct lists a catalog product under a seller
func (s *ListingService) ListProduct(ctx context.Context, req ListProductRequest) (*ListingResponse, error) {
	if !s.policies.Enabled() {
		return nil, shared.NewDomainError("POLICY_VIOLATION", "Marketplace is disabled")
	}

	sel, err := s.sellerRepo.FindByID(ctx, req.SellerID)
	if err != nil {
		return nil, err
	}
	if !sel.CanSell() {
		return nil, shared.NewDomainError("INVALID_STATE", "Seller is not approved for selling")
	}

	// Quota counts all listings, pending ones included
	if max := s.policies.MaxProductsPerSeller(); max > 0 {
		count, err := s.listingRepo.CountBySeller(ctx, req.SellerID)
		if err != nil {
			return nil, err
		}
		if count >= int64(max) {
			return nil, shared.NewDomainError("QUOTA_EXCEEDED", "Seller has reached the product limit")
		}
	}

	exists, err := s.listingRepo.ExistsBySellerAndProduct(ctx, req.SellerID, req.ProductID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Product is already listed by this seller")
	}

	condition := listing.ConditionNew
	if req.Condition != "" {
		condition = listing.Condition(req.Condition)
	}

	lst, err := listing.NewListing(req.SellerID, req.ProductID, condition, s.policies.AutoApproveProducts())
	if err != nil {
		return nil, err
	}

	if err := s.listingRepo.Save(ctx, lst); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, lst)

	if err := s.stats.RecalculateProductCount(ctx, req.SellerID); err != nil {
		return nil, err
	}

	response := ToListingResponse(lst)
	return &response, nil
}

// GetByID retrieves a listing by ID
func (s *ListingService) GetByID(ctx context.Context, listingID uuid.UUID) (*ListingResponse, error) {
	lst, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	response := ToListingResponse(lst)
	return &response, nil
}

// ListBySeller retrieves a seller's listings
func (s *ListingService) ListBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]ListingResponse, int64, error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	page, err := s.listingRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToListingResponses(page.Items), page.Total, nil
}

// ListPending retrieves the listing moderation queue
func (s *ListingService) ListPending(ctx context.Context, filter shared.Filter) ([]ListingResponse, int64, error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	page, err := s.listingRepo.FindPendingApproval(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToListingResponses(page.Items), page.Total, nil
}

// CanAddProduct reports whether the seller is still under the product
// quota. A max of zero means unlimited.
func (s *ListingService) CanAddProduct(ctx context.Context, sellerID uuid.UUID) (*ListingQuotaResponse, error) {
	sel, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	count, err := s.listingRepo.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	max := s.policies.MaxProductsPerSeller()
	canAdd := sel.CanSell() && (max <= 0 || count < int64(max))

	return &ListingQuotaResponse{
		SellerID:     sellerID,
		CanAdd:       canAdd,
		CurrentCount: count,
		MaxProducts:  max,
	}, nil
}

// GetSellerStats returns listing counts for a seller
func (s *ListingService) GetSellerStats(ctx context.Context, sellerID uuid.UUID) (*SellerListingStatsResponse, error) {
	if _, err := s.sellerRepo.FindByID(ctx, sellerID); err != nil {
		return nil, err
	}

	total, err := s.listingRepo.CountBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	approved, err := s.listingRepo.CountApprovedBySeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	return &SellerListingStatsResponse{
		SellerID:         sellerID,
		TotalListings:    total,
		ApprovedListings: approved,
		PendingListings:  total - approved,
	}, nil
}

// UpdateCondition changes the condition of a seller's listing
func (s *ListingService) UpdateCondition(ctx context.Context, listingID uuid.UUID, req UpdateConditionRequest) (*ListingResponse, error) {
	lst, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	if err := lst.SetCondition(listing.Condition(req.Condition)); err != nil {
		return nil, err
	}

	if err := s.listingRepo.Save(ctx, lst); err != nil {
		return nil, err
	}

	response := ToListingResponse(lst)
	return &response, nil
}

// Approve approves a listing for the storefront
func (s *ListingService) Approve(ctx context.Context, listingID uuid.UUID) (*ListingResponse, error) {
	return s.moderate(ctx, listingID, func(lst *listing.Listing) {
		lst.Approve()
	})
}

// Reject withdraws a listing from the storefront. The reason travels
// on the notification event only.
func (s *ListingService) Reject(ctx context.Context, listingID uuid.UUID, reason string) (*ListingResponse, error) {
	return s.moderate(ctx, listingID, func(lst *listing.Listing) {
		lst.Reject(reason)
	})
}

func (s *ListingService) moderate(ctx context.Context, listingID uuid.UUID, op func(*listing.Listing)) (*ListingResponse, error) {
	lst, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return nil, err
	}

	op(lst)

	if err := s.listingRepo.Save(ctx, lst); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, lst)

	response := ToListingResponse(lst)
	return &response, nil
}

// BulkApprove approves listings one by one, reporting per-item outcomes
func (s *ListingService) BulkApprove(ctx context.Context, listingIDs []uuid.UUID) *BulkListingResponse {
	return s.bulk(listingIDs, func(id uuid.UUID) error {
		_, err := s.Approve(ctx, id)
		return err
	})
}

// BulkReject rejects listings one by one with a shared reason
func (s *ListingService) BulkReject(ctx context.Context, listingIDs []uuid.UUID, reason string) *BulkListingResponse {
	return s.bulk(listingIDs, func(id uuid.UUID) error {
		_, err := s.Reject(ctx, id, reason)
		return err
	})
}

func (s *ListingService) bulk(listingIDs []uuid.UUID, op func(uuid.UUID) error) *BulkListingResponse {
	result := &BulkListingResponse{
		Success: make([]uuid.UUID, 0, len(listingIDs)),
		Failed:  make([]BulkFailure, 0),
	}

	for _, id := range listingIDs {
		if err := op(id); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ListingID: id, Error: err.Error()})
			continue
		}
		result.Success = append(result.Success, id)
	}

	return result
}

// DelistByProduct removes a seller's listing addressed by its
// (seller, product) pair instead of the listing ID
func (s *ListingService) DelistByProduct(ctx context.Context, sellerID, productID uuid.UUID) error {
	lst, err := s.listingRepo.FindBySellerAndProduct(ctx, sellerID, productID)
	if err != nil {
		return err
	}
	return s.Delist(ctx, lst.ID)
}

// Delist removes a seller's listing
func (s *ListingService) Delist(ctx context.Context, listingID uuid.UUID) error {
	lst, err := s.listingRepo.FindByID(ctx, listingID)
	if err != nil {
		return err
	}

	if err := s.listingRepo.Delete(ctx, listingID); err != nil {
		return err
	}

	_ = s.eventBus.Publish(ctx, listing.NewListingDeletedEvent(lst))

	return s.stats.RecalculateProductCount(ctx, lst.SellerID)
}

func (s *ListingService) publishEvents(ctx context.Context, lst *listing.Listing) {
	for _, event := range lst.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	lst.ClearDomainEvents()
}
