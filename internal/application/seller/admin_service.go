package seller

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/listing"
	"github.com/marketplace/backend/internal/domain/marketplace"
	"github.com/marketplace/backend/internal/domain/messaging"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
)

// StatsCache caches the dashboard counter block. Implementations are
// best-effort; a miss or a failed write only costs a recount.
type StatsCache interface {
	Get(ctx context.Context) (*MarketplaceStatsResponse, bool)
	Set(ctx context.Context, stats *MarketplaceStatsResponse)
	Invalidate(ctx context.Context)
}

// AdminService handles marketplace administration: the pending queue,
// seller moderation and the dashboard aggregates
type AdminService struct {
	sellerRepo  seller.Repository
	listingRepo listing.Repository
	reviewRepo  review.Repository
	messageRepo messaging.Repository
	policies    marketplace.Policies
	eventBus    shared.EventPublisher
	statsCache  StatsCache
}

// NewAdminService creates a new AdminService
func NewAdminService(
	sellerRepo seller.Repository,
	listingRepo listing.Repository,
	reviewRepo review.Repository,
	messageRepo messaging.Repository,
	policies marketplace.Policies,
	eventBus shared.EventPublisher,
	statsCache StatsCache,
) *AdminService {
	return &AdminService{
		sellerRepo:  sellerRepo,
		listingRepo: listingRepo,
		reviewRepo:  reviewRepo,
		messageRepo: messageRepo,
		policies:    policies,
		eventBus:    eventBus,
		statsCache:  statsCache,
	}
}

// GetStats returns the marketplace counter block
func (s *AdminService) GetStats(ctx context.Context) (*MarketplaceStatsResponse, error) {
	if s.statsCache != nil {
		if cached, ok := s.statsCache.Get(ctx); ok {
			return cached, nil
		}
	}

	stats := &MarketplaceStatsResponse{}

	var err error
	if stats.TotalSellers, err = s.sellerRepo.Count(ctx, shared.Filter{}); err != nil {
		return nil, err
	}

	activeFilter := shared.Filter{Filters: map[string]interface{}{"status": string(seller.StatusActive)}}
	if stats.ActiveSellers, err = s.sellerRepo.Count(ctx, activeFilter); err != nil {
		return nil, err
	}
	if stats.PendingSellers, err = s.sellerRepo.CountByApprovalStatus(ctx, seller.ApprovalPending); err != nil {
		return nil, err
	}
	if stats.ApprovedSellers, err = s.sellerRepo.CountByApprovalStatus(ctx, seller.ApprovalApproved); err != nil {
		return nil, err
	}
	if stats.RejectedSellers, err = s.sellerRepo.CountByApprovalStatus(ctx, seller.ApprovalRejected); err != nil {
		return nil, err
	}

	if stats.TotalProducts, err = s.listingRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingListings, err = s.listingRepo.CountPendingApproval(ctx); err != nil {
		return nil, err
	}

	if stats.TotalReviews, err = s.reviewRepo.Count(ctx); err != nil {
		return nil, err
	}
	if stats.PendingReviews, err = s.reviewRepo.CountPendingModeration(ctx); err != nil {
		return nil, err
	}
	aggregate, err := s.reviewRepo.AggregateApproved(ctx)
	if err != nil {
		return nil, err
	}
	stats.AverageRating = aggregate.Average

	if stats.TotalMessages, err = s.messageRepo.Count(ctx); err != nil {
		return nil, err
	}

	if s.statsCache != nil {
		s.statsCache.Set(ctx, stats)
	}

	return stats, nil
}

// GetPendingSellers returns the moderation queue
func (s *AdminService) GetPendingSellers(ctx context.Context, filter shared.Filter) ([]SellerListResponse, int64, error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	page, err := s.sellerRepo.FindByApprovalStatus(ctx, seller.ApprovalPending, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToSellerListResponses(page.Items), page.Total, nil
}

// ApproveSeller approves a pending or rejected seller
func (s *AdminService) ApproveSeller(ctx context.Context, sellerID uuid.UUID) (*SellerResponse, error) {
	return s.moderate(ctx, sellerID, func(sel *seller.Seller) error {
		return sel.Approve()
	})
}

// RejectSeller rejects a seller with a reason
func (s *AdminService) RejectSeller(ctx context.Context, sellerID uuid.UUID, reason string) (*SellerResponse, error) {
	return s.moderate(ctx, sellerID, func(sel *seller.Seller) error {
		return sel.Reject(reason)
	})
}

// UpdateSellerStatus moves a seller to the named lifecycle state.
// Suspensions carry the reason into the suspension event.
func (s *AdminService) UpdateSellerStatus(ctx context.Context, sellerID uuid.UUID, status string, reason string) (*SellerResponse, error) {
	return s.moderate(ctx, sellerID, func(sel *seller.Seller) error {
		switch seller.Status(status) {
		case seller.StatusActive:
			return sel.Activate()
		case seller.StatusInactive:
			return sel.Deactivate()
		case seller.StatusSuspended:
			return sel.Suspend(reason)
		default:
			return shared.NewValidationError("status", "must be one of active, inactive, suspended")
		}
	})
}

// GetConfiguration returns the marketplace policy snapshot. Policies
// load from configuration at startup, so there is no write counterpart.
func (s *AdminService) GetConfiguration(_ context.Context) *ConfigurationResponse {
	min, max := s.policies.CommissionBounds()
	return &ConfigurationResponse{
		Enabled:                   s.policies.Enabled(),
		SellerRegistrationAllowed: s.policies.SellerRegistrationAllowed(),
		AutoApproveSellers:        s.policies.AutoApproveSellers(),
		DefaultCommissionRate:     s.policies.DefaultCommissionRate(),
		MinCommissionRate:         min,
		MaxCommissionRate:         max,
		MaxProductsPerSeller:      s.policies.MaxProductsPerSeller(),
		AutoApproveProducts:       s.policies.AutoApproveProducts(),
		RatingEnabled:             s.policies.RatingEnabled(),
		ReviewModerationRequired:  s.policies.ReviewModerationRequired(),
		PurchaseRequiredForReview: s.policies.PurchaseRequiredForReview(),
		MessagingEnabled:          s.policies.MessagingEnabled(),
		AnonymousMessagingAllowed: s.policies.AnonymousMessagingAllowed(),
	}
}

func (s *AdminService) moderate(ctx context.Context, sellerID uuid.UUID, op func(*seller.Seller) error) (*SellerResponse, error) {
	sel, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	if err := op(sel); err != nil {
		return nil, err
	}

	if err := s.sellerRepo.Save(ctx, sel); err != nil {
		return nil, err
	}

	for _, event := range sel.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	sel.ClearDomainEvents()

	if s.statsCache != nil {
		s.statsCache.Invalidate(ctx)
	}

	response := ToSellerResponse(sel)
	return &response, nil
}

// BulkApprove approves sellers one by one, reporting per-item outcomes.
// A failed item never aborts the rest of the batch.
func (s *AdminService) BulkApprove(ctx context.Context, sellerIDs []uuid.UUID) *BulkSellerResponse {
	return s.bulk(ctx, sellerIDs, func(id uuid.UUID) error {
		_, err := s.ApproveSeller(ctx, id)
		return err
	})
}

// BulkReject rejects sellers one by one with a shared reason
func (s *AdminService) BulkReject(ctx context.Context, sellerIDs []uuid.UUID, reason string) *BulkSellerResponse {
	return s.bulk(ctx, sellerIDs, func(id uuid.UUID) error {
		_, err := s.RejectSeller(ctx, id, reason)
		return err
	})
}

func (s *AdminService) bulk(_ context.Context, sellerIDs []uuid.UUID, op func(uuid.UUID) error) *BulkSellerResponse {
	result := &BulkSellerResponse{
		Success: make([]uuid.UUID, 0, len(sellerIDs)),
		Failed:  make([]BulkFailure, 0),
	}

	for _, id := range sellerIDs {
		if err := op(id); err != nil {
			result.Failed = append(result.Failed, BulkFailure{SellerID: id, Error: err.Error()})
			continue
		}
		result.Success = append(result.Success, id)
	}

	return result
}

// GetDashboard returns the admin landing page aggregates
func (s *AdminService) GetDashboard(ctx context.Context) (*DashboardResponse, error) {
	stats, err := s.GetStats(ctx)
	if err != nil {
		return nil, err
	}

	recentFilter := shared.DefaultFilter()
	recentFilter.PageSize = 5
	pending, err := s.sellerRepo.FindByApprovalStatus(ctx, seller.ApprovalPending, recentFilter)
	if err != nil {
		return nil, err
	}

	return &DashboardResponse{
		Stats:          *stats,
		PendingSellers: ToSellerListResponses(pending.Items),
	}, nil
}

// GetSellerDashboard returns one seller's profile with its recent activity
func (s *AdminService) GetSellerDashboard(ctx context.Context, sellerID uuid.UUID) (*SellerDashboardResponse, error) {
	sel, err := s.sellerRepo.FindByID(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	activity, err := s.GetSellerActivity(ctx, sellerID, 10)
	if err != nil {
		return nil, err
	}

	return &SellerDashboardResponse{
		Seller:         ToSellerResponse(sel),
		RecentActivity: activity,
	}, nil
}

// GetSellerActivity merges a seller's recent listings, reviews and
// messages into one feed, newest first
func (s *AdminService) GetSellerActivity(ctx context.Context, sellerID uuid.UUID, limit int) ([]ActivityEntry, error) {
	if _, err := s.sellerRepo.FindByID(ctx, sellerID); err != nil {
		return nil, err
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	filter := shared.DefaultFilter()
	filter.PageSize = limit

	entries := make([]ActivityEntry, 0, limit*3)

	listings, err := s.listingRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}
	for i := range listings.Items {
		item := &listings.Items[i]
		entries = append(entries, ActivityEntry{
			Type:       "listing",
			RefID:      item.ID,
			Summary:    fmt.Sprintf("listed product %s (%s)", item.ProductID, item.Condition),
			OccurredAt: item.CreatedAt,
		})
	}

	reviews, err := s.reviewRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}
	for i := range reviews.Items {
		item := &reviews.Items[i]
		entries = append(entries, ActivityEntry{
			Type:       "review",
			RefID:      item.ID,
			Summary:    fmt.Sprintf("received a %d-star review", item.Rating),
			OccurredAt: item.CreatedAt,
		})
	}

	messages, err := s.messageRepo.FindBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, err
	}
	for i := range messages.Items {
		item := &messages.Items[i]
		summary := "received a customer message"
		if item.IsSellerMessage {
			summary = "replied to a customer"
		}
		entries = append(entries, ActivityEntry{
			Type:       "message",
			RefID:      item.ID,
			Summary:    summary,
			OccurredAt: item.CreatedAt,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].OccurredAt.After(entries[j].OccurredAt)
	})
	if len(entries) > limit {
		entries = entries[:limit]
	}

	return entries, nil
}
