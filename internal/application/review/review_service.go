package review

import (
	"context"

	"github.com/google/uuid"
	sellerapp "github.com/marketplace/backend/internal/application/seller"
	"github.com/marketplace/backend/internal/domain/marketplace"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
)

// ReviewService handles seller reviews and keeps the derived seller
// rating consistent with the set of approved reviews
type ReviewService struct {
	reviewRepo review.Repository
	sellerRepo seller.Repository
	policies   marketplace.Policies
	eventBus   shared.EventPublisher
	stats      *sellerapp.StatsService
}

// NewReviewService creates a new ReviewService
func NewReviewService(
	reviewRepo review.Repository,
	sellerRepo seller.Repository,
	policies marketplace.Policies,
	eventBus shared.EventPublisher,
	stats *sellerapp.StatsService,
) *ReviewService {
	return &ReviewService{
		reviewRepo: reviewRepo,
		sellerRepo: sellerRepo,
		policies:   policies,
		eventBus:   eventBus,
		stats:      stats,
	}
}

// Submit submits a customer review of a seller
func (s *ReviewService) Submit(ctx context.Context, req SubmitReviewRequest) (*ReviewResponse, error) {
	if !s.policies.Enabled() || !s.policies.RatingEnabled() {
		return nil, shared.NewDomainError("POLICY_VIOLATION", "Seller reviews are disabled")
	}

	sel, err := s.sellerRepo.FindByID(ctx, req.SellerID)
	if err != nil {
		return nil, err
	}
	if !sel.IsApproved() {
		return nil, shared.NewDomainError("INVALID_STATE", "Seller cannot be reviewed before approval")
	}

	if s.policies.PurchaseRequiredForReview() && req.OrderID == nil {
		return nil, shared.NewDomainError("POLICY_VIOLATION", "Reviews require a completed purchase")
	}

	exists, err := s.reviewRepo.ExistsBySellerAndCustomer(ctx, req.SellerID, req.CustomerID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Customer has already reviewed this seller")
	}

	approved := !s.policies.ReviewModerationRequired()
	rev, err := review.NewReview(req.SellerID, req.CustomerID, req.Rating, req.Title, req.Comment, approved)
	if err != nil {
		return nil, err
	}
	if req.OrderID != nil {
		rev.SetOrderReference(*req.OrderID)
	}

	if err := s.reviewRepo.Save(ctx, rev); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, rev)

	// Only approved reviews move the seller rating
	if rev.IsApproved {
		if err := s.stats.RecalculateRating(ctx, req.SellerID); err != nil {
			return nil, err
		}
	}

	response := ToReviewResponse(rev)
	return &response, nil
}

// GetByID retrieves a review by ID
func (s *ReviewService) GetByID(ctx context.Context, reviewID uuid.UUID) (*ReviewResponse, error) {
	rev, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	response := ToReviewResponse(rev)
	return &response, nil
}

// ListBySeller retrieves a seller's approved reviews
func (s *ReviewService) ListBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) ([]ReviewResponse, int64, error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	page, err := s.reviewRepo.FindApprovedBySeller(ctx, sellerID, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToReviewResponses(page.Items), page.Total, nil
}

// ListPending retrieves the review moderation queue
func (s *ReviewService) ListPending(ctx context.Context, filter shared.Filter) ([]ReviewResponse, int64, error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	page, err := s.reviewRepo.FindPendingModeration(ctx, filter)
	if err != nil {
		return nil, 0, err
	}

	return ToReviewResponses(page.Items), page.Total, nil
}

// Approve publishes a review and refreshes the seller rating
func (s *ReviewService) Approve(ctx context.Context, reviewID uuid.UUID) (*ReviewResponse, error) {
	return s.moderate(ctx, reviewID, func(rev *review.Review) {
		rev.Approve()
	})
}

// Unapprove withdraws a review and refreshes the seller rating. The
// reason travels on the notification event only.
func (s *ReviewService) Unapprove(ctx context.Context, reviewID uuid.UUID, reason string) (*ReviewResponse, error) {
	return s.moderate(ctx, reviewID, func(rev *review.Review) {
		rev.Unapprove(reason)
	})
}

// Update edits a review's content, refreshing the seller rating when
// the review already counts toward it
func (s *ReviewService) Update(ctx context.Context, reviewID uuid.UUID, req UpdateReviewRequest) (*ReviewResponse, error) {
	rev, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	previousRating := rev.Rating
	if err := rev.UpdateContent(req.Rating, req.Title, req.Comment); err != nil {
		return nil, err
	}

	if err := s.reviewRepo.Save(ctx, rev); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, rev)

	if rev.IsApproved && rev.Rating != previousRating {
		if err := s.stats.RecalculateRating(ctx, rev.SellerID); err != nil {
			return nil, err
		}
	}

	response := ToReviewResponse(rev)
	return &response, nil
}

func (s *ReviewService) moderate(ctx context.Context, reviewID uuid.UUID, op func(*review.Review)) (*ReviewResponse, error) {
	rev, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	wasApproved := rev.IsApproved
	op(rev)
	changed := rev.IsApproved != wasApproved

	if changed {
		if err := s.reviewRepo.Save(ctx, rev); err != nil {
			return nil, err
		}

		s.publishEvents(ctx, rev)

		if err := s.stats.RecalculateRating(ctx, rev.SellerID); err != nil {
			return nil, err
		}
	}

	response := ToReviewResponse(rev)
	return &response, nil
}

// BulkApprove publishes reviews one by one, reporting per-item outcomes.
// A failed item never aborts the rest of the batch.
func (s *ReviewService) BulkApprove(ctx context.Context, reviewIDs []uuid.UUID) *BulkReviewResponse {
	return s.bulk(reviewIDs, func(id uuid.UUID) error {
		_, err := s.Approve(ctx, id)
		return err
	})
}

// BulkUnapprove withdraws reviews one by one with a shared reason
func (s *ReviewService) BulkUnapprove(ctx context.Context, reviewIDs []uuid.UUID, reason string) *BulkReviewResponse {
	return s.bulk(reviewIDs, func(id uuid.UUID) error {
		_, err := s.Unapprove(ctx, id, reason)
		return err
	})
}

func (s *ReviewService) bulk(reviewIDs []uuid.UUID, op func(uuid.UUID) error) *BulkReviewResponse {
	result := &BulkReviewResponse{
		Success: make([]uuid.UUID, 0, len(reviewIDs)),
		Failed:  make([]BulkFailure, 0),
	}

	for _, id := range reviewIDs {
		if err := op(id); err != nil {
			result.Failed = append(result.Failed, BulkFailure{ReviewID: id, Error: err.Error()})
			continue
		}
		result.Success = append(result.Success, id)
	}

	return result
}

// Delete removes a review, refreshing the seller rating when the
// review was part of it
func (s *ReviewService) Delete(ctx context.Context, reviewID uuid.UUID) error {
	rev, err := s.reviewRepo.FindByID(ctx, reviewID)
	if err != nil {
		return err
	}

	if err := s.reviewRepo.Delete(ctx, reviewID); err != nil {
		return err
	}

	_ = s.eventBus.Publish(ctx, review.NewReviewDeletedEvent(rev))

	if rev.IsApproved {
		return s.stats.RecalculateRating(ctx, rev.SellerID)
	}
	return nil
}

// GetRatingSummary returns a seller's current rating with the
// per-star distribution
func (s *ReviewService) GetRatingSummary(ctx context.Context, sellerID uuid.UUID) (*RatingSummaryResponse, error) {
	if _, err := s.sellerRepo.FindByID(ctx, sellerID); err != nil {
		return nil, err
	}

	agg, err := s.reviewRepo.AggregateForSeller(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	distribution, err := s.reviewRepo.RatingDistribution(ctx, sellerID)
	if err != nil {
		return nil, err
	}

	rating := 0.0
	if agg.Count > 0 {
		rating = agg.Average
	}

	return &RatingSummaryResponse{
		SellerID:     sellerID,
		Rating:       rating,
		ReviewCount:  agg.Count,
		Distribution: distribution,
	}, nil
}

func (s *ReviewService) publishEvents(ctx context.Context, rev *review.Review) {
	for _, event := range rev.GetDomainEvents() {
		_ = s.eventBus.Publish(ctx, event)
	}
	rev.ClearDomainEvents()
}
