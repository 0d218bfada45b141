package seller

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/listing"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
)

// statsRetries bounds optimistic-lock retries when another writer
// touched the seller row between read and save
const statsRetries = 3

// StatsService recomputes the derived seller statistics. Rating and
// review count always come from one aggregate query over approved
// reviews and are written back together; recomputations for the same
// seller are serialized in-process.
type StatsService struct {
	sellerRepo  seller.Repository
	reviewRepo  review.Repository
	listingRepo listing.Repository

	locks sync.Map // seller ID -> *sync.Mutex
}

// NewStatsService creates a new StatsService
func NewStatsService(sellerRepo seller.Repository, reviewRepo review.Repository, listingRepo listing.Repository) *StatsService {
	return &StatsService{
		sellerRepo:  sellerRepo,
		reviewRepo:  reviewRepo,
		listingRepo: listingRepo,
	}
}

func (s *StatsService) lock(sellerID uuid.UUID) func() {
	v, _ := s.locks.LoadOrStore(sellerID, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}

// RecalculateRating recomputes the seller's rating and review count
// from its approved reviews
func (s *StatsService) RecalculateRating(ctx context.Context, sellerID uuid.UUID) error {
	unlock := s.lock(sellerID)
	defer unlock()

	agg, err := s.reviewRepo.AggregateForSeller(ctx, sellerID)
	if err != nil {
		return err
	}

	rating := 0.0
	if agg.Count > 0 {
		rating = agg.Average
	}

	return s.saveWithRetry(ctx, sellerID, func(sel *seller.Seller) error {
		return sel.SetRatingStats(rating, int(agg.Count))
	})
}

// RecalculateProductCount recomputes the seller's listing count
func (s *StatsService) RecalculateProductCount(ctx context.Context, sellerID uuid.UUID) error {
	unlock := s.lock(sellerID)
	defer unlock()

	count, err := s.listingRepo.CountBySeller(ctx, sellerID)
	if err != nil {
		return err
	}

	return s.saveWithRetry(ctx, sellerID, func(sel *seller.Seller) error {
		return sel.SetProductCount(int(count))
	})
}

// saveWithRetry applies a mutation under optimistic locking, re-reading
// the seller on version conflicts
func (s *StatsService) saveWithRetry(ctx context.Context, sellerID uuid.UUID, mutate func(*seller.Seller) error) error {
	var lastErr error
	for attempt := 0; attempt < statsRetries; attempt++ {
		sel, err := s.sellerRepo.FindByID(ctx, sellerID)
		if err != nil {
			return err
		}

		if err := mutate(sel); err != nil {
			return err
		}

		err = s.sellerRepo.SaveWithLock(ctx, sel)
		if err == nil {
			return nil
		}
		if !errors.Is(err, shared.ErrConcurrencyConflict) {
			return err
		}
		lastErr = err
	}
	return lastErr
}
