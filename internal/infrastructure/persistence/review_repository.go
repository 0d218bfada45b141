package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/review"
	"github.com/marketplace/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormReviewRepository implements review.Repository using GORM
type GormReviewRepository struct {
	db *gorm.DB
}

// NewGormReviewRepository creates a new GormReviewRepository
func NewGormReviewRepository(db *gorm.DB) *GormReviewRepository {
	return &GormReviewRepository{db: db}
}

// FindByID finds a review by its ID
func (r *GormReviewRepository) FindByID(ctx context.Context, id uuid.UUID) (*review.Review, error) {
	var rev review.Review
	if err := r.db.WithContext(ctx).First(&rev, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rev, nil
}

// FindBySeller finds reviews for a seller
func (r *GormReviewRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[review.Review], error) {
	query := r.db.WithContext(ctx).Model(&review.Review{}).Where("seller_id = ?", sellerID)
	return r.findPage(query, filter)
}

// FindApprovedBySeller finds a seller's approved reviews
func (r *GormReviewRepository) FindApprovedBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[review.Review], error) {
	query := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Where("seller_id = ? AND is_approved = ?", sellerID, true)
	return r.findPage(query, filter)
}

// FindByCustomer finds reviews written by a customer
func (r *GormReviewRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[review.Review], error) {
	query := r.db.WithContext(ctx).Model(&review.Review{}).Where("customer_id = ?", customerID)
	return r.findPage(query, filter)
}

// FindPendingModeration finds reviews awaiting moderation
func (r *GormReviewRepository) FindPendingModeration(ctx context.Context, filter shared.Filter) (*shared.Paginated[review.Review], error) {
	query := r.db.WithContext(ctx).Model(&review.Review{}).Where("is_approved = ?", false)
	return r.findPage(query, filter)
}

// Save persists a review
func (r *GormReviewRepository) Save(ctx context.Context, rev *review.Review) error {
	if err := r.db.WithContext(ctx).Save(rev).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a review
func (r *GormReviewRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&review.Review{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all reviews, moderated or not
func (r *GormReviewRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPendingModeration counts reviews awaiting moderation
func (r *GormReviewRepository) CountPendingModeration(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Where("is_approved = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// AggregateForSeller computes count and average rating over the seller's
// approved reviews. Both values come from one query so they can never
// disagree about which reviews were counted.
func (r *GormReviewRepository) AggregateForSeller(ctx context.Context, sellerID uuid.UUID) (*review.RatingAggregate, error) {
	var result struct {
		Count   int64
		Average float64
	}
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as average").
		Where("seller_id = ? AND is_approved = ?", sellerID, true).
		Scan(&result).Error; err != nil {
		return nil, err
	}
	return &review.RatingAggregate{Count: result.Count, Average: result.Average}, nil
}

// AggregateApproved computes count and average rating over every approved
// review in the marketplace
func (r *GormReviewRepository) AggregateApproved(ctx context.Context) (*review.RatingAggregate, error) {
	var result struct {
		Count   int64
		Average float64
	}
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Select("COUNT(*) as count, COALESCE(AVG(rating), 0) as average").
		Where("is_approved = ?", true).
		Scan(&result).Error; err != nil {
		return nil, err
	}
	return &review.RatingAggregate{Count: result.Count, Average: result.Average}, nil
}

// RatingDistribution counts approved reviews per rating value
func (r *GormReviewRepository) RatingDistribution(ctx context.Context, sellerID uuid.UUID) (map[int]int64, error) {
	var rows []struct {
		Rating int
		Count  int64
	}
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Select("rating, COUNT(*) as count").
		Where("seller_id = ? AND is_approved = ?", sellerID, true).
		Group("rating").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	distribution := make(map[int]int64, len(rows))
	for _, row := range rows {
		distribution[row.Rating] = row.Count
	}
	return distribution, nil
}

// ExistsBySellerAndCustomer checks whether a customer already reviewed a seller
func (r *GormReviewRepository) ExistsBySellerAndCustomer(ctx context.Context, sellerID, customerID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&review.Review{}).
		Where("seller_id = ? AND customer_id = ?", sellerID, customerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// findPage runs the count and page queries for a filtered listing
func (r *GormReviewRepository) findPage(query *gorm.DB, filter shared.Filter) (*shared.Paginated[review.Review], error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	var total int64
	counted := r.applyFilterWithoutPagination(query.Session(&gorm.Session{}), filter)
	if err := counted.Count(&total).Error; err != nil {
		return nil, err
	}

	var reviews []review.Review
	paged := r.applyFilter(query.Session(&gorm.Session{}), filter)
	if err := paged.Find(&reviews).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(reviews, total, filter.Page, filter.PageSize)
	return &page, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormReviewRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, ReviewSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormReviewRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "rating":
			query = query.Where("rating = ?", value)
		case "min_rating":
			query = query.Where("rating >= ?", value)
		case "is_approved":
			query = query.Where("is_approved = ?", value)
		case "has_order":
			if value == true {
				query = query.Where("order_id IS NOT NULL AND order_id != ?", uuid.Nil)
			}
		}
	}

	return query
}

// Ensure GormReviewRepository implements review.Repository
var _ review.Repository = (*GormReviewRepository)(nil)
