package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/listing"
	"github.com/marketplace/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormListingRepository implements listing.Repository using GORM
type GormListingRepository struct {
	db *gorm.DB
}

// NewGormListingRepository creates a new GormListingRepository
func NewGormListingRepository(db *gorm.DB) *GormListingRepository {
	return &GormListingRepository{db: db}
}

// FindByID finds a listing by its ID
func (r *GormListingRepository) FindByID(ctx context.Context, id uuid.UUID) (*listing.Listing, error) {
	var l listing.Listing
	if err := r.db.WithContext(ctx).First(&l, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// FindBySellerAndProduct finds the listing for a (seller, product) pair
func (r *GormListingRepository) FindBySellerAndProduct(ctx context.Context, sellerID, productID uuid.UUID) (*listing.Listing, error) {
	var l listing.Listing
	if err := r.db.WithContext(ctx).
		Where("seller_id = ? AND product_id = ?", sellerID, productID).
		First(&l).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &l, nil
}

// FindBySeller finds all listings belonging to a seller
func (r *GormListingRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[listing.Listing], error) {
	query := r.db.WithContext(ctx).Model(&listing.Listing{}).Where("seller_id = ?", sellerID)
	return r.findPage(query, filter)
}

// FindAll finds listings matching the filter
func (r *GormListingRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[listing.Listing], error) {
	return r.findPage(r.db.WithContext(ctx).Model(&listing.Listing{}), filter)
}

// FindPendingApproval finds listings awaiting moderation
func (r *GormListingRepository) FindPendingApproval(ctx context.Context, filter shared.Filter) (*shared.Paginated[listing.Listing], error) {
	query := r.db.WithContext(ctx).Model(&listing.Listing{}).Where("is_approved = ?", false)
	return r.findPage(query, filter)
}

// Save persists a listing
func (r *GormListingRepository) Save(ctx context.Context, l *listing.Listing) error {
	if err := r.db.WithContext(ctx).Save(l).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes a listing
func (r *GormListingRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&listing.Listing{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all listings
func (r *GormListingRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&listing.Listing{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountPendingApproval counts listings awaiting moderation
func (r *GormListingRepository) CountPendingApproval(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&listing.Listing{}).
		Where("is_approved = ?", false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountBySeller counts a seller's listings, approved or not
func (r *GormListingRepository) CountBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&listing.Listing{}).
		Where("seller_id = ?", sellerID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountApprovedBySeller counts a seller's approved listings
func (r *GormListingRepository) CountApprovedBySeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&listing.Listing{}).
		Where("seller_id = ? AND is_approved = ?", sellerID, true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySellerAndProduct checks whether a seller already lists a product
func (r *GormListingRepository) ExistsBySellerAndProduct(ctx context.Context, sellerID, productID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&listing.Listing{}).
		Where("seller_id = ? AND product_id = ?", sellerID, productID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// findPage runs the count and page queries for a filtered listing
func (r *GormListingRepository) findPage(query *gorm.DB, filter shared.Filter) (*shared.Paginated[listing.Listing], error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	var total int64
	counted := r.applyFilterWithoutPagination(query.Session(&gorm.Session{}), filter)
	if err := counted.Count(&total).Error; err != nil {
		return nil, err
	}

	var listings []listing.Listing
	paged := r.applyFilter(query.Session(&gorm.Session{}), filter)
	if err := paged.Find(&listings).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(listings, total, filter.Page, filter.PageSize)
	return &page, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormListingRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, ListingSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormListingRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "condition":
			query = query.Where("condition = ?", value)
		case "is_approved":
			query = query.Where("is_approved = ?", value)
		case "product_id":
			query = query.Where("product_id = ?", value)
		}
	}

	return query
}

// Ensure GormListingRepository implements listing.Repository
var _ listing.Repository = (*GormListingRepository)(nil)
