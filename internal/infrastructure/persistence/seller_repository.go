package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/seller"
	"github.com/marketplace/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSellerRepository implements seller.Repository using GORM
type GormSellerRepository struct {
	db *gorm.DB
}

// NewGormSellerRepository creates a new GormSellerRepository
func NewGormSellerRepository(db *gorm.DB) *GormSellerRepository {
	return &GormSellerRepository{db: db}
}

// FindByID finds a seller by its ID
func (r *GormSellerRepository) FindByID(ctx context.Context, id uuid.UUID) (*seller.Seller, error) {
	var s seller.Seller
	if err := r.db.WithContext(ctx).First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindByCustomerID finds the seller owned by a customer account
func (r *GormSellerRepository) FindByCustomerID(ctx context.Context, customerID uuid.UUID) (*seller.Seller, error) {
	var s seller.Seller
	if err := r.db.WithContext(ctx).First(&s, "customer_id = ?", customerID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindBySubdomain finds a seller by its storefront subdomain
func (r *GormSellerRepository) FindBySubdomain(ctx context.Context, subdomain string) (*seller.Seller, error) {
	var s seller.Seller
	if err := r.db.WithContext(ctx).First(&s, "subdomain = ?", subdomain).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &s, nil
}

// FindAll finds all sellers matching the filter
func (r *GormSellerRepository) FindAll(ctx context.Context, filter shared.Filter) (*shared.Paginated[seller.Seller], error) {
	return r.findPage(ctx, r.db.WithContext(ctx).Model(&seller.Seller{}), filter)
}

// FindByApprovalStatus finds sellers by approval status
func (r *GormSellerRepository) FindByApprovalStatus(ctx context.Context, status seller.ApprovalStatus, filter shared.Filter) (*shared.Paginated[seller.Seller], error) {
	query := r.db.WithContext(ctx).Model(&seller.Seller{}).Where("approval_status = ?", status)
	return r.findPage(ctx, query, filter)
}

// Save creates or updates a seller
func (r *GormSellerRepository) Save(ctx context.Context, s *seller.Seller) error {
	if err := r.db.WithContext(ctx).Save(s).Error; err != nil {
		if isDuplicateKey(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// SaveWithLock saves a seller with optimistic locking (checks version)
func (r *GormSellerRepository) SaveWithLock(ctx context.Context, s *seller.Seller) error {
	result := r.db.WithContext(ctx).
		Model(s).
		Where("id = ? AND version = ?", s.ID, s.Version-1).
		Updates(map[string]interface{}{
			"company_name":     s.CompanyName,
			"status":           s.Status,
			"approval_status":  s.ApprovalStatus,
			"rejection_reason": s.RejectionReason,
			"commission_rate":  s.CommissionRate,
			"rating":           s.Rating,
			"review_count":     s.ReviewCount,
			"product_count":    s.ProductCount,
			"total_sales":      s.TotalSales,
			"version":          s.Version,
			"updated_at":       s.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete deletes a seller
func (r *GormSellerRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&seller.Seller{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts sellers matching the filter
func (r *GormSellerRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&seller.Seller{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountByApprovalStatus counts sellers in an approval state
func (r *GormSellerRepository) CountByApprovalStatus(ctx context.Context, status seller.ApprovalStatus) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&seller.Seller{}).
		Where("approval_status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsByCustomerID checks whether a customer already owns a seller
func (r *GormSellerRepository) ExistsByCustomerID(ctx context.Context, customerID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&seller.Seller{}).
		Where("customer_id = ?", customerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// ExistsBySubdomain checks whether a subdomain is taken
func (r *GormSellerRepository) ExistsBySubdomain(ctx context.Context, subdomain string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&seller.Seller{}).
		Where("subdomain = ?", subdomain).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// findPage runs the count and page queries for a filtered listing
func (r *GormSellerRepository) findPage(ctx context.Context, query *gorm.DB, filter shared.Filter) (*shared.Paginated[seller.Seller], error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	var total int64
	counted := r.applyFilterWithoutPagination(query.Session(&gorm.Session{}), filter)
	if err := counted.Count(&total).Error; err != nil {
		return nil, err
	}

	var sellers []seller.Seller
	paged := r.applyFilter(query.Session(&gorm.Session{}), filter)
	if err := paged.Find(&sellers).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(sellers, total, filter.Page, filter.PageSize)
	return &page, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormSellerRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, SellerSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormSellerRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "approval_status":
			query = query.Where("approval_status = ?", value)
		case "country_id":
			query = query.Where("country_id = ?", value)
		case "can_sell":
			if value == true {
				query = query.Where("status = ? AND approval_status = ?", seller.StatusActive, seller.ApprovalApproved)
			}
		case "min_rating":
			query = query.Where("rating >= ?", value)
		}
	}

	if filter.Search != "" {
		search := "%" + strings.ToLower(filter.Search) + "%"
		query = query.Where("LOWER(company_name) LIKE ? OR LOWER(subdomain) LIKE ?", search, search)
	}

	return query
}

// Ensure GormSellerRepository implements seller.Repository
var _ seller.Repository = (*GormSellerRepository)(nil)
