package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/messaging"
	"github.com/marketplace/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormMessageRepository implements messaging.Repository using GORM
type GormMessageRepository struct {
	db *gorm.DB
}

// NewGormMessageRepository creates a new GormMessageRepository
func NewGormMessageRepository(db *gorm.DB) *GormMessageRepository {
	return &GormMessageRepository{db: db}
}

// FindByID finds a message by its ID
func (r *GormMessageRepository) FindByID(ctx context.Context, id uuid.UUID) (*messaging.Message, error) {
	var m messaging.Message
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &m, nil
}

// FindConversation finds the messages between a seller and a customer
func (r *GormMessageRepository) FindConversation(ctx context.Context, sellerID, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[messaging.Message], error) {
	query := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where("seller_id = ? AND customer_id = ?", sellerID, customerID)
	return r.findPage(query, filter)
}

// FindBySeller finds a seller's messages across conversations
func (r *GormMessageRepository) FindBySeller(ctx context.Context, sellerID uuid.UUID, filter shared.Filter) (*shared.Paginated[messaging.Message], error) {
	query := r.db.WithContext(ctx).Model(&messaging.Message{}).Where("seller_id = ?", sellerID)
	return r.findPage(query, filter)
}

// FindByCustomer finds a customer's messages across conversations
func (r *GormMessageRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (*shared.Paginated[messaging.Message], error) {
	query := r.db.WithContext(ctx).Model(&messaging.Message{}).Where("customer_id = ?", customerID)
	return r.findPage(query, filter)
}

// Save persists a message
func (r *GormMessageRepository) Save(ctx context.Context, m *messaging.Message) error {
	return r.db.WithContext(ctx).Save(m).Error
}

// Delete removes a message
func (r *GormMessageRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&messaging.Message{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Count counts all messages
func (r *GormMessageRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBetween checks whether any message exists between a seller and a customer
func (r *GormMessageRepository) ExistsBetween(ctx context.Context, sellerID, customerID uuid.UUID) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where("seller_id = ? AND customer_id = ?", sellerID, customerID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountUnreadForSeller counts customer messages the seller has not read
func (r *GormMessageRepository) CountUnreadForSeller(ctx context.Context, sellerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where("seller_id = ? AND is_seller_message = ? AND is_read = ?", sellerID, false, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountUnreadForCustomer counts seller messages the customer has not read
func (r *GormMessageRepository) CountUnreadForCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where("customer_id = ? AND is_seller_message = ? AND is_read = ?", customerID, true, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkConversationRead marks every unread message addressed to the reader
// within a conversation
func (r *GormMessageRepository) MarkConversationRead(ctx context.Context, sellerID, customerID uuid.UUID, sellerReader bool) error {
	return r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where("seller_id = ? AND customer_id = ? AND is_seller_message = ? AND is_read = ?",
			sellerID, customerID, !sellerReader, false).
		Updates(map[string]interface{}{"is_read": true}).Error
}

// MarkAllRead marks every unread message addressed to the participant
// across all of their conversations
func (r *GormMessageRepository) MarkAllRead(ctx context.Context, participantID uuid.UUID, sellerParticipant bool) (int64, error) {
	column := "customer_id"
	if sellerParticipant {
		column = "seller_id"
	}

	result := r.db.WithContext(ctx).
		Model(&messaging.Message{}).
		Where(column+" = ? AND is_seller_message = ? AND is_read = ?",
			participantID, !sellerParticipant, false).
		Updates(map[string]interface{}{"is_read": true})
	return result.RowsAffected, result.Error
}

// findPage runs the count and page queries for a filtered listing
func (r *GormMessageRepository) findPage(query *gorm.DB, filter shared.Filter) (*shared.Paginated[messaging.Message], error) {
	if filter.Page <= 0 {
		filter = shared.DefaultFilter()
	}

	var total int64
	counted := r.applyFilterWithoutPagination(query.Session(&gorm.Session{}), filter)
	if err := counted.Count(&total).Error; err != nil {
		return nil, err
	}

	var messages []messaging.Message
	paged := r.applyFilter(query.Session(&gorm.Session{}), filter)
	if err := paged.Find(&messages).Error; err != nil {
		return nil, err
	}

	page := shared.NewPaginated(messages, total, filter.Page, filter.PageSize)
	return &page, nil
}

// applyFilter applies filter options including pagination and ordering
func (r *GormMessageRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	if filter.OrderBy != "" {
		orderBy := ValidateSortField(filter.OrderBy, MessageSortFields, "created_at")
		query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))
	} else {
		query = query.Order("created_at DESC")
	}

	return query
}

// applyFilterWithoutPagination applies filter options without pagination
func (r *GormMessageRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	for key, value := range filter.Filters {
		switch key {
		case "is_read":
			query = query.Where("is_read = ?", value)
		case "is_seller_message":
			query = query.Where("is_seller_message = ?", value)
		case "order_id":
			query = query.Where("order_id = ?", value)
		}
	}

	return query
}

// Ensure GormMessageRepository implements messaging.Repository
var _ messaging.Repository = (*GormMessageRepository)(nil)
