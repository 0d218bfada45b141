package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// SellerSortFields contains allowed sort fields for sellers
var SellerSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"company_name":  true,
	"subdomain":     true,
	"status":        true,
	"rating":        true,
	"review_count":  true,
	"product_count": true,
	"total_sales":   true,
}

// ListingSortFields contains allowed sort fields for listings
var ListingSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"seller_id":   true,
	"product_id":  true,
	"condition":   true,
	"is_approved": true,
}

// ReviewSortFields contains allowed sort fields for reviews
var ReviewSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"seller_id":   true,
	"customer_id": true,
	"rating":      true,
	"is_approved": true,
}

// MessageSortFields contains allowed sort fields for messages
var MessageSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"seller_id":   true,
	"customer_id": true,
	"is_read":     true,
}
