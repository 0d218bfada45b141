package review

import (
	"time"

	"github.com/google/uuid"
	"github.com/marketplace/backend/internal/domain/review"
)

// SubmitReviewRequest represents a request to review a seller
type SubmitReviewRequest struct {
	SellerID   uuid.UUID  `json:"seller_id" binding:"required"`
	CustomerID uuid.UUID  `json:"customer_id" binding:"required"`
	OrderID    *uuid.UUID `json:"order_id"`
	Rating     int        `json:"rating" binding:"required,min=1,max=5"`
	Title      string     `json:"title" binding:"max=255"`
	Comment    string     `json:"comment" binding:"max=1000"`
}

// UpdateReviewRequest represents a customer editing their review
type UpdateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Title   string `json:"title" binding:"max=255"`
	Comment string `json:"comment" binding:"max=1000"`
}

// UnapproveReviewRequest carries the moderation reason for a withdrawal
type UnapproveReviewRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

// BulkReviewRequest represents a bulk moderation call
type BulkReviewRequest struct {
	ReviewIDs []uuid.UUID `json:"review_ids" binding:"required,min=1"`
	Reason    string      `json:"reason" binding:"max=500"`
}

// BulkFailure reports one failed item of a bulk operation
type BulkFailure struct {
	ReviewID uuid.UUID `json:"review_id"`
	Error    string    `json:"error"`
}

// BulkReviewResponse reports the per-item outcome of a bulk operation
type BulkReviewResponse struct {
	Success []uuid.UUID   `json:"success"`
	Failed  []BulkFailure `json:"failed"`
}

// ReviewResponse represents a review in API responses
type ReviewResponse struct {
	ID         uuid.UUID `json:"id"`
	SellerID   uuid.UUID `json:"seller_id"`
	CustomerID uuid.UUID `json:"customer_id"`
	OrderID    uuid.UUID `json:"order_id,omitempty"`
	Rating     int       `json:"rating"`
	Title      string    `json:"title"`
	Comment    string    `json:"comment"`
	IsApproved bool      `json:"is_approved"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Version    int       `json:"version"`
}

// RatingSummaryResponse is a seller's rating snapshot with the
// per-star distribution over approved reviews
type RatingSummaryResponse struct {
	SellerID     uuid.UUID     `json:"seller_id"`
	Rating       float64       `json:"rating"`
	ReviewCount  int64         `json:"review_count"`
	Distribution map[int]int64 `json:"distribution"`
}

// ToReviewResponse converts a domain Review to ReviewResponse
func ToReviewResponse(r *review.Review) ReviewResponse {
	return ReviewResponse{
		ID:         r.ID,
		SellerID:   r.SellerID,
		CustomerID: r.CustomerID,
		OrderID:    r.OrderID,
		Rating:     r.Rating,
		Title:      r.Title,
		Comment:    r.Comment,
		IsApproved: r.IsApproved,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
		Version:    r.Version,
	}
}

// ToReviewResponses converts a slice of domain Reviews
func ToReviewResponses(reviews []review.Review) []ReviewResponse {
	responses := make([]ReviewResponse, len(reviews))
	for i := range reviews {
		responses[i] = ToReviewResponse(&reviews[i])
	}
	return responses
}
