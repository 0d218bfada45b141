package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	reviewapp "github.com/marketplace/backend/internal/application/review"
)

// ReviewHandler handles seller review API endpoints
type ReviewHandler struct {
	BaseHandler
	reviewService *reviewapp.ReviewService
}

// NewReviewHandler creates a new ReviewHandler
func NewReviewHandler(reviewService *reviewapp.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
	}
}

// Submit godoc
// @ID           submitReview
// @Summary      Submit a seller review
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body reviewapp.SubmitReviewRequest true "Review"
// @Success      201 {object} APIResponse[reviewapp.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Router       /marketplace/reviews [post]
func (h *ReviewHandler) Submit(c *gin.Context) {
	var req reviewapp.SubmitReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reviewService.Submit(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @ID           getReviewById
// @Summary      Get review by ID
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Success      200 {object} APIResponse[reviewapp.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/reviews/{id} [get]
func (h *ReviewHandler) GetByID(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	resp, err := h.reviewService.GetByID(c.Request.Context(), reviewID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListBySeller godoc
// @ID           listReviewsBySeller
// @Summary      List approved reviews for a seller
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        rating query int false "Exact star rating" minimum(1) maximum(5)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]reviewapp.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/reviews [get]
func (h *ReviewHandler) ListBySeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	filter := withQueryFilters(c, parseFilter(c), "rating", "customer_id")

	reviews, total, err := h.reviewService.ListBySeller(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, reviews, total, filter.Page, filter.PageSize)
}

// Update godoc
// @ID           updateReview
// @Summary      Update a review's rating and content
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Param        request body reviewapp.UpdateReviewRequest true "Review"
// @Success      200 {object} APIResponse[reviewapp.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/reviews/{id} [put]
func (h *ReviewHandler) Update(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	var req reviewapp.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reviewService.Update(c.Request.Context(), reviewID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListPending godoc
// @ID           listPendingReviews
// @Summary      List reviews awaiting moderation
// @Tags         reviews
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]reviewapp.ReviewResponse]
// @Router       /marketplace/admin/reviews/pending [get]
func (h *ReviewHandler) ListPending(c *gin.Context) {
	filter := parseFilter(c)

	reviews, total, err := h.reviewService.ListPending(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, reviews, total, filter.Page, filter.PageSize)
}

// Approve godoc
// @ID           approveReview
// @Summary      Approve a pending review
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Success      200 {object} APIResponse[reviewapp.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/admin/reviews/{id}/approve [post]
func (h *ReviewHandler) Approve(c *gin.Context) {
	h.moderate(c, h.reviewService.Approve)
}

// Unapprove godoc
// @ID           unapproveReview
// @Summary      Revoke a review's approval
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Param        request body reviewapp.UnapproveReviewRequest false "Moderation reason"
// @Success      200 {object} APIResponse[reviewapp.ReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/admin/reviews/{id}/unapprove [post]
func (h *ReviewHandler) Unapprove(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	var req reviewapp.UnapproveReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.reviewService.Unapprove(c.Request.Context(), reviewID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

func (h *ReviewHandler) moderate(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*reviewapp.ReviewResponse, error)) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	resp, err := op(c.Request.Context(), reviewID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// BulkApprove godoc
// @ID           bulkApproveReviews
// @Summary      Approve multiple reviews
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body reviewapp.BulkReviewRequest true "Review IDs"
// @Success      200 {object} APIResponse[reviewapp.BulkReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/admin/reviews/bulk-approve [post]
func (h *ReviewHandler) BulkApprove(c *gin.Context) {
	var req reviewapp.BulkReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Success(c, h.reviewService.BulkApprove(c.Request.Context(), req.ReviewIDs))
}

// BulkUnapprove godoc
// @ID           bulkUnapproveReviews
// @Summary      Revoke approval for multiple reviews
// @Tags         reviews
// @Accept       json
// @Produce      json
// @Param        request body reviewapp.BulkReviewRequest true "Review IDs and reason"
// @Success      200 {object} APIResponse[reviewapp.BulkReviewResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/admin/reviews/bulk-unapprove [post]
func (h *ReviewHandler) BulkUnapprove(c *gin.Context) {
	var req reviewapp.BulkReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Success(c, h.reviewService.BulkUnapprove(c.Request.Context(), req.ReviewIDs, req.Reason))
}

// Delete godoc
// @ID           deleteReview
// @Summary      Delete a review
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Review ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/reviews/{id} [delete]
func (h *ReviewHandler) Delete(c *gin.Context) {
	reviewID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid review ID format")
		return
	}

	if err := h.reviewService.Delete(c.Request.Context(), reviewID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// GetRatingSummary godoc
// @ID           getSellerRatingSummary
// @Summary      Get a seller's rating distribution
// @Tags         reviews
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[reviewapp.RatingSummaryResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/rating-summary [get]
func (h *ReviewHandler) GetRatingSummary(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	resp, err := h.reviewService.GetRatingSummary(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
