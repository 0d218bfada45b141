package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	listingapp "github.com/marketplace/backend/internal/application/listing"
)

// ListingHandler handles product listing API endpoints
type ListingHandler struct {
	BaseHandler
	listingService *listingapp.ListingService
}

// NewListingHandler creates a new ListingHandler
func NewListingHandler(listingService *listingapp.ListingService) *ListingHandler {
	return &ListingHandler{
		listingService: listingService,
	}
}

// Create godoc
// @ID           createListing
// @Summary      List a catalog product on the marketplace
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request body listingapp.ListProductRequest true "Listing request"
// @Success      201 {object} APIResponse[listingapp.ListingResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /marketplace/listings [post]
func (h *ListingHandler) Create(c *gin.Context) {
	var req listingapp.ListProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.listingService.ListProduct(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @ID           getListingById
// @Summary      Get listing by ID
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Success      200 {object} APIResponse[listingapp.ListingResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/listings/{id} [get]
func (h *ListingHandler) GetByID(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	resp, err := h.listingService.GetByID(c.Request.Context(), listingID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListBySeller godoc
// @ID           listListingsBySeller
// @Summary      List a seller's listings
// @Tags         listings
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        condition query string false "Product condition" Enums(new, used, refurbished, for_parts)
// @Param        is_approved query bool false "Approval flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]listingapp.ListingResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/listings [get]
func (h *ListingHandler) ListBySeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	filter := withQueryFilters(c, parseFilter(c), "condition", "is_approved", "product_id")

	listings, total, err := h.listingService.ListBySeller(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, listings, total, filter.Page, filter.PageSize)
}

// GetQuota godoc
// @ID           getListingQuota
// @Summary      Check whether a seller may list another product
// @Tags         listings
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[listingapp.ListingQuotaResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/listings/quota [get]
func (h *ListingHandler) GetQuota(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	resp, err := h.listingService.CanAddProduct(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetSellerStats godoc
// @ID           getSellerListingStats
// @Summary      Get listing counts for a seller
// @Tags         listings
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[listingapp.SellerListingStatsResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/listings/stats [get]
func (h *ListingHandler) GetSellerStats(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	resp, err := h.listingService.GetSellerStats(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// ListPending godoc
// @ID           listPendingListings
// @Summary      List listings awaiting approval
// @Tags         listings
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]listingapp.ListingResponse]
// @Router       /marketplace/admin/listings/pending [get]
func (h *ListingHandler) ListPending(c *gin.Context) {
	filter := parseFilter(c)

	listings, total, err := h.listingService.ListPending(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, listings, total, filter.Page, filter.PageSize)
}

// UpdateCondition godoc
// @ID           updateListingCondition
// @Summary      Change a listing's product condition
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Param        request body listingapp.UpdateConditionRequest true "Condition update"
// @Success      200 {object} APIResponse[listingapp.ListingResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/listings/{id}/condition [put]
func (h *ListingHandler) UpdateCondition(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	var req listingapp.UpdateConditionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.listingService.UpdateCondition(c.Request.Context(), listingID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Approve godoc
// @ID           approveListing
// @Summary      Approve a pending listing
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Success      200 {object} APIResponse[listingapp.ListingResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/admin/listings/{id}/approve [post]
func (h *ListingHandler) Approve(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	resp, err := h.listingService.Approve(c.Request.Context(), listingID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Reject godoc
// @ID           rejectListing
// @Summary      Reject a listing
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Param        request body listingapp.RejectListingRequest false "Rejection reason"
// @Success      200 {object} APIResponse[listingapp.ListingResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/admin/listings/{id}/reject [post]
func (h *ListingHandler) Reject(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	var req listingapp.RejectListingRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.listingService.Reject(c.Request.Context(), listingID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// BulkApprove godoc
// @ID           bulkApproveListings
// @Summary      Approve multiple listings
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request body listingapp.BulkListingRequest true "Listing IDs"
// @Success      200 {object} APIResponse[listingapp.BulkListingResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/admin/listings/bulk-approve [post]
func (h *ListingHandler) BulkApprove(c *gin.Context) {
	var req listingapp.BulkListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Success(c, h.listingService.BulkApprove(c.Request.Context(), req.ListingIDs))
}

// BulkReject godoc
// @ID           bulkRejectListings
// @Summary      Reject multiple listings with a shared reason
// @Tags         listings
// @Accept       json
// @Produce      json
// @Param        request body listingapp.BulkListingRequest true "Listing IDs and reason"
// @Success      200 {object} APIResponse[listingapp.BulkListingResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/admin/listings/bulk-reject [post]
func (h *ListingHandler) BulkReject(c *gin.Context) {
	var req listingapp.BulkListingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Success(c, h.listingService.BulkReject(c.Request.Context(), req.ListingIDs, req.Reason))
}

// DeleteByProduct godoc
// @ID           deleteListingByProduct
// @Summary      Remove a seller's listing of a product
// @Tags         listings
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        product_id path string true "Product ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/products/{product_id} [delete]
func (h *ListingHandler) DeleteByProduct(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}
	productID, err := uuid.Parse(c.Param("product_id"))
	if err != nil {
		h.BadRequest(c, "Invalid product ID format")
		return
	}

	if err := h.listingService.DelistByProduct(c.Request.Context(), sellerID, productID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Delete godoc
// @ID           deleteListing
// @Summary      Remove a listing
// @Tags         listings
// @Produce      json
// @Param        id path string true "Listing ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/listings/{id} [delete]
func (h *ListingHandler) Delete(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid listing ID format")
		return
	}

	if err := h.listingService.Delist(c.Request.Context(), listingID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
