package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	sellerapp "github.com/marketplace/backend/internal/application/seller"
)

// SellerHandler handles seller-related API endpoints
type SellerHandler struct {
	BaseHandler
	sellerService *sellerapp.SellerService
}

// NewSellerHandler creates a new SellerHandler
func NewSellerHandler(sellerService *sellerapp.SellerService) *SellerHandler {
	return &SellerHandler{
		sellerService: sellerService,
	}
}

// Register godoc
// @ID           registerSeller
// @Summary      Register a new seller
// @Description  Register a customer as a marketplace seller
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Param        request body sellerapp.RegisterSellerRequest true "Seller registration request"
// @Success      201 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      409 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /marketplace/sellers [post]
func (h *SellerHandler) Register(c *gin.Context) {
	var req sellerapp.RegisterSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.sellerService.Register(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @ID           getSellerById
// @Summary      Get seller by ID
// @Tags         sellers
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/sellers/{id} [get]
func (h *SellerHandler) GetByID(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	resp, err := h.sellerService.GetByID(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetByCustomer godoc
// @ID           getSellerByCustomer
// @Summary      Get the seller account of a customer
// @Tags         sellers
// @Produce      json
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/sellers/customer/{customer_id} [get]
func (h *SellerHandler) GetByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	resp, err := h.sellerService.GetByCustomerID(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetBySubdomain godoc
// @ID           getSellerBySubdomain
// @Summary      Get seller by shop subdomain
// @Tags         sellers
// @Produce      json
// @Param        subdomain path string true "Shop subdomain"
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/sellers/subdomain/{subdomain} [get]
func (h *SellerHandler) GetBySubdomain(c *gin.Context) {
	subdomain := c.Param("subdomain")
	if subdomain == "" {
		h.BadRequest(c, "Subdomain is required")
		return
	}

	resp, err := h.sellerService.GetBySubdomain(c.Request.Context(), subdomain)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// List godoc
// @ID           listSellers
// @Summary      List sellers
// @Description  Retrieve a paginated list of sellers with optional filtering
// @Tags         sellers
// @Produce      json
// @Param        search query string false "Search term (company name, subdomain)"
// @Param        status query string false "Seller status" Enums(inactive, active, suspended)
// @Param        approval_status query string false "Approval status" Enums(pending, approved, rejected)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Param        order_by query string false "Order by field" default(created_at)
// @Param        order_dir query string false "Order direction" Enums(asc, desc) default(desc)
// @Success      200 {object} APIResponse[[]sellerapp.SellerListResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/sellers [get]
func (h *SellerHandler) List(c *gin.Context) {
	var filter sellerapp.SellerListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	sellers, total, err := h.sellerService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	page, pageSize := filter.Page, filter.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	h.SuccessWithMeta(c, sellers, total, page, pageSize)
}

// Update godoc
// @ID           updateSeller
// @Summary      Update a seller's profile
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        request body sellerapp.UpdateSellerRequest true "Seller update request"
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /marketplace/sellers/{id} [put]
func (h *SellerHandler) Update(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	var req sellerapp.UpdateSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.sellerService.Update(c.Request.Context(), sellerID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Activate godoc
// @ID           activateSeller
// @Summary      Activate a seller
// @Tags         sellers
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/activate [post]
func (h *SellerHandler) Activate(c *gin.Context) {
	h.transition(c, h.sellerService.Activate)
}

// Deactivate godoc
// @ID           deactivateSeller
// @Summary      Deactivate a seller
// @Tags         sellers
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/deactivate [post]
func (h *SellerHandler) Deactivate(c *gin.Context) {
	h.transition(c, h.sellerService.Deactivate)
}

// Suspend godoc
// @ID           suspendSeller
// @Summary      Suspend a seller
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        request body sellerapp.SuspendSellerRequest false "Suspension reason"
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/suspend [post]
func (h *SellerHandler) Suspend(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	var req sellerapp.SuspendSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.sellerService.Suspend(c.Request.Context(), sellerID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// RecordSale godoc
// @ID           recordSellerSale
// @Summary      Credit a completed order amount to a seller
// @Tags         sellers
// @Accept       json
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        request body sellerapp.RecordSaleRequest true "Sale amount"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/sales [post]
func (h *SellerHandler) RecordSale(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	var req sellerapp.RecordSaleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.sellerService.RecordSale(c.Request.Context(), sellerID, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// RefreshStatistics godoc
// @ID           refreshSellerStatistics
// @Summary      Recompute a seller's derived statistics
// @Description  Recounts the rating, review count and product count from their sources
// @Tags         sellers
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/statistics/refresh [post]
func (h *SellerHandler) RefreshStatistics(c *gin.Context) {
	h.transition(c, h.sellerService.RefreshStatistics)
}

// Delete godoc
// @ID           deleteSeller
// @Summary      Delete a seller
// @Tags         sellers
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/sellers/{id} [delete]
func (h *SellerHandler) Delete(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	if err := h.sellerService.Delete(c.Request.Context(), sellerID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// transition runs a single-argument seller state operation keyed by the
// path ID and writes the refreshed seller
func (h *SellerHandler) transition(c *gin.Context, op func(ctx context.Context, id uuid.UUID) (*sellerapp.SellerResponse, error)) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	resp, err := op(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}
