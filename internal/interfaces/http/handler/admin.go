package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	sellerapp "github.com/marketplace/backend/internal/application/seller"
)

// AdminHandler handles marketplace administration endpoints
type AdminHandler struct {
	BaseHandler
	adminService *sellerapp.AdminService
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(adminService *sellerapp.AdminService) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GetStats godoc
// @ID           getMarketplaceStats
// @Summary      Get marketplace-wide statistics
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[sellerapp.MarketplaceStatsResponse]
// @Router       /marketplace/admin/stats [get]
func (h *AdminHandler) GetStats(c *gin.Context) {
	resp, err := h.adminService.GetStats(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetDashboard godoc
// @ID           getAdminDashboard
// @Summary      Get the admin moderation dashboard
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[sellerapp.DashboardResponse]
// @Router       /marketplace/admin/dashboard [get]
func (h *AdminHandler) GetDashboard(c *gin.Context) {
	resp, err := h.adminService.GetDashboard(c.Request.Context())
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetSellerDashboard godoc
// @ID           getSellerDashboard
// @Summary      Get one seller's profile with recent activity
// @Tags         admin
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[sellerapp.SellerDashboardResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/admin/sellers/{id}/dashboard [get]
func (h *AdminHandler) GetSellerDashboard(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	resp, err := h.adminService.GetSellerDashboard(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetSellerActivity godoc
// @ID           getSellerActivity
// @Summary      Get a seller's recent activity feed
// @Tags         admin
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        limit query int false "Feed size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]sellerapp.ActivityEntry]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/admin/sellers/{id}/activity [get]
func (h *AdminHandler) GetSellerActivity(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := h.adminService.GetSellerActivity(c.Request.Context(), sellerID, limit)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetPendingSellers godoc
// @ID           listPendingSellers
// @Summary      List sellers awaiting approval
// @Tags         admin
// @Produce      json
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]sellerapp.SellerListResponse]
// @Router       /marketplace/admin/sellers/pending [get]
func (h *AdminHandler) GetPendingSellers(c *gin.Context) {
	filter := parseFilter(c)

	sellers, total, err := h.adminService.GetPendingSellers(c.Request.Context(), filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, sellers, total, filter.Page, filter.PageSize)
}

// ApproveSeller godoc
// @ID           approveSeller
// @Summary      Approve a pending seller
// @Tags         admin
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /marketplace/admin/sellers/{id}/approve [post]
func (h *AdminHandler) ApproveSeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	resp, err := h.adminService.ApproveSeller(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// RejectSeller godoc
// @ID           rejectSeller
// @Summary      Reject a seller with a reason
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        request body sellerapp.RejectSellerRequest true "Rejection reason"
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/admin/sellers/{id}/reject [post]
func (h *AdminHandler) RejectSeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	var req sellerapp.RejectSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.adminService.RejectSeller(c.Request.Context(), sellerID, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// UpdateSellerStatus godoc
// @ID           updateSellerStatus
// @Summary      Move a seller to a lifecycle state
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        request body sellerapp.UpdateSellerStatusRequest true "Target status"
// @Success      200 {object} APIResponse[sellerapp.SellerResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /marketplace/admin/sellers/{id}/status [post]
func (h *AdminHandler) UpdateSellerStatus(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	var req sellerapp.UpdateSellerStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.adminService.UpdateSellerStatus(c.Request.Context(), sellerID, req.Status, req.Reason)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetConfiguration godoc
// @ID           getMarketplaceConfiguration
// @Summary      Get the marketplace policy configuration
// @Tags         admin
// @Produce      json
// @Success      200 {object} APIResponse[sellerapp.ConfigurationResponse]
// @Router       /marketplace/admin/configuration [get]
func (h *AdminHandler) GetConfiguration(c *gin.Context) {
	h.Success(c, h.adminService.GetConfiguration(c.Request.Context()))
}

// BulkApprove godoc
// @ID           bulkApproveSellers
// @Summary      Approve multiple sellers
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body sellerapp.BulkSellerRequest true "Seller IDs"
// @Success      200 {object} APIResponse[sellerapp.BulkSellerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/admin/sellers/bulk-approve [post]
func (h *AdminHandler) BulkApprove(c *gin.Context) {
	var req sellerapp.BulkSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Success(c, h.adminService.BulkApprove(c.Request.Context(), req.SellerIDs))
}

// BulkReject godoc
// @ID           bulkRejectSellers
// @Summary      Reject multiple sellers with a shared reason
// @Tags         admin
// @Accept       json
// @Produce      json
// @Param        request body sellerapp.BulkSellerRequest true "Seller IDs and reason"
// @Success      200 {object} APIResponse[sellerapp.BulkSellerResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/admin/sellers/bulk-reject [post]
func (h *AdminHandler) BulkReject(c *gin.Context) {
	var req sellerapp.BulkSellerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	h.Success(c, h.adminService.BulkReject(c.Request.Context(), req.SellerIDs, req.Reason))
}
