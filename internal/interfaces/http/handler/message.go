package handler

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	messagingapp "github.com/marketplace/backend/internal/application/messaging"
)

// MessageHandler handles seller-customer messaging API endpoints
type MessageHandler struct {
	BaseHandler
	messageService *messagingapp.MessageService
}

// NewMessageHandler creates a new MessageHandler
func NewMessageHandler(messageService *messagingapp.MessageService) *MessageHandler {
	return &MessageHandler{
		messageService: messageService,
	}
}

// Send godoc
// @ID           sendMessage
// @Summary      Send a message between a seller and a customer
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        request body messagingapp.SendMessageRequest true "Message"
// @Success      201 {object} APIResponse[messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Failure      422 {object} ErrorResponse
// @Router       /marketplace/messages [post]
func (h *MessageHandler) Send(c *gin.Context) {
	var req messagingapp.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.messageService.Send(c.Request.Context(), req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// Reply godoc
// @ID           replyToMessage
// @Summary      Reply within an existing conversation
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id path string true "Message ID being replied to" format(uuid)
// @Param        request body messagingapp.ReplyRequest true "Reply"
// @Success      201 {object} APIResponse[messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/messages/{id}/reply [post]
func (h *MessageHandler) Reply(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid message ID format")
		return
	}

	var req messagingapp.ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	resp, err := h.messageService.Reply(c.Request.Context(), messageID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, resp)
}

// GetByID godoc
// @ID           getMessageById
// @Summary      Get message by ID
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      200 {object} APIResponse[messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/messages/{id} [get]
func (h *MessageHandler) GetByID(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid message ID format")
		return
	}

	resp, err := h.messageService.GetByID(c.Request.Context(), messageID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// GetConversation godoc
// @ID           getConversation
// @Summary      Get the message thread between a seller and a customer
// @Tags         messages
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/conversations/{seller_id}/{customer_id} [get]
func (h *MessageHandler) GetConversation(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("seller_id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	filter := parseFilter(c)

	messages, total, err := h.messageService.GetConversation(c.Request.Context(), sellerID, customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, messages, total, filter.Page, filter.PageSize)
}

// MarkConversationRead godoc
// @ID           markConversationRead
// @Summary      Mark a conversation as read for one participant
// @Tags         messages
// @Accept       json
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        request body messagingapp.MarkConversationReadRequest true "Reading participant"
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/conversations/{seller_id}/{customer_id}/read [post]
func (h *MessageHandler) MarkConversationRead(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("seller_id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	var req messagingapp.MarkConversationReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.messageService.MarkConversationRead(c.Request.Context(), sellerID, customerID, req); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ListBySeller godoc
// @ID           listMessagesBySeller
// @Summary      List a seller's messages
// @Tags         messages
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Param        is_read query bool false "Read flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/messages [get]
func (h *MessageHandler) ListBySeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	filter := withQueryFilters(c, parseFilter(c), "is_read", "from_seller")

	messages, total, err := h.messageService.ListBySeller(c.Request.Context(), sellerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, messages, total, filter.Page, filter.PageSize)
}

// ListByCustomer godoc
// @ID           listMessagesByCustomer
// @Summary      List a customer's messages
// @Tags         messages
// @Produce      json
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Param        is_read query bool false "Read flag"
// @Param        page query int false "Page number" default(1)
// @Param        page_size query int false "Page size" default(20) maximum(100)
// @Success      200 {object} APIResponse[[]messagingapp.MessageResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/customers/{customer_id}/messages [get]
func (h *MessageHandler) ListByCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	filter := withQueryFilters(c, parseFilter(c), "is_read", "from_seller")

	messages, total, err := h.messageService.ListByCustomer(c.Request.Context(), customerID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, messages, total, filter.Page, filter.PageSize)
}

// MarkRead godoc
// @ID           markMessageRead
// @Summary      Mark a message as read
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/messages/{id}/read [post]
func (h *MessageHandler) MarkRead(c *gin.Context) {
	h.setRead(c, h.messageService.MarkRead)
}

// MarkUnread godoc
// @ID           markMessageUnread
// @Summary      Mark a message as unread
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/messages/{id}/unread [post]
func (h *MessageHandler) MarkUnread(c *gin.Context) {
	h.setRead(c, h.messageService.MarkUnread)
}

func (h *MessageHandler) setRead(c *gin.Context, op func(ctx context.Context, id uuid.UUID) error) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid message ID format")
		return
	}

	if err := op(c.Request.Context(), messageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkAllReadForSeller godoc
// @ID           sellerMarkAllRead
// @Summary      Mark all of a seller's incoming messages as read
// @Tags         messages
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[messagingapp.MarkAllReadResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/messages/read-all [post]
func (h *MessageHandler) MarkAllReadForSeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	resp, err := h.messageService.MarkAllReadForSeller(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// MarkAllReadForCustomer godoc
// @ID           customerMarkAllRead
// @Summary      Mark all of a customer's incoming messages as read
// @Tags         messages
// @Produce      json
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[messagingapp.MarkAllReadResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/customers/{customer_id}/messages/read-all [post]
func (h *MessageHandler) MarkAllReadForCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	resp, err := h.messageService.MarkAllReadForCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// UnreadCountForSeller godoc
// @ID           sellerUnreadCount
// @Summary      Count a seller's unread messages
// @Tags         messages
// @Produce      json
// @Param        id path string true "Seller ID" format(uuid)
// @Success      200 {object} APIResponse[messagingapp.UnreadCountResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/sellers/{id}/messages/unread-count [get]
func (h *MessageHandler) UnreadCountForSeller(c *gin.Context) {
	sellerID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid seller ID format")
		return
	}

	resp, err := h.messageService.UnreadCountForSeller(c.Request.Context(), sellerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// UnreadCountForCustomer godoc
// @ID           customerUnreadCount
// @Summary      Count a customer's unread messages
// @Tags         messages
// @Produce      json
// @Param        customer_id path string true "Customer ID" format(uuid)
// @Success      200 {object} APIResponse[messagingapp.UnreadCountResponse]
// @Failure      400 {object} ErrorResponse
// @Router       /marketplace/customers/{customer_id}/messages/unread-count [get]
func (h *MessageHandler) UnreadCountForCustomer(c *gin.Context) {
	customerID, err := uuid.Parse(c.Param("customer_id"))
	if err != nil {
		h.BadRequest(c, "Invalid customer ID format")
		return
	}

	resp, err := h.messageService.UnreadCountForCustomer(c.Request.Context(), customerID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, resp)
}

// Delete godoc
// @ID           deleteMessage
// @Summary      Delete a message
// @Tags         messages
// @Produce      json
// @Param        id path string true "Message ID" format(uuid)
// @Success      204
// @Failure      400 {object} ErrorResponse
// @Failure      404 {object} ErrorResponse
// @Router       /marketplace/messages/{id} [delete]
func (h *MessageHandler) Delete(c *gin.Context) {
	messageID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid message ID format")
		return
	}

	if err := h.messageService.Delete(c.Request.Context(), messageID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
