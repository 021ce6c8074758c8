package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/tradegate/backend/internal/application/trade"
	"github.com/tradegate/backend/internal/interfaces/http/middleware"
)

// OrderHandler handles registered order API endpoints
type OrderHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewOrderHandler creates a new OrderHandler
func NewOrderHandler(orderService *tradeapp.OrderService) *OrderHandler {
	return &OrderHandler{
		orderService: orderService,
	}
}

// Create registers a new order for the authenticated user
func (h *OrderHandler) Create(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	var req tradeapp.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Create(c.Request.Context(), user, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, order)
}

// List returns the caller's orders, or every order for administrators
func (h *OrderHandler) List(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	orders, err := h.orderService.List(c.Request.Context(), user)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, orders)
}

// GetByToken returns a single order addressed by its public token
func (h *OrderHandler) GetByToken(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		h.BadRequest(c, "Invalid order token")
		return
	}

	order, err := h.orderService.GetByToken(c.Request.Context(), user, token)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Update applies partial updates to an order
func (h *OrderHandler) Update(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		h.BadRequest(c, "Invalid order token")
		return
	}

	var req tradeapp.UpdateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	order, err := h.orderService.Update(c.Request.Context(), user, token, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}

// Delete deletes an order
func (h *OrderHandler) Delete(c *gin.Context) {
	user := middleware.GetCurrentUser(c)
	if user == nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		h.BadRequest(c, "Invalid order token")
		return
	}

	if err := h.orderService.Delete(c.Request.Context(), user, token); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}

// Verify sets the verification flag of an order. Administrators only.
func (h *OrderHandler) Verify(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		h.BadRequest(c, "Invalid order token")
		return
	}

	var req tradeapp.VerifyOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "verified must be a boolean")
		return
	}
	if req.Verified == nil {
		h.BadRequest(c, "verified is required")
		return
	}

	order, err := h.orderService.SetVerified(c.Request.Context(), token, *req.Verified)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
