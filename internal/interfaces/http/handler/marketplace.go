package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	tradeapp "github.com/tradegate/backend/internal/application/trade"
)

// MarketplaceHandler handles the public marketplace endpoints.
// Only verified orders are exposed and no authentication is required.
type MarketplaceHandler struct {
	BaseHandler
	orderService *tradeapp.OrderService
}

// NewMarketplaceHandler creates a new MarketplaceHandler
func NewMarketplaceHandler(orderService *tradeapp.OrderService) *MarketplaceHandler {
	return &MarketplaceHandler{
		orderService: orderService,
	}
}

// List returns verified orders matching the marketplace query
func (h *MarketplaceHandler) List(c *gin.Context) {
	var query tradeapp.MarketplaceQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.orderService.Marketplace(c.Request.Context(), query)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// Detail returns a single verified order by its public token
func (h *MarketplaceHandler) Detail(c *gin.Context) {
	token, err := uuid.Parse(c.Param("token"))
	if err != nil {
		h.BadRequest(c, "Invalid order token")
		return
	}

	order, err := h.orderService.MarketplaceDetail(c.Request.Context(), token)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, order)
}
