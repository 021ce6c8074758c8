package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/tradegate/backend/internal/application/catalog"
)

// HeadingHandler handles heading-related API endpoints
type HeadingHandler struct {
	BaseHandler
	headingService *catalogapp.HeadingService
}

// NewHeadingHandler creates a new HeadingHandler
func NewHeadingHandler(headingService *catalogapp.HeadingService) *HeadingHandler {
	return &HeadingHandler{
		headingService: headingService,
	}
}

// Create creates a new heading under an existing season
func (h *HeadingHandler) Create(c *gin.Context) {
	var req catalogapp.CreateHeadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	heading, err := h.headingService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, heading)
}

// List returns headings matching the query
func (h *HeadingHandler) List(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.headingService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single heading
func (h *HeadingHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid heading ID")
		return
	}

	heading, err := h.headingService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, heading)
}

// Update applies partial updates to a heading
func (h *HeadingHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid heading ID")
		return
	}

	var req catalogapp.UpdateHeadingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	heading, err := h.headingService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, heading)
}

// Delete deletes a heading
func (h *HeadingHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid heading ID")
		return
	}

	if err := h.headingService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
