package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/tradegate/backend/internal/application/catalog"
)

// SeasonHandler handles season-related API endpoints
type SeasonHandler struct {
	BaseHandler
	seasonService *catalogapp.SeasonService
}

// NewSeasonHandler creates a new SeasonHandler
func NewSeasonHandler(seasonService *catalogapp.SeasonService) *SeasonHandler {
	return &SeasonHandler{
		seasonService: seasonService,
	}
}

// Create creates a new season
func (h *SeasonHandler) Create(c *gin.Context) {
	var req catalogapp.CreateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	season, err := h.seasonService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, season)
}

// List returns seasons matching the query
func (h *SeasonHandler) List(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.seasonService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single season
func (h *SeasonHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid season ID")
		return
	}

	season, err := h.seasonService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, season)
}

// Update applies partial updates to a season
func (h *SeasonHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid season ID")
		return
	}

	var req catalogapp.UpdateSeasonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	season, err := h.seasonService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, season)
}

// Delete deletes a season
func (h *SeasonHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid season ID")
		return
	}

	if err := h.seasonService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
