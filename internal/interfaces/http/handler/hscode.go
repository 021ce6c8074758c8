package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	catalogapp "github.com/tradegate/backend/internal/application/catalog"
)

// HSCodeHandler handles HS code API endpoints
type HSCodeHandler struct {
	BaseHandler
	hsCodeService *catalogapp.HSCodeService
}

// NewHSCodeHandler creates a new HSCodeHandler
func NewHSCodeHandler(hsCodeService *catalogapp.HSCodeService) *HSCodeHandler {
	return &HSCodeHandler{
		hsCodeService: hsCodeService,
	}
}

// Create creates a new HS code, deriving its season and heading links
func (h *HSCodeHandler) Create(c *gin.Context) {
	var req catalogapp.CreateHSCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	hsCode, err := h.hsCodeService.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Created(c, hsCode)
}

// List returns HS codes matching the query
func (h *HSCodeHandler) List(c *gin.Context) {
	var filter catalogapp.ListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	result, err := h.hsCodeService.List(c.Request.Context(), filter)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.SuccessWithMeta(c, result.Items, result.Total, result.Page, result.PageSize)
}

// GetByID returns a single HS code
func (h *HSCodeHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid HS code ID")
		return
	}

	hsCode, err := h.hsCodeService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, hsCode)
}

// GetByCode returns a single HS code looked up by its code value
func (h *HSCodeHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")
	if code == "" {
		h.BadRequest(c, "Missing HS code")
		return
	}

	hsCode, err := h.hsCodeService.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, hsCode)
}

// Update applies partial updates to an HS code. The code itself and the
// derived season and heading links cannot change.
func (h *HSCodeHandler) Update(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid HS code ID")
		return
	}

	var req catalogapp.UpdateHSCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	hsCode, err := h.hsCodeService.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, hsCode)
}

// Delete deletes an HS code
func (h *HSCodeHandler) Delete(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid HS code ID")
		return
	}

	if err := h.hsCodeService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}

	h.NoContent(c)
}
