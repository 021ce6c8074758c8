package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/catalog"
)

// CreateSeasonRequest represents a request to create a season
type CreateSeasonRequest struct {
	Code        string `json:"code" binding:"required,min=1,max=2"`
	Description string `json:"description"`
	SeasonNotes string `json:"season_notes"`
}

// UpdateSeasonRequest represents a request to update a season
type UpdateSeasonRequest struct {
	Description *string `json:"description"`
	SeasonNotes *string `json:"season_notes"`
}

// SeasonResponse represents a season in API responses
type SeasonResponse struct {
	ID          uuid.UUID `json:"id"`
	Code        string    `json:"code"`
	Description *string   `json:"description"`
	SeasonNotes *string   `json:"season_notes"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// CreateHeadingRequest represents a request to create a heading
type CreateHeadingRequest struct {
	Code         string `json:"code" binding:"required,min=1,max=4"`
	SeasonCode   string `json:"season_code" binding:"required"`
	Description  string `json:"description"`
	HeadingNotes string `json:"heading_notes"`
}

// UpdateHeadingRequest represents a request to update a heading
type UpdateHeadingRequest struct {
	SeasonCode   *string `json:"season_code"`
	Description  *string `json:"description"`
	HeadingNotes *string `json:"heading_notes"`
}

// HeadingResponse represents a heading in API responses
type HeadingResponse struct {
	ID           uuid.UUID `json:"id"`
	Code         string    `json:"code"`
	SeasonID     uuid.UUID `json:"season_id"`
	SeasonCode   string    `json:"season_code,omitempty"`
	Description  *string   `json:"description"`
	HeadingNotes *string   `json:"heading_notes"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// CreateHSCodeRequest represents a request to create an HS code.
// Season and heading links are derived from the code itself.
type CreateHSCodeRequest struct {
	Code            string  `json:"code" binding:"required,min=2,max=20"`
	GoodsNameFa     string  `json:"goods_name_fa" binding:"required"`
	GoodsNameEn     string  `json:"goods_name_en" binding:"required"`
	Profit          string  `json:"profit" binding:"required"`
	CustomsDutyRate *int    `json:"customs_duty_rate"`
	ImportDutyRate  *string `json:"import_duty_rate"`
	Priority        *int    `json:"priority"`
	SUQ             string  `json:"suq"`
}

// UpdateHSCodeRequest represents a request to update an HS code
type UpdateHSCodeRequest struct {
	GoodsNameFa     *string `json:"goods_name_fa"`
	GoodsNameEn     *string `json:"goods_name_en"`
	Profit          *string `json:"profit"`
	CustomsDutyRate *int    `json:"customs_duty_rate"`
	ImportDutyRate  *string `json:"import_duty_rate"`
	Priority        *int    `json:"priority"`
	SUQ             *string `json:"suq"`
}

// HSCodeResponse represents an HS code in API responses
type HSCodeResponse struct {
	ID              uuid.UUID  `json:"id"`
	Code            string     `json:"code"`
	GoodsNameFa     string     `json:"goods_name_fa"`
	GoodsNameEn     string     `json:"goods_name_en"`
	Profit          string     `json:"profit"`
	CustomsDutyRate *int       `json:"customs_duty_rate"`
	ImportDutyRate  *string    `json:"import_duty_rate"`
	Priority        *int       `json:"priority"`
	SUQ             string     `json:"suq"`
	SeasonID        uuid.UUID  `json:"season_id"`
	SeasonCode      string     `json:"season_code,omitempty"`
	HeadingID       *uuid.UUID `json:"heading_id"`
	HeadingCode     string     `json:"heading_code,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ListFilter represents pagination and search options for catalogue lists
type ListFilter struct {
	Search   string `form:"search"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=600"`
}

// ToSeasonResponse converts a domain Season to SeasonResponse
func ToSeasonResponse(s *catalog.Season) SeasonResponse {
	return SeasonResponse{
		ID:          s.ID,
		Code:        s.Code,
		Description: s.Description,
		SeasonNotes: s.SeasonNotes,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToHeadingResponse converts a domain Heading to HeadingResponse
func ToHeadingResponse(h *catalog.Heading) HeadingResponse {
	resp := HeadingResponse{
		ID:           h.ID,
		Code:         h.Code,
		SeasonID:     h.SeasonID,
		Description:  h.Description,
		HeadingNotes: h.HeadingNotes,
		CreatedAt:    h.CreatedAt,
		UpdatedAt:    h.UpdatedAt,
	}
	if h.Season != nil {
		resp.SeasonCode = h.Season.Code
	}
	return resp
}

// ToHSCodeResponse converts a domain HSCode to HSCodeResponse
func ToHSCodeResponse(h *catalog.HSCode) HSCodeResponse {
	resp := HSCodeResponse{
		ID:              h.ID,
		Code:            h.Code,
		GoodsNameFa:     h.GoodsNameFa,
		GoodsNameEn:     h.GoodsNameEn,
		Profit:          h.Profit,
		CustomsDutyRate: h.CustomsDutyRate,
		ImportDutyRate:  h.ImportDutyRate,
		Priority:        h.Priority,
		SUQ:             string(h.SUQ),
		SeasonID:        h.SeasonID,
		HeadingID:       h.HeadingID,
		CreatedAt:       h.CreatedAt,
		UpdatedAt:       h.UpdatedAt,
	}
	if h.Season != nil {
		resp.SeasonCode = h.Season.Code
	}
	if h.Heading != nil {
		resp.HeadingCode = h.Heading.Code
	}
	return resp
}

// stringValue dereferences an optional text field, mapping nil to ""
func stringValue(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
