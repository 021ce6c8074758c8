package catalog

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
)

// SUQ is the standard unit of quantity attached to an HS code.
// The option list is a closed set carried over from the tariff book,
// case variants included.
type SUQ string

// DefaultSUQ is used when a source row does not specify a unit
const DefaultSUQ SUQ = "U"

var suqOptions = map[SUQ]struct{}{
	"1000kwh": {},
	"1000u":   {},
	"2U":      {},
	"c":       {},
	"Carat":   {},
	"Kg":      {},
	"kg":      {},
	"L":       {},
	"m":       {},
	"m2":      {},
	"m3":      {},
	"mm":      {},
	"U":       {},
	"1000U":   {},
}

// IsValid reports whether the value is one of the allowed units
func (s SUQ) IsValid() bool {
	_, ok := suqOptions[s]
	return ok
}

// AllowedSUQs returns the allowed unit values in lexicographic order
func AllowedSUQs() []string {
	out := make([]string, 0, len(suqOptions))
	for s := range suqOptions {
		out = append(out, string(s))
	}
	sort.Strings(out)
	return out
}

// HSCode represents a single tariff line of the nomenclature
type HSCode struct {
	shared.BaseEntity
	Code            string     `gorm:"type:varchar(20);not null;uniqueIndex"`
	GoodsNameFa     string     `gorm:"type:text;not null"`
	GoodsNameEn     string     `gorm:"type:text;not null"`
	Profit          string     `gorm:"type:varchar(255);not null"`
	CustomsDutyRate *int       `gorm:""`
	ImportDutyRate  *string    `gorm:"type:varchar(255)"`
	Priority        *int       `gorm:""`
	SUQ             SUQ        `gorm:"type:varchar(20);not null;default:'U'"`
	SeasonID        uuid.UUID  `gorm:"type:uuid;not null;index"`
	Season          *Season    `gorm:"foreignKey:SeasonID;constraint:OnDelete:CASCADE"`
	HeadingID       *uuid.UUID `gorm:"type:uuid;index"`
	Heading         *Heading   `gorm:"foreignKey:HeadingID;constraint:OnDelete:SET NULL"`
}

// TableName returns the table name for GORM
func (HSCode) TableName() string {
	return "hs_codes"
}

// NewHSCode creates a new HS code line
func NewHSCode(code, goodsNameFa, goodsNameEn, profit string, suq SUQ, seasonID uuid.UUID) (*HSCode, error) {
	if code == "" {
		return nil, shared.NewDomainError("INVALID_CODE", "HS code cannot be empty")
	}
	if len(code) > 20 {
		return nil, shared.NewDomainError("INVALID_CODE", "HS code cannot exceed 20 characters")
	}
	if suq == "" {
		suq = DefaultSUQ
	}
	if !suq.IsValid() {
		return nil, shared.NewDomainError("INVALID_SUQ", "SUQ is not one of the allowed units")
	}

	return &HSCode{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		GoodsNameFa: goodsNameFa,
		GoodsNameEn: goodsNameEn,
		Profit:      profit,
		SUQ:         suq,
		SeasonID:    seasonID,
	}, nil
}

// Touch bumps the update timestamp after field assignment
func (h *HSCode) Touch() {
	h.UpdatedAt = time.Now()
}
