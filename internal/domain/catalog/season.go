package catalog

import (
	"strings"
	"time"

	"github.com/tradegate/backend/internal/domain/shared"
)

// Season represents a chapter grouping of the tariff nomenclature.
// Season codes are stored without leading zeros ("1", not "01").
// Descriptive fields are nullable; a blank value is stored as NULL.
type Season struct {
	shared.BaseEntity
	Code        string  `gorm:"type:varchar(2);not null;uniqueIndex"`
	Description *string `gorm:"type:text"`
	SeasonNotes *string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Season) TableName() string {
	return "seasons"
}

// NewSeason creates a new season
func NewSeason(code, description, notes string) (*Season, error) {
	if err := validateSeasonCode(code); err != nil {
		return nil, err
	}

	return &Season{
		BaseEntity:  shared.NewBaseEntity(),
		Code:        code,
		Description: optionalText(description),
		SeasonNotes: optionalText(notes),
	}, nil
}

// Update updates the season's descriptive fields
func (s *Season) Update(description, notes string) {
	s.Description = optionalText(description)
	s.SeasonNotes = optionalText(notes)
	s.UpdatedAt = time.Now()
}

// optionalText maps a blank value to nil so it is stored as NULL
func optionalText(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}

func validateSeasonCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Season code cannot be empty")
	}
	if len(code) > 2 {
		return shared.NewDomainError("INVALID_CODE", "Season code cannot exceed 2 characters")
	}
	return nil
}
