package catalog

import (
	"time"

	"github.com/google/uuid"
	"github.com/tradegate/backend/internal/domain/shared"
)

// Heading represents a four digit tariff heading under a season
type Heading struct {
	shared.BaseEntity
	Code         string    `gorm:"type:varchar(4);not null;uniqueIndex"`
	SeasonID     uuid.UUID `gorm:"type:uuid;not null;index"`
	Season       *Season   `gorm:"foreignKey:SeasonID;constraint:OnDelete:CASCADE"`
	Description  *string   `gorm:"type:text"`
	HeadingNotes *string   `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (Heading) TableName() string {
	return "headings"
}

// NewHeading creates a new heading attached to a season
func NewHeading(code string, seasonID uuid.UUID, description, notes string) (*Heading, error) {
	if err := validateHeadingCode(code); err != nil {
		return nil, err
	}

	return &Heading{
		BaseEntity:   shared.NewBaseEntity(),
		Code:         code,
		SeasonID:     seasonID,
		Description:  optionalText(description),
		HeadingNotes: optionalText(notes),
	}, nil
}

// Update updates the heading's season and descriptive fields
func (h *Heading) Update(seasonID uuid.UUID, description, notes string) {
	h.SeasonID = seasonID
	h.Description = optionalText(description)
	h.HeadingNotes = optionalText(notes)
	h.UpdatedAt = time.Now()
}

func validateHeadingCode(code string) error {
	if code == "" {
		return shared.NewDomainError("INVALID_CODE", "Heading code cannot be empty")
	}
	if len(code) > 4 {
		return shared.NewDomainError("INVALID_CODE", "Heading code cannot exceed 4 characters")
	}
	return nil
}
