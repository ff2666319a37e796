package model

import (
	"time"

	"gorm.io/gorm"
)

// Club is the unit of data isolation: every club-scoped record carries its ID.
type Club struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Name        string         `gorm:"uniqueIndex;not null" json:"name"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	MemberCount int            `gorm:"default:0" json:"memberCount"`
	LogoURL     string         `json:"logoUrl,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook will be called before creating a new Club record
func (c *Club) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = generateSecureID("clb_")
	}
	return nil
}
