package model

import (
	"time"

	"gorm.io/gorm"
)

// StudentPoints is one point award from a club to a student. Awards are
// append-only; a student's balance within a club is the sum of their rows.
type StudentPoints struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	ClubID           string    `gorm:"index;not null" json:"clubId"`
	EnrollmentNumber string    `gorm:"index;not null" json:"enrollmentNumber"`
	Points           int       `gorm:"not null" json:"points"`
	Reason           string    `json:"reason"`
	AwardedAt        time.Time `gorm:"autoCreateTime" json:"awardedAt"`
}

// BeforeCreate hook will be called before creating a new StudentPoints record
func (p *StudentPoints) BeforeCreate(tx *gorm.DB) (err error) {
	if p.ID == "" {
		p.ID = generateSecureID("pts_")
	}
	return nil
}
