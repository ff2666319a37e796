package model

import (
	"time"

	"gorm.io/gorm"
)

// Achievement is a club-scoped recognition granted to a student.
type Achievement struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	ClubID           string    `gorm:"index;not null" json:"clubId"`
	EnrollmentNumber string    `gorm:"index" json:"enrollmentNumber"`
	StudentName      string    `json:"studentName"`
	Title            string    `gorm:"not null" json:"title"`
	Description      string    `json:"description"`
	AwardedAt        time.Time `gorm:"autoCreateTime" json:"awardedAt"`
}

// BeforeCreate hook will be called before creating a new Achievement record
func (a *Achievement) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = generateSecureID("ach_")
	}
	return nil
}
