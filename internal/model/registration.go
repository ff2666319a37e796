package model

import (
	"time"

	"gorm.io/gorm"
)

// EventRegistration records a student signing up for an event. ClubID is
// copied from the event so club admins can read their registrations without
// resolving the event first; it is the tenant-scoping key for reads.
type EventRegistration struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	EventID          string    `gorm:"index;not null" json:"eventId"`
	ClubID           string    `gorm:"index;not null" json:"clubId"`
	StudentName      string    `gorm:"not null" json:"studentName"`
	StudentEmail     string    `gorm:"not null" json:"studentEmail"`
	EnrollmentNumber string    `gorm:"index;not null" json:"enrollmentNumber"`
	Phone            string    `json:"phone"`
	RollNumber       string    `json:"rollNumber"`
	Department       string    `json:"department"`
	Year             string    `json:"year"`
	Interests        string    `json:"interests"` // Comma-separated list
	Experience       string    `json:"experience,omitempty"`
	RegisteredAt     time.Time `gorm:"autoCreateTime" json:"registeredAt"`
}

// BeforeCreate hook will be called before creating a new EventRegistration record
func (r *EventRegistration) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = generateSecureID("reg_")
	}
	return nil
}
