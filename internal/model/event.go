package model

import (
	"time"

	"gorm.io/gorm"
)

// Event is a club-scoped happening. ClubName is denormalized from the owning
// club at creation time so public listings need no join.
type Event struct {
	ID          string         `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `json:"description"`
	Date        string         `json:"date"`
	Time        string         `json:"time"`
	Location    string         `json:"location"`
	Category    string         `json:"category"`
	ClubID      string         `gorm:"index;not null" json:"clubId"`
	ClubName    string         `json:"clubName"`
	ImageURL    string         `json:"imageUrl,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook will be called before creating a new Event record
func (e *Event) BeforeCreate(tx *gorm.DB) (err error) {
	if e.ID == "" {
		e.ID = generateSecureID("evt_")
	}
	return nil
}
