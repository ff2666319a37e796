package model

import (
	"time"

	"gorm.io/gorm"
)

// Admin represents an administrator account. ClubID is nil for university
// admins and set to the owning club for club admins; it never changes after
// the account is created.
type Admin struct {
	ID        string         `gorm:"primaryKey" json:"id"`
	Username  string         `gorm:"uniqueIndex;not null" json:"username"`
	Password  string         `json:"-"` // bcrypt hash, never serialized
	ClubID    *string        `gorm:"index" json:"clubId"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook will be called before creating a new Admin record
func (a *Admin) BeforeCreate(tx *gorm.DB) (err error) {
	if a.ID == "" {
		a.ID = generateSecureID("adm_")
	}
	return nil
}

// IsUniversityAdmin reports whether this account has university-wide scope.
func (a *Admin) IsUniversityAdmin() bool {
	return a.ClubID == nil
}
