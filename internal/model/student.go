package model

import (
	"time"

	"gorm.io/gorm"
)

// Student represents a student account identified by enrollment number.
type Student struct {
	ID         string         `gorm:"primaryKey" json:"id"`
	Name       string         `gorm:"not null" json:"name"`
	Email      string         `gorm:"uniqueIndex;not null" json:"email"`
	Enrollment string         `gorm:"uniqueIndex;not null" json:"enrollment"`
	Branch     string         `json:"branch"`
	Password   string         `json:"-"` // bcrypt hash, never serialized
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BeforeCreate hook will be called before creating a new Student record
func (s *Student) BeforeCreate(tx *gorm.DB) (err error) {
	if s.ID == "" {
		s.ID = generateSecureID("stu_")
	}
	return nil
}
