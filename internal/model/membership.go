package model

import (
	"time"

	"gorm.io/gorm"
)

// Membership status values. Transitions are one-way: pending moves to
// approved or rejected, and neither terminal state moves again.
const (
	MembershipPending  = "pending"
	MembershipApproved = "approved"
	MembershipRejected = "rejected"
)

// ClubMembership is a student's request to join a club. Status starts
// pending and is changed only by the owning club's admin.
type ClubMembership struct {
	ID               string    `gorm:"primaryKey" json:"id"`
	ClubID           string    `gorm:"index;not null" json:"clubId"`
	StudentName      string    `gorm:"not null" json:"studentName"`
	StudentEmail     string    `gorm:"not null" json:"studentEmail"`
	EnrollmentNumber string    `gorm:"index;not null" json:"enrollmentNumber"`
	Department       string    `json:"department"`
	Reason           string    `json:"reason"`
	Status           string    `gorm:"default:pending" json:"status"`
	JoinedAt         time.Time `gorm:"autoCreateTime" json:"joinedAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// BeforeCreate hook will be called before creating a new ClubMembership record
func (m *ClubMembership) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = generateSecureID("mem_")
	}
	if m.Status == "" {
		m.Status = MembershipPending
	}
	return nil
}

// IsTerminal reports whether the membership has left the pending state.
func (m *ClubMembership) IsTerminal() bool {
	return m.Status == MembershipApproved || m.Status == MembershipRejected
}
