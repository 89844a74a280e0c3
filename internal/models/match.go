package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MatchStatus is the lifecycle state of a connection request.
// Pending is the only non-terminal state: a match is either accepted or
// rejected exactly once, by its receiver.
type MatchStatus string

const (
	MatchPending  MatchStatus = "pending"
	MatchAccepted MatchStatus = "accepted"
	MatchRejected MatchStatus = "rejected"
)

// Match represents a connection request from one traveler to another,
// optionally scoped to a travel plan. An accepted match is what authorizes
// the two users to exchange messages.
type Match struct {
	ID          string  `gorm:"primaryKey" json:"id"`
	InitiatorID string  `gorm:"type:text;not null;index:idx_match_pair" json:"initiatorId"`
	ReceiverID  string  `gorm:"type:text;not null;index:idx_match_pair" json:"receiverId"`
	// TravelPlanID is nil for plan-less requests; a nil plan forms its own
	// bucket for the duplicate check.
	TravelPlanID *string     `gorm:"index" json:"travelPlanId,omitempty"`
	Status       MatchStatus `gorm:"type:text;not null;index" json:"status"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// BeforeCreate generates the ID and defaults the status for new records.
func (m *Match) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.Status == "" {
		m.Status = MatchPending
	}
	return
}

// Involves reports whether userID is either participant.
func (m *Match) Involves(userID string) bool {
	return m.InitiatorID == userID || m.ReceiverID == userID
}

// Connects reports whether the match links users a and b, in either direction.
func (m *Match) Connects(a, b string) bool {
	return (m.InitiatorID == a && m.ReceiverID == b) ||
		(m.InitiatorID == b && m.ReceiverID == a)
}

// CounterpartOf returns the other participant relative to userID.
func (m *Match) CounterpartOf(userID string) string {
	if m.InitiatorID == userID {
		return m.ReceiverID
	}
	return m.InitiatorID
}

// IsTerminal reports whether the match can no longer be transitioned.
func (m *Match) IsTerminal() bool {
	return m.Status != MatchPending
}
