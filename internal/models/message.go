package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Message is a single chat message persisted in PostgreSQL. Every message
// references the match that authorized the exchange at send time.
type Message struct {
	ID         string `gorm:"primaryKey" json:"id"`
	SenderID   string `gorm:"type:text;not null;index:idx_msg_pair" json:"senderId"`
	ReceiverID string `gorm:"type:text;not null;index:idx_msg_pair" json:"receiverId"`
	Content    string `gorm:"type:text;not null" json:"content"`
	MatchID    string `gorm:"type:text;not null;index" json:"matchId"`
	// Read is set true only by an action of the receiver.
	Read bool `gorm:"not null;default:false" json:"read"`
	// Deleted is a soft flag set only by the sender; the row is kept.
	Deleted   bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
}

// BeforeCreate generates the ID for new records.
func (m *Message) BeforeCreate(tx *gorm.DB) (err error) {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return
}

// MessageView is a Message enriched with display names for UI consumption.
type MessageView struct {
	Message
	SenderName   string `json:"senderName"`
	ReceiverName string `json:"receiverName"`
}
