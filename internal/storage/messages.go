package storage

import (
	"errors"
	"log"

	"travelmatch/backend/internal/models"

	"gorm.io/gorm"
)

// CreateMessage inserts a new message row.
func (s *Service) CreateMessage(msg *models.Message) error {
	if err := s.DB.Create(msg).Error; err != nil {
		log.Printf("ERROR: Failed to save message %s -> %s: %v", msg.SenderID, msg.ReceiverID, err)
		return err
	}
	return nil
}

// SaveMessage persists an updated message row.
func (s *Service) SaveMessage(msg *models.Message) error {
	return s.DB.Save(msg).Error
}

// GetMessageByID returns the message, or nil without error when missing.
func (s *Service) GetMessageByID(id string) (*models.Message, error) {
	var msg models.Message
	err := s.DB.First(&msg, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &msg, nil
}

// GetConversationPage returns one page of the exchange between two users,
// both directions, oldest first, excluding soft-deleted messages, plus the
// total count.
func (s *Service) GetConversationPage(userA, userB string, page, pageSize int) ([]models.Message, int64, error) {
	q := s.DB.Model(&models.Message{}).Where(
		"((sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)) AND deleted = ?",
		userA, userB, userB, userA, false,
	)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var msgs []models.Message
	err := q.Order("created_at ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&msgs).Error
	if err != nil {
		return nil, 0, err
	}
	return msgs, total, nil
}

// ListMessagesInvolving returns every message sent or received by the user,
// newest first. The conversation projector scans this to build its view.
func (s *Service) ListMessagesInvolving(userID string) ([]models.Message, error) {
	var msgs []models.Message
	err := s.DB.Where("sender_id = ? OR receiver_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&msgs).Error
	if err != nil {
		return nil, err
	}
	return msgs, nil
}

// MarkMessagesRead flips the read flag for the listed messages addressed to
// receiverID. IDs that do not exist or belong to someone else are skipped by
// the WHERE clause, which is the intended no-op behavior.
func (s *Service) MarkMessagesRead(ids []string, receiverID string) error {
	if len(ids) == 0 {
		return nil
	}
	return s.DB.Model(&models.Message{}).
		Where("id IN ? AND receiver_id = ?", ids, receiverID).
		Update("read", true).Error
}
