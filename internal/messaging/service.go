// Package messaging persists chat messages behind the authorization gate: a
// message may only be created while an accepted match connects its sender
// and receiver. It also derives the per-counterpart conversation view.
package messaging

import (
	"strings"

	"travelmatch/backend/internal/config"
	"travelmatch/backend/internal/models"
	"travelmatch/backend/internal/storage"
	"travelmatch/backend/pkg/apperrors"
)

// Service implements message send/read/delete and the conversation reads.
type Service struct {
	Storage storage.Storage
}

// NewService Constructor
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Send persists a message after resolving the authorizing match. When
// matchID is given the match is fetched directly; otherwise any accepted
// match connecting the pair is used. The match status is read here, right
// before the insert, never from a cached copy: deleting or rejecting a match
// must take effect for the very next send.
func (s *Service) Send(senderID, receiverID, content string, matchID *string) (*models.MessageView, error) {
	if strings.TrimSpace(content) == "" {
		return nil, apperrors.InvalidRequest("message content cannot be empty")
	}

	m, err := s.resolveMatch(senderID, receiverID, matchID)
	if err != nil {
		return nil, err
	}
	if m == nil || m.Status != models.MatchAccepted || !m.Connects(senderID, receiverID) {
		return nil, apperrors.Unauthorized("no accepted match connects these users")
	}

	msg := &models.Message{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Content:    content,
		MatchID:    m.ID,
	}
	if err := s.Storage.CreateMessage(msg); err != nil {
		return nil, apperrors.Internal("failed to save message", err)
	}

	view := &models.MessageView{Message: *msg}
	view.SenderName, view.ReceiverName = s.displayNames(senderID, receiverID)
	return view, nil
}

func (s *Service) resolveMatch(senderID, receiverID string, matchID *string) (*models.Match, error) {
	if matchID != nil {
		m, err := s.Storage.GetMatchByID(*matchID)
		if err != nil {
			return nil, apperrors.Internal("failed to load match", err)
		}
		return m, nil
	}
	m, err := s.Storage.FindAcceptedMatchBetween(senderID, receiverID)
	if err != nil {
		return nil, apperrors.Internal("failed to find match", err)
	}
	return m, nil
}

// displayNames denormalizes sender/receiver names for UI convenience.
// A missing mirror row just leaves the name empty.
func (s *Service) displayNames(senderID, receiverID string) (string, string) {
	var senderName, receiverName string
	if u, err := s.Storage.GetUser(senderID); err == nil && u != nil {
		senderName = u.DisplayName
	}
	if u, err := s.Storage.GetUser(receiverID); err == nil && u != nil {
		receiverName = u.DisplayName
	}
	return senderName, receiverName
}

// GetConversation returns one page of the exchange between two users,
// oldest first, with the total message count.
func (s *Service) GetConversation(userAID, userBID string, page, pageSize int) ([]models.Message, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = config.DefaultPageSize
	}
	if pageSize > config.MaxPageSize {
		pageSize = config.MaxPageSize
	}

	msgs, total, err := s.Storage.GetConversationPage(userAID, userBID, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to load conversation", err)
	}
	return msgs, total, nil
}

// MarkRead flips the read flag on the listed messages where the acting user
// is the receiver. IDs addressed to someone else are silently skipped; that
// is a deliberate no-op, not a failure.
func (s *Service) MarkRead(messageIDs []string, actingUserID string) error {
	if len(messageIDs) == 0 {
		return nil
	}
	if err := s.Storage.MarkMessagesRead(messageIDs, actingUserID); err != nil {
		return apperrors.Internal("failed to mark messages read", err)
	}
	return nil
}

// SoftDelete marks a message deleted. Only the sender may do this; the row
// is kept and only excluded from conversation rendering.
func (s *Service) SoftDelete(messageID, actingUserID string) error {
	msg, err := s.Storage.GetMessageByID(messageID)
	if err != nil {
		return apperrors.Internal("failed to load message", err)
	}
	if msg == nil {
		return apperrors.NotFound("message not found")
	}
	if msg.SenderID != actingUserID {
		return apperrors.Forbidden("only the sender may delete a message")
	}
	if msg.Deleted {
		return nil
	}

	msg.Deleted = true
	if err := s.Storage.SaveMessage(msg); err != nil {
		return apperrors.Internal("failed to delete message", err)
	}
	return nil
}
