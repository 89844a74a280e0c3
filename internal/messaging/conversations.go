package messaging

import (
	"sort"

	"travelmatch/backend/internal/models"
	"travelmatch/backend/pkg/apperrors"
)

// GetConversations derives the conversation list for a user: one entry per
// distinct counterpart, carrying the most recent non-deleted message and the
// count of unread messages the counterpart sent. Counterparts whose entire
// exchange was soft-deleted are not listed. Sorted by last-message time,
// newest first.
func (s *Service) GetConversations(userID string) ([]models.ConversationSummary, error) {
	msgs, err := s.Storage.ListMessagesInvolving(userID)
	if err != nil {
		return nil, apperrors.Internal("failed to load messages", err)
	}

	// msgs arrive newest first, so the first non-deleted message seen per
	// counterpart is that conversation's latest.
	byCounterpart := make(map[string]*models.ConversationSummary)
	for _, msg := range msgs {
		if msg.Deleted {
			continue
		}
		other := msg.SenderID
		if other == userID {
			other = msg.ReceiverID
		}

		entry, ok := byCounterpart[other]
		if !ok {
			entry = &models.ConversationSummary{
				CounterpartID: other,
				LastMessage:   msg,
			}
			byCounterpart[other] = entry
		}
		if msg.SenderID == other && msg.ReceiverID == userID && !msg.Read {
			entry.UnreadCount++
		}
	}

	summaries := make([]models.ConversationSummary, 0, len(byCounterpart))
	for _, entry := range byCounterpart {
		if u, err := s.Storage.GetUser(entry.CounterpartID); err == nil && u != nil {
			entry.CounterpartName = u.DisplayName
		}
		summaries = append(summaries, *entry)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].LastMessage.CreatedAt.After(summaries[j].LastMessage.CreatedAt)
	})
	return summaries, nil
}
