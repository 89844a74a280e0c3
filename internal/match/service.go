// Package match implements the connection-request lifecycle: creation,
// listing, the receiver-only pending->accepted/rejected transition, deletion
// and candidate suggestions. An accepted match is what later authorizes the
// two users to message each other.
package match

import (
	"log"

	"travelmatch/backend/internal/config"
	"travelmatch/backend/internal/models"
	"travelmatch/backend/internal/storage"
	"travelmatch/backend/pkg/apperrors"
)

// Directions accepted by List.
const (
	DirectionSent     = "sent"
	DirectionReceived = "received"
)

// Service enforces the match state machine on top of Storage.
type Service struct {
	Storage storage.Storage
}

// NewService Constructor
func NewService(s storage.Storage) *Service {
	return &Service{Storage: s}
}

// Create opens a pending match from initiator to receiver, optionally scoped
// to a travel plan. The receiver must exist and be active; a plan, when
// given, must belong to the receiver or be public; and no match of any
// status may already connect the pair in the same plan bucket.
func (s *Service) Create(initiatorID, receiverID string, travelPlanID *string) (*models.Match, error) {
	if initiatorID == receiverID {
		return nil, apperrors.InvalidRequest("cannot send a match request to yourself")
	}

	receiver, err := s.Storage.GetUser(receiverID)
	if err != nil {
		return nil, apperrors.Internal("failed to look up receiver", err)
	}
	if receiver == nil || !receiver.IsActive {
		return nil, apperrors.NotFound("receiver not found")
	}

	if travelPlanID != nil {
		plan, err := s.Storage.GetTravelPlan(*travelPlanID)
		if err != nil {
			return nil, apperrors.Internal("failed to look up travel plan", err)
		}
		if plan == nil || (plan.OwnerID != receiverID && !plan.IsPublic) {
			return nil, apperrors.NotFound("travel plan not found")
		}
	}

	existing, err := s.Storage.FindMatchForPair(initiatorID, receiverID, travelPlanID)
	if err != nil {
		return nil, apperrors.Internal("failed to check for existing match", err)
	}
	if existing != nil {
		return nil, apperrors.Conflict("a match request already exists between these users")
	}

	m := &models.Match{
		InitiatorID:  initiatorID,
		ReceiverID:   receiverID,
		TravelPlanID: travelPlanID,
		Status:       models.MatchPending,
	}
	if err := s.Storage.CreateMatch(m); err != nil {
		return nil, apperrors.Internal("failed to create match", err)
	}

	s.invalidateSuggestions(initiatorID, receiverID)
	return m, nil
}

// List returns one page of the user's matches by direction, newest first.
func (s *Service) List(userID, direction string, status *models.MatchStatus, page, pageSize int) ([]models.Match, int64, error) {
	if direction != DirectionSent && direction != DirectionReceived {
		return nil, 0, apperrors.InvalidRequest("direction must be 'sent' or 'received'")
	}
	page, pageSize = clampPage(page, pageSize)

	matches, total, err := s.Storage.ListMatches(userID, direction, status, page, pageSize)
	if err != nil {
		return nil, 0, apperrors.Internal("failed to list matches", err)
	}
	return matches, total, nil
}

// Transition executes the receiver-only pending->accepted/rejected step.
// A missing match, a caller other than the receiver, and a match already in
// a terminal state are indistinguishable to the caller: all are NotFound.
func (s *Service) Transition(matchID, actingUserID string, newStatus models.MatchStatus) (*models.Match, error) {
	if newStatus != models.MatchAccepted && newStatus != models.MatchRejected {
		return nil, apperrors.InvalidRequest("status must be 'accepted' or 'rejected'")
	}

	m, err := s.Storage.GetMatchByID(matchID)
	if err != nil {
		return nil, apperrors.Internal("failed to load match", err)
	}
	if m == nil || m.ReceiverID != actingUserID || m.IsTerminal() {
		return nil, apperrors.NotFound("no pending match request found")
	}

	m.Status = newStatus
	if err := s.Storage.SaveMatch(m); err != nil {
		return nil, apperrors.Internal("failed to update match", err)
	}
	return m, nil
}

// Delete hard-deletes a match. Either participant may do this at any point
// in the lifecycle; authorization derived from the match dies with it, while
// already-persisted messages are kept.
func (s *Service) Delete(matchID, actingUserID string) error {
	m, err := s.Storage.GetMatchByID(matchID)
	if err != nil {
		return apperrors.Internal("failed to load match", err)
	}
	if m == nil {
		return apperrors.NotFound("match not found")
	}
	if !m.Involves(actingUserID) {
		return apperrors.Forbidden("only a participant may delete a match")
	}

	if err := s.Storage.DeleteMatch(matchID); err != nil {
		return apperrors.Internal("failed to delete match", err)
	}

	s.invalidateSuggestions(m.InitiatorID, m.ReceiverID)
	return nil
}

// invalidateSuggestions drops cached suggestion lists for both participants.
// Cache trouble is logged, never surfaced: the cache is advisory.
func (s *Service) invalidateSuggestions(userIDs ...string) {
	for _, id := range userIDs {
		if err := s.Storage.InvalidateSuggestions(id); err != nil {
			log.Printf("WARNING: Failed to invalidate suggestion cache for %s: %v", id, err)
		}
	}
}

func clampPage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = config.DefaultPageSize
	}
	if pageSize > config.MaxPageSize {
		pageSize = config.MaxPageSize
	}
	return page, pageSize
}
