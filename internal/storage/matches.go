package storage

import (
	"errors"
	"log"

	"travelmatch/backend/internal/models"

	"gorm.io/gorm"
)

// CreateMatch inserts a new match row.
func (s *Service) CreateMatch(m *models.Match) error {
	if err := s.DB.Create(m).Error; err != nil {
		log.Printf("ERROR: Failed to create match %s -> %s: %v", m.InitiatorID, m.ReceiverID, err)
		return err
	}
	return nil
}

// SaveMatch persists an updated match row (GORM stamps UpdatedAt).
func (s *Service) SaveMatch(m *models.Match) error {
	return s.DB.Save(m).Error
}

// DeleteMatch hard-deletes a match row. Messages that referenced it are kept.
func (s *Service) DeleteMatch(id string) error {
	return s.DB.Delete(&models.Match{}, "id = ?", id).Error
}

// GetMatchByID returns the match, or nil without error when missing.
func (s *Service) GetMatchByID(id string) (*models.Match, error) {
	var m models.Match
	err := s.DB.First(&m, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindMatchForPair looks up a match between the two users (either direction)
// in the given travel-plan bucket, regardless of status. A nil travelPlanID
// matches only plan-less rows: the NULL bucket is its own bucket.
func (s *Service) FindMatchForPair(userA, userB string, travelPlanID *string) (*models.Match, error) {
	q := s.DB.Where(
		"((initiator_id = ? AND receiver_id = ?) OR (initiator_id = ? AND receiver_id = ?))",
		userA, userB, userB, userA,
	)
	if travelPlanID == nil {
		q = q.Where("travel_plan_id IS NULL")
	} else {
		q = q.Where("travel_plan_id = ?", *travelPlanID)
	}

	var m models.Match
	err := q.First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindAcceptedMatchBetween returns any accepted match connecting the two
// users, in either direction and any plan bucket.
func (s *Service) FindAcceptedMatchBetween(userA, userB string) (*models.Match, error) {
	var m models.Match
	err := s.DB.Where(
		"((initiator_id = ? AND receiver_id = ?) OR (initiator_id = ? AND receiver_id = ?)) AND status = ?",
		userA, userB, userB, userA, models.MatchAccepted,
	).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// ListMatches returns one page of matches where the user is the initiator
// (direction "sent") or the receiver (direction "received"), newest first,
// plus the total count for the filter.
func (s *Service) ListMatches(userID, direction string, status *models.MatchStatus, page, pageSize int) ([]models.Match, int64, error) {
	q := s.DB.Model(&models.Match{})
	if direction == "sent" {
		q = q.Where("initiator_id = ?", userID)
	} else {
		q = q.Where("receiver_id = ?", userID)
	}
	if status != nil {
		q = q.Where("status = ?", *status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var matches []models.Match
	err := q.Order("created_at DESC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&matches).Error
	if err != nil {
		return nil, 0, err
	}
	return matches, total, nil
}

// ListConnectedUserIDs returns every user connected to userID by a match of
// any status. Used to exclude existing connections from suggestions.
func (s *Service) ListConnectedUserIDs(userID string) ([]string, error) {
	var matches []models.Match
	err := s.DB.Where("initiator_id = ? OR receiver_id = ?", userID, userID).
		Find(&matches).Error
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{}, len(matches))
	ids := make([]string, 0, len(matches))
	for _, m := range matches {
		other := m.CounterpartOf(userID)
		if _, ok := seen[other]; ok {
			continue
		}
		seen[other] = struct{}{}
		ids = append(ids, other)
	}
	return ids, nil
}
