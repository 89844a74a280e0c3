package storage

import (
	"context"
	"errors"
	"time"

	"travelmatch/backend/internal/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Storage is the single persistence boundary of the core. PostgreSQL (via
// GORM) owns the durable match and message records plus the read-only
// mirrors of users and travel plans; Redis carries the ephemeral adjacent
// state (last-seen timestamps, suggestion cache).
type Storage interface {
	// Matches
	CreateMatch(m *models.Match) error
	SaveMatch(m *models.Match) error
	DeleteMatch(id string) error
	GetMatchByID(id string) (*models.Match, error)
	FindMatchForPair(userA, userB string, travelPlanID *string) (*models.Match, error)
	FindAcceptedMatchBetween(userA, userB string) (*models.Match, error)
	ListMatches(userID, direction string, status *models.MatchStatus, page, pageSize int) ([]models.Match, int64, error)
	ListConnectedUserIDs(userID string) ([]string, error)

	// Messages
	CreateMessage(msg *models.Message) error
	SaveMessage(msg *models.Message) error
	GetMessageByID(id string) (*models.Message, error)
	GetConversationPage(userA, userB string, page, pageSize int) ([]models.Message, int64, error)
	ListMessagesInvolving(userID string) ([]models.Message, error)
	MarkMessagesRead(ids []string, receiverID string) error

	// External collaborator mirrors (read-only)
	GetUser(id string) (*models.User, error)
	ListCandidateUsers(excludeIDs []string) ([]models.User, error)
	GetTravelPlan(id string) (*models.TravelPlan, error)
	ListTravelPlans(ownerIDs []string) ([]models.TravelPlan, error)

	// Redis-backed ephemera
	SetLastSeen(userID string) error
	GetLastSeen(userID string) (*time.Time, error)
	CacheSuggestions(userID string, payload []byte) error
	GetCachedSuggestions(userID string) ([]byte, error)
	InvalidateSuggestions(userID string) error
}

// Service implements Storage on top of GORM and go-redis.
type Service struct {
	DB    *gorm.DB
	Redis *redis.Client
	Ctx   context.Context
}

// NewStorageService Constructor
func NewStorageService(db *gorm.DB, rdb *redis.Client) *Service {
	return &Service{
		DB:    db,
		Redis: rdb,
		Ctx:   context.Background(),
	}
}

var _ Storage = (*Service)(nil)

// GetUser returns the user mirror row, or nil without error when missing.
func (s *Service) GetUser(id string) (*models.User, error) {
	var user models.User
	err := s.DB.First(&user, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ListCandidateUsers returns active, verified users excluding the given IDs.
func (s *Service) ListCandidateUsers(excludeIDs []string) ([]models.User, error) {
	var users []models.User
	q := s.DB.Where("is_active = ? AND is_verified = ?", true, true)
	if len(excludeIDs) > 0 {
		q = q.Where("id NOT IN ?", excludeIDs)
	}
	if err := q.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetTravelPlan returns the plan mirror row, or nil without error when missing.
func (s *Service) GetTravelPlan(id string) (*models.TravelPlan, error) {
	var plan models.TravelPlan
	err := s.DB.First(&plan, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &plan, nil
}

// ListTravelPlans returns all plans owned by any of the given users.
func (s *Service) ListTravelPlans(ownerIDs []string) ([]models.TravelPlan, error) {
	var plans []models.TravelPlan
	if len(ownerIDs) == 0 {
		return plans, nil
	}
	if err := s.DB.Where("owner_id IN ?", ownerIDs).Find(&plans).Error; err != nil {
		return nil, err
	}
	return plans, nil
}
