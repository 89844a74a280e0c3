package match_test

import (
	"time"

	"travelmatch/backend/internal/models"
	"travelmatch/backend/internal/storage"

	"github.com/stretchr/testify/mock"
)

// MockStorage is a testify mock of the storage.Storage interface.
type MockStorage struct {
	mock.Mock
}

var _ storage.Storage = (*MockStorage)(nil)

// Match operations

func (m *MockStorage) CreateMatch(mt *models.Match) error {
	args := m.Called(mt)
	return args.Error(0)
}

func (m *MockStorage) SaveMatch(mt *models.Match) error {
	args := m.Called(mt)
	return args.Error(0)
}

func (m *MockStorage) DeleteMatch(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockStorage) GetMatchByID(id string) (*models.Match, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockStorage) FindMatchForPair(userA, userB string, travelPlanID *string) (*models.Match, error) {
	args := m.Called(userA, userB, travelPlanID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockStorage) FindAcceptedMatchBetween(userA, userB string) (*models.Match, error) {
	args := m.Called(userA, userB)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Match), args.Error(1)
}

func (m *MockStorage) ListMatches(userID, direction string, status *models.MatchStatus, page, pageSize int) ([]models.Match, int64, error) {
	args := m.Called(userID, direction, status, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Match), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ListConnectedUserIDs(userID string) ([]string, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// Message operations

func (m *MockStorage) CreateMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) SaveMessage(msg *models.Message) error {
	args := m.Called(msg)
	return args.Error(0)
}

func (m *MockStorage) GetMessageByID(id string) (*models.Message, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Message), args.Error(1)
}

func (m *MockStorage) GetConversationPage(userA, userB string, page, pageSize int) ([]models.Message, int64, error) {
	args := m.Called(userA, userB, page, pageSize)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.Message), args.Get(1).(int64), args.Error(2)
}

func (m *MockStorage) ListMessagesInvolving(userID string) ([]models.Message, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

func (m *MockStorage) MarkMessagesRead(ids []string, receiverID string) error {
	args := m.Called(ids, receiverID)
	return args.Error(0)
}

// Collaborator mirrors

func (m *MockStorage) GetUser(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockStorage) ListCandidateUsers(excludeIDs []string) ([]models.User, error) {
	args := m.Called(excludeIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.User), args.Error(1)
}

func (m *MockStorage) GetTravelPlan(id string) (*models.TravelPlan, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.TravelPlan), args.Error(1)
}

func (m *MockStorage) ListTravelPlans(ownerIDs []string) ([]models.TravelPlan, error) {
	args := m.Called(ownerIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.TravelPlan), args.Error(1)
}

// Redis-backed ephemera

func (m *MockStorage) SetLastSeen(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

func (m *MockStorage) GetLastSeen(userID string) (*time.Time, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*time.Time), args.Error(1)
}

func (m *MockStorage) CacheSuggestions(userID string, payload []byte) error {
	args := m.Called(userID, payload)
	return args.Error(0)
}

func (m *MockStorage) GetCachedSuggestions(userID string) ([]byte, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

func (m *MockStorage) InvalidateSuggestions(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}
