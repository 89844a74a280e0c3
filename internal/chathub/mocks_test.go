package chathub_test

import (
	"encoding/json"
	"testing"

	"travelmatch/backend/internal/models"

	"github.com/stretchr/testify/mock"
)

// MockClient is a test double for the chathub.Client interface. Delivered
// events land in RecvChannel for assertions.
type MockClient struct {
	connID      string
	userID      string
	closed      bool
	RecvChannel chan models.EventEnvelope
}

func newMockClient(connID, userID string) *MockClient {
	return &MockClient{
		connID:      connID,
		userID:      userID,
		RecvChannel: make(chan models.EventEnvelope, 10), // Buffered to prevent blocking in tests
	}
}

func (c *MockClient) ConnectionID() string { return c.connID }
func (c *MockClient) UserID() string       { return c.userID }

func (c *MockClient) Deliver(env models.EventEnvelope) bool {
	if c.closed {
		return false
	}
	select {
	case c.RecvChannel <- env:
		return true
	default:
		return false
	}
}

func (c *MockClient) Run() {}

func (c *MockClient) Close() { c.closed = true }

// DrainEvents empties the receive channel for assertions.
func (c *MockClient) DrainEvents() []models.EventEnvelope {
	var events []models.EventEnvelope
	for {
		select {
		case env := <-c.RecvChannel:
			events = append(events, env)
		default:
			return events
		}
	}
}

// MockMessageService is a testify mock of the messaging slice the engine uses.
type MockMessageService struct {
	mock.Mock
}

func (m *MockMessageService) Send(senderID, receiverID, content string, matchID *string) (*models.MessageView, error) {
	args := m.Called(senderID, receiverID, content, matchID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.MessageView), args.Error(1)
}

func (m *MockMessageService) MarkRead(messageIDs []string, actingUserID string) error {
	args := m.Called(messageIDs, actingUserID)
	return args.Error(0)
}

// MockPresenceStore records last-seen writes.
type MockPresenceStore struct {
	mock.Mock
}

func (m *MockPresenceStore) SetLastSeen(userID string) error {
	args := m.Called(userID)
	return args.Error(0)
}

// rawEvent builds the wire form of an event for Dispatch.
func rawEvent(t *testing.T, event string, payload interface{}) []byte {
	t.Helper()
	env := models.EventEnvelope{Event: event}
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		env.Data = data
	}
	raw, err := json.Marshal(env)
	if err != nil {
		t.Fatalf("marshal envelope: %v", err)
	}
	return raw
}
