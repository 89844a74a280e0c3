// Package chathub is the real-time delivery engine: it tracks which users
// are reachable through the presence Registry, authorizes live-connection
// events via the messaging service, and fans persisted messages out to the
// relevant connections. Delivery is at-most-once and best-effort; the
// durable message store is the source of truth, an offline receiver simply
// catches up through the conversation endpoints.
package chathub

import (
	"encoding/json"
	"fmt"
	"log"

	"travelmatch/backend/internal/models"
	"travelmatch/backend/pkg/apperrors"
)

// MessageService is the slice of the messaging service the engine needs.
type MessageService interface {
	Send(senderID, receiverID, content string, matchID *string) (*models.MessageView, error)
	MarkRead(messageIDs []string, actingUserID string) error
}

// PresenceStore records advisory last-seen timestamps. Failures are logged
// and ignored; the store is never consulted for delivery decisions.
type PresenceStore interface {
	SetLastSeen(userID string) error
}

// Manager dispatches live-connection events. Each connection's read pump
// calls Dispatch sequentially for its own frames, so per-connection ordering
// holds; different connections dispatch concurrently and only meet at the
// Registry and the stores.
type Manager struct {
	Registry *Registry
	Messages MessageService
	Presence PresenceStore
}

// NewManager Constructor
func NewManager(messages MessageService, presence PresenceStore) *Manager {
	return &Manager{
		Registry: NewRegistry(),
		Messages: messages,
		Presence: presence,
	}
}

// Dispatch validates the raw frame and routes it to the matching handler.
// A handler failure never terminates the connection: send_message failures
// are reported back on the same connection as message_error, everything
// else is logged and dropped.
func (m *Manager) Dispatch(c Client, raw []byte) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("PANIC in event handler for %s: %v", c.ConnectionID(), r)
			m.deliverError(c, apperrors.Internal("internal error", fmt.Errorf("%v", r)))
		}
	}()

	var env models.EventEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("Error decoding event from %s: %v", c.ConnectionID(), err)
		return
	}

	switch env.Event {
	case models.EventJoin:
		m.handleJoin(c)
	case models.EventSendMessage:
		m.handleSendMessage(c, env.Data)
	case models.EventTyping:
		m.handleTyping(c, env.Data)
	case models.EventMarkAsRead:
		m.handleMarkAsRead(c, env.Data)
	default:
		log.Printf("Unknown event %q from %s", env.Event, c.ConnectionID())
	}
}

// handleJoin registers the connection in the presence registry under the
// identity verified at upgrade time. Any user ID a client puts in the join
// payload is ignored: connections cannot claim to be someone else. A
// previous connection for the same user is superseded and closed.
func (m *Manager) handleJoin(c Client) {
	if replaced := m.Registry.Register(c); replaced != nil {
		replaced.Close()
	}
	m.recordLastSeen(c.UserID())
}

func (m *Manager) handleSendMessage(c Client, data json.RawMessage) {
	senderID, ok := m.Registry.UserFor(c.ConnectionID())
	if !ok {
		m.deliverError(c, apperrors.Unauthorized("join before sending messages"))
		return
	}

	var p models.SendMessagePayload
	if err := json.Unmarshal(data, &p); err != nil || p.ReceiverID == "" {
		m.deliverError(c, apperrors.InvalidRequest("malformed send_message payload"))
		return
	}

	// Persist first; pushes are attempted only after the write succeeded.
	view, err := m.Messages.Send(senderID, p.ReceiverID, p.Content, p.MatchID)
	if err != nil {
		m.deliverError(c, err)
		return
	}

	c.Deliver(models.NewEvent(models.EventMessageSent, view))

	push := models.NewEvent(models.EventNewMessage, view)
	if sender, ok := m.Registry.ClientFor(senderID); ok {
		sender.Deliver(push)
	}
	if receiver, ok := m.Registry.ClientFor(p.ReceiverID); ok {
		receiver.Deliver(push)
	}
}

// handleTyping forwards the signal to the receiver's live connection, if
// any. Nothing is persisted and an unresolvable sender is silently dropped.
func (m *Manager) handleTyping(c Client, data json.RawMessage) {
	senderID, ok := m.Registry.UserFor(c.ConnectionID())
	if !ok {
		return
	}

	var p models.TypingPayload
	if err := json.Unmarshal(data, &p); err != nil || p.ReceiverID == "" {
		return
	}

	if receiver, ok := m.Registry.ClientFor(p.ReceiverID); ok {
		receiver.Deliver(models.NewEvent(models.EventUserTyping, models.TypingNotice{
			UserID:   senderID,
			IsTyping: p.IsTyping,
		}))
	}
}

// handleMarkAsRead persists the read flags for the caller. The original
// sender is not notified.
func (m *Manager) handleMarkAsRead(c Client, data json.RawMessage) {
	userID, ok := m.Registry.UserFor(c.ConnectionID())
	if !ok {
		return
	}

	var p models.MarkAsReadPayload
	if err := json.Unmarshal(data, &p); err != nil || len(p.MessageIDs) == 0 {
		return
	}

	if err := m.Messages.MarkRead(p.MessageIDs, userID); err != nil {
		log.Printf("Error marking messages read for %s: %v", userID, err)
	}
}

// Disconnect removes the presence entry for this connection. Keyed by
// connection ID, so a stale disconnect from a superseded connection leaves
// the user's current registration untouched.
func (m *Manager) Disconnect(c Client) {
	if userID, removed := m.Registry.Remove(c.ConnectionID()); removed {
		m.recordLastSeen(userID)
	}
}

func (m *Manager) deliverError(c Client, err error) {
	c.Deliver(models.NewEvent(models.EventMessageError, models.ErrorPayload{
		Code:    string(apperrors.CodeOf(err)),
		Message: err.Error(),
	}))
}

func (m *Manager) recordLastSeen(userID string) {
	if m.Presence == nil {
		return
	}
	if err := m.Presence.SetLastSeen(userID); err != nil {
		log.Printf("WARNING: Failed to record last-seen for %s: %v", userID, err)
	}
}
