package models

import "encoding/json"

// Live-connection event names. Client-to-server events carry a payload in
// the envelope's Data field; server-to-client events reuse the same envelope.
const (
	EventJoin        = "join"
	EventSendMessage = "send_message"
	EventTyping      = "typing"
	EventMarkAsRead  = "mark_as_read"

	EventMessageSent  = "message_sent"
	EventNewMessage   = "new_message"
	EventMessageError = "message_error"
	EventUserTyping   = "user_typing"
)

// EventEnvelope is the wire format of every websocket frame: a tagged
// variant whose Data schema depends on Event. Payloads are validated at the
// dispatch boundary before any handler runs.
type EventEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// NewEvent wraps payload into an envelope for delivery. Marshal errors are
// impossible for the payload types used here, so they are swallowed.
func NewEvent(event string, payload interface{}) EventEnvelope {
	data, _ := json.Marshal(payload)
	return EventEnvelope{Event: event, Data: data}
}

// SendMessagePayload is the client request to deliver a chat message.
type SendMessagePayload struct {
	ReceiverID string  `json:"receiverId"`
	Content    string  `json:"content"`
	MatchID    *string `json:"matchId,omitempty"`
}

// TypingPayload signals a typing state change toward one receiver.
type TypingPayload struct {
	ReceiverID string `json:"receiverId"`
	IsTyping   bool   `json:"isTyping"`
}

// MarkAsReadPayload asks the server to flip the read flag on the listed
// messages, for those addressed to the caller.
type MarkAsReadPayload struct {
	MessageIDs []string `json:"messageIds"`
}

// TypingNotice is pushed to the receiver of a typing event.
type TypingNotice struct {
	UserID   string `json:"userId"`
	IsTyping bool   `json:"isTyping"`
}

// ErrorPayload is pushed to the originating connection when an event
// handler fails. The connection itself stays open.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
