package models

// ConversationSummary is the derived per-counterpart view of a user's
// message history. It is computed from messages on demand, never stored.
type ConversationSummary struct {
	CounterpartID   string  `json:"counterpartId"`
	CounterpartName string  `json:"counterpartName"`
	LastMessage     Message `json:"lastMessage"`
	// UnreadCount counts unread messages sent by the counterpart to the
	// requesting user.
	UnreadCount int `json:"unreadCount"`
}

// MatchSuggestion is a ranked candidate for a new connection request.
type MatchSuggestion struct {
	UserID          string   `json:"userId"`
	DisplayName     string   `json:"displayName"`
	Score           int      `json:"score"`
	SharedInterests []string `json:"sharedInterests"`
	ReviewCount     int      `json:"reviewCount"`
}
