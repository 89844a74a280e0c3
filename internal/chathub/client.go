package chathub

import "travelmatch/backend/internal/models"

// Client is the interface for one live connection. It abstracts the
// underlying transport so the Manager and Registry can treat real websocket
// connections and test doubles uniformly.
type Client interface {
	// ConnectionID returns the unique ID of this connection. Presence
	// removal is keyed by this, never by user ID.
	ConnectionID() string

	// UserID returns the verified identity bound to the connection at
	// upgrade time.
	UserID() string

	// Deliver enqueues an event for the client, best-effort. It reports
	// false when the client is gone or too slow to keep up; the caller
	// never retries.
	Deliver(models.EventEnvelope) bool

	// Run starts the client's read and write pumps.
	Run()

	// Close shuts the connection down. Safe to call more than once.
	Close()
}
