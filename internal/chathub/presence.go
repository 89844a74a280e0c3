package chathub

import "sync"

// Registry is the in-process presence map: at most one live connection per
// user. It is the only mutable state shared by every connection, so all
// access goes through this type; the maps are never exposed. Lookups are
// O(1) in both directions and never block on I/O.
//
// State is not persisted anywhere. A process restart starts empty and
// clients re-register on reconnect.
type Registry struct {
	mu     sync.RWMutex
	byConn map[string]Client // connectionID -> client
	byUser map[string]string // userID -> connectionID
}

// NewRegistry Constructor
func NewRegistry() *Registry {
	return &Registry{
		byConn: make(map[string]Client),
		byUser: make(map[string]string),
	}
}

// Register binds the client's user to its connection, replacing any previous
// registration for that user. The superseded client, if any, is returned so
// the caller can close it outside the lock.
func (r *Registry) Register(c Client) Client {
	r.mu.Lock()
	defer r.mu.Unlock()

	var replaced Client
	if oldConnID, ok := r.byUser[c.UserID()]; ok && oldConnID != c.ConnectionID() {
		replaced = r.byConn[oldConnID]
		delete(r.byConn, oldConnID)
	}
	r.byConn[c.ConnectionID()] = c
	r.byUser[c.UserID()] = c.ConnectionID()
	return replaced
}

// Remove drops the registration keyed by connection ID. A connection that
// was already superseded by a newer registration for the same user is no
// longer tracked, so its late disconnect never evicts the current entry.
func (r *Registry) Remove(connectionID string) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, ok := r.byConn[connectionID]
	if !ok {
		return "", false
	}
	delete(r.byConn, connectionID)
	if current, ok := r.byUser[c.UserID()]; ok && current == connectionID {
		delete(r.byUser, c.UserID())
	}
	return c.UserID(), true
}

// ClientFor returns the live client for a user, if one is registered.
func (r *Registry) ClientFor(userID string) (Client, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connID, ok := r.byUser[userID]
	if !ok {
		return nil, false
	}
	c, ok := r.byConn[connID]
	return c, ok
}

// UserFor resolves the user bound to a connection.
func (r *Registry) UserFor(connectionID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.byConn[connectionID]
	if !ok {
		return "", false
	}
	return c.UserID(), true
}

// Online reports whether the user currently has a registered connection.
func (r *Registry) Online(userID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byUser[userID]
	return ok
}

// Count returns the number of registered connections.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byConn)
}
