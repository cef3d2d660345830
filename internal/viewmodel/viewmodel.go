// Package viewmodel holds the client-side picture of the signed-in user that
// commands render from.
package viewmodel

import "sync"

// User is the identity shown by the client.
type User struct {
	Username string `json:"username" yaml:"username"`
}

// Model is safe for concurrent use.
type Model struct {
	mu   sync.RWMutex
	user User
}

// New returns an empty model.
func New() *Model {
	return &Model{}
}

// SetUser replaces the current user.
func (m *Model) SetUser(u User) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = u
}

// User returns a copy of the current user.
func (m *Model) User() User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Username returns the current username, empty when nobody is signed in.
func (m *Model) Username() string {
	return m.User().Username
}

// Reset flushes the model back to its empty shape.
func (m *Model) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.user = User{}
}
