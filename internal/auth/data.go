// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import "sync"

// State is the authentication flag's position.
type State int

const (
	Anonymous State = iota
	Authenticated
)

func (s State) String() string {
	if s == Authenticated {
		return "authenticated"
	}
	return "anonymous"
}

// Snapshot is a point-in-time copy of Data.
type Snapshot struct {
	IsAuthenticated bool
	UserName        string
}

// Data is the process-wide authentication flag. Only Client writes it;
// everyone else observes through the exported readers.
type Data struct {
	mu            sync.RWMutex
	authenticated bool
	userName      string
}

// IsAuthenticated reports whether the last completed login succeeded and no
// logout has completed since.
func (d *Data) IsAuthenticated() bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.authenticated
}

// UserName returns the signed-in user, empty when anonymous.
func (d *Data) UserName() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.userName
}

// State returns the flag as a State.
func (d *Data) State() State {
	if d.IsAuthenticated() {
		return Authenticated
	}
	return Anonymous
}

// Snapshot returns both fields read under one lock.
func (d *Data) Snapshot() Snapshot {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return Snapshot{IsAuthenticated: d.authenticated, UserName: d.userName}
}

func (d *Data) signIn(userName string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.authenticated = true
	d.userName = userName
}

func (d *Data) signOut() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.authenticated = false
	d.userName = ""
}
