// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"net/http"
	"time"
)

// Endpoints holds absolute endpoint URLs.
type Endpoints struct {
	Token  string // e.g. "http://localhost:8080/Token"
	Logout string // e.g. "http://localhost:8080/auth/logout"
}

// Options tunes the HTTP implementation.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	// Client overrides the underlying HTTP client; Timeout is ignored when set.
	Client *http.Client
}

// New creates a backend API implementation talking to the given endpoints.
func New(endpoints Endpoints, opts Options) API {
	return newHTTP(endpoints, opts)
}
