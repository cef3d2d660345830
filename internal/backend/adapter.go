// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package backend speaks the HawkCD server's authentication wire protocol:
// the OAuth2 password-grant token endpoint and the logout endpoint.
// It defines the API contract the auth client depends on and an HTTP implementation.
package backend

import "context"

// API defines backend operations the auth client depends on.
// Implementations may call real HTTP endpoints or provide fakes for tests.
type API interface {
	// RequestToken posts an already encoded form body to the token endpoint.
	// A non-2xx answer yields an error wrapping *ResponseError with the raw payload.
	RequestToken(ctx context.Context, form string) (*TokenResponse, error)
	// Logout tells the server the given user is leaving.
	Logout(ctx context.Context, username string) (*Response, error)
}
