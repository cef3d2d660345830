// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
)

// Logout calls POST <logout endpoint> with the username as body.
// The body is the bare username under a JSON content type, exactly as the web
// client has always sent it; the server reads it as a raw string.
func (h *HTTP) Logout(ctx context.Context, username string) (*Response, error) {
	return h.post(ctx, "logout", h.endpoints.Logout, "application/json;charset=utf-8", username)
}
