// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package backend

import (
	"context"
	"encoding/json"
	"net/url"

	autherrors "hawk/cli/internal/errors"
)

// TokenResponse is the token endpoint's success body.
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type,omitempty"`
	ExpiresIn    int64  `json:"expires_in,omitempty"`
	UserName     string `json:"userName"`
	Issued       string `json:".issued"`
	Expires      string `json:".expires"`
}

// PasswordGrantForm builds the token request body.
//
// With escape=false the values are concatenated verbatim, which is what the
// server has always received: a password containing '&', '=' or '+' arrives
// mangled. escape=true encodes them properly via url.Values.
func PasswordGrantForm(username, password string, escape bool) string {
	if escape {
		v := url.Values{}
		v.Set("grant_type", "password")
		v.Set("username", username)
		v.Set("password", password)
		return v.Encode()
	}
	return "grant_type=password&username=" + username + "&password=" + password
}

// RequestToken posts form to the token endpoint.
func (h *HTTP) RequestToken(ctx context.Context, form string) (*TokenResponse, error) {
	resp, err := h.post(ctx, "token", h.endpoints.Token, "application/x-www-form-urlencoded", form)
	if err != nil {
		return nil, err
	}

	var out TokenResponse
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return nil, autherrors.Wrap(autherrors.Decode, "token response", err)
	}
	return &out, nil
}
