// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package session holds the token and identity data of the signed-in user.
//
// Secrets (access and refresh token) are stored in the OS keychain; the rest
// of the record is kept as JSON in local storage under the "tokenInfo" key, so
// wiping local storage on logout drops it together with everything else.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"hawk/cli/internal/keychain"
	"hawk/cli/internal/storage"
)

// StorageKey is the local storage key for the non-secret part of Info.
const StorageKey = "tokenInfo"

// Info is the session produced by a successful login.
type Info struct {
	AccessToken  string `json:"-" yaml:"-"`
	RefreshToken string `json:"-" yaml:"-"`
	Username     string `json:"username" yaml:"username"`
	// Email carries the same value as Username: the token endpoint returns no
	// separate address.
	Email   string `json:"email" yaml:"email"`
	Issued  string `json:"issued" yaml:"issued"`
	Expires string `json:"expires" yaml:"expires"`
}

// Tokens is the subset of keychain.Manager the store needs.
type Tokens interface {
	SaveAuthTokens(accessToken, refreshToken string) error
	LoadAccessToken() (string, error)
	LoadRefreshToken() (string, error)
	ClearAuth() error
}

// Store publishes and reads the current session.
type Store struct {
	mu     sync.Mutex
	tokens Tokens
	local  storage.Local
}

// NewStore returns a store writing tokens to tokens and metadata to local.
func NewStore(tokens Tokens, local storage.Local) *Store {
	return &Store{tokens: tokens, local: local}
}

// SetTokenInfo replaces the current session.
func (s *Store) SetTokenInfo(ctx context.Context, info Info) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	// A login without a refresh token must not inherit the previous one.
	if err := s.tokens.ClearAuth(); err != nil {
		return fmt.Errorf("replace tokens: %w", err)
	}
	if err := s.tokens.SaveAuthTokens(info.AccessToken, info.RefreshToken); err != nil {
		return fmt.Errorf("save tokens: %w", err)
	}
	b, err := json.Marshal(info)
	if err != nil {
		return err
	}
	if err := s.local.Set(ctx, StorageKey, string(b)); err != nil {
		// Tokens without their record would outlive a rejected login.
		if rerr := s.tokens.ClearAuth(); rerr != nil {
			return errors.Join(fmt.Errorf("save token info: %w", err), fmt.Errorf("roll back tokens: %w", rerr))
		}
		return fmt.Errorf("save token info: %w", err)
	}
	return nil
}

// TokenInfo reads the current session back from storage and the keychain.
// ok is false when no session is stored or its access token is gone.
func (s *Store) TokenInfo(ctx context.Context) (info Info, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, err := s.local.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return Info{}, false, nil
	}
	if err != nil {
		return Info{}, false, err
	}
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return Info{}, false, fmt.Errorf("decode token info: %w", err)
	}

	info.AccessToken, err = s.tokens.LoadAccessToken()
	if errors.Is(err, keychain.ErrNoToken) {
		return Info{}, false, nil
	}
	if err != nil {
		return Info{}, false, err
	}
	if rt, err := s.tokens.LoadRefreshToken(); err == nil {
		info.RefreshToken = rt
	}
	return info, true, nil
}

// Clear removes the stored record. Tokens are left to the keychain owner.
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.local.Remove(ctx, StorageKey)
}
