// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package session

import (
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/99designs/keyring"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"hawk/cli/internal/keychain"
	"hawk/cli/internal/storage"
)

func newStore(t *testing.T) (*Store, *keychain.Manager, storage.Local) {
	t.Helper()
	km := keychain.FromKeyring(keyring.NewArrayKeyring(nil))
	local := storage.NewFile(filepath.Join(t.TempDir(), "storage.json"))
	return NewStore(km, local), km, local
}

var sample = Info{
	AccessToken:  "at",
	RefreshToken: "rt",
	Username:     "alice",
	Email:        "alice",
	Issued:       "Mon, 01 Jan 2024 10:00:00 GMT",
	Expires:      "Mon, 01 Jan 2024 10:30:00 GMT",
}

func TestStore_SetTokenInfo(t *testing.T) {
	ctx := context.Background()
	s, km, local := newStore(t)

	require.NoError(t, s.SetTokenInfo(ctx, sample))

	access, err := km.LoadAccessToken()
	require.NoError(t, err)
	require.Equal(t, "at", access)

	raw, err := local.Get(ctx, StorageKey)
	require.NoError(t, err)
	require.NotContains(t, raw, `"at"`)
	var stored map[string]string
	require.NoError(t, json.Unmarshal([]byte(raw), &stored))
	require.Equal(t, "alice", stored["username"])
	require.Equal(t, "alice", stored["email"])

	got, ok, err := s.TokenInfo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sample, got)
}

func TestStore_TokenInfoFromPersistedState(t *testing.T) {
	ctx := context.Background()
	s, km, local := newStore(t)
	require.NoError(t, s.SetTokenInfo(ctx, sample))

	// A fresh process sees the same session.
	fresh := NewStore(km, local)
	got, ok, err := fresh.TokenInfo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, sample, got)
}

func TestStore_TokenInfoWithoutToken(t *testing.T) {
	ctx := context.Background()
	s, km, local := newStore(t)
	require.NoError(t, s.SetTokenInfo(ctx, sample))
	require.NoError(t, km.ClearAuth())

	_, ok, err := NewStore(km, local).TokenInfo(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestStore_SetTokenInfoDropsStaleRefreshToken(t *testing.T) {
	ctx := context.Background()
	s, km, _ := newStore(t)
	require.NoError(t, s.SetTokenInfo(ctx, sample))

	next := sample
	next.AccessToken = "at2"
	next.RefreshToken = ""
	require.NoError(t, s.SetTokenInfo(ctx, next))

	_, err := km.LoadRefreshToken()
	require.ErrorIs(t, err, keychain.ErrNoToken)
	got, ok, err := s.TokenInfo(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "at2", got.AccessToken)
}

type failingSet struct {
	storage.Local
}

func (failingSet) Set(context.Context, string, string) error {
	return errors.New("disk full")
}

func TestStore_SetTokenInfoRollsBackTokens(t *testing.T) {
	ctx := context.Background()
	km := keychain.FromKeyring(keyring.NewArrayKeyring(nil))
	local := storage.NewFile(filepath.Join(t.TempDir(), "storage.json"))
	s := NewStore(km, failingSet{Local: local})

	err := s.SetTokenInfo(ctx, sample)
	require.ErrorContains(t, err, "disk full")

	_, err = km.LoadAccessToken()
	require.ErrorIs(t, err, keychain.ErrNoToken)
	_, err = km.LoadRefreshToken()
	require.ErrorIs(t, err, keychain.ErrNoToken)
}

func TestStore_EmptyAndClear(t *testing.T) {
	ctx := context.Background()
	s, _, local := newStore(t)

	_, ok, err := s.TokenInfo(ctx)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.SetTokenInfo(ctx, sample))
	require.NoError(t, s.Clear(ctx))

	_, err = local.Get(ctx, StorageKey)
	require.ErrorIs(t, err, storage.ErrNotFound)
	_, ok, err = s.TokenInfo(ctx)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestParseClaims(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "alice",
		"iss": "hawk",
		"exp": exp.Unix(),
	})
	signed, err := tok.SignedString([]byte("k"))
	require.NoError(t, err)

	c, err := ParseClaims(signed)
	require.NoError(t, err)
	require.Equal(t, "alice", c.Subject)
	require.Equal(t, "hawk", c.Issuer)
	require.True(t, exp.Equal(c.ExpiresAt))
	require.False(t, c.Expired(time.Now()))
	require.True(t, c.Expired(exp.Add(time.Second)))

	_, err = ParseClaims("opaque-reference-token")
	require.ErrorIs(t, err, ErrOpaqueToken)
}
