// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package keychain

import (
	"errors"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/require"
)

func TestManager_SaveLoadClear(t *testing.T) {
	m := FromKeyring(keyring.NewArrayKeyring(nil))

	_, err := m.LoadAccessToken()
	require.ErrorIs(t, err, ErrNoToken)

	require.NoError(t, m.SaveAuthTokens("access-1", "refresh-1"))

	access, err := m.LoadAccessToken()
	require.NoError(t, err)
	require.Equal(t, "access-1", access)

	refresh, err := m.LoadRefreshToken()
	require.NoError(t, err)
	require.Equal(t, "refresh-1", refresh)

	require.NoError(t, m.ClearAuth())
	_, err = m.LoadAccessToken()
	require.ErrorIs(t, err, ErrNoToken)
	_, err = m.LoadRefreshToken()
	require.ErrorIs(t, err, ErrNoToken)
}

func TestManager_SaveSkipsEmpty(t *testing.T) {
	m := FromKeyring(keyring.NewArrayKeyring(nil))

	require.NoError(t, m.SaveAuthTokens("a1", "r1"))
	require.NoError(t, m.SaveAuthTokens("a2", ""))

	access, _ := m.LoadAccessToken()
	refresh, _ := m.LoadRefreshToken()
	require.Equal(t, "a2", access)
	require.Equal(t, "r1", refresh)
}

func TestManager_ClearAuthWhenEmpty(t *testing.T) {
	m := FromKeyring(keyring.NewArrayKeyring(nil))
	require.NoError(t, m.ClearAuth())
}

type failingRing struct {
	keyring.Keyring
}

func (failingRing) Remove(string) error { return errors.New("locked") }

func TestManager_ClearAuthReportsBackendErrors(t *testing.T) {
	m := FromKeyring(failingRing{Keyring: keyring.NewArrayKeyring(nil)})
	require.ErrorContains(t, m.ClearAuth(), "locked")
}

func TestNewManager_FileBackend(t *testing.T) {
	m, err := NewManager(Options{
		Backends:     []string{string(keyring.FileBackend)},
		FileDir:      t.TempDir(),
		FilePassword: "test",
	})
	require.NoError(t, err)

	require.NoError(t, m.SaveAuthTokens("file-access", ""))
	access, err := m.LoadAccessToken()
	require.NoError(t, err)
	require.Equal(t, "file-access", access)
	require.NoError(t, m.ClearAuth())
}
