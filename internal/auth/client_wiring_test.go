// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package auth

import (
	"bytes"
	"context"
	"net/http"
	"path/filepath"
	"testing"

	"github.com/99designs/keyring"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hawk/cli/internal/keychain"
	"hawk/cli/internal/router"
	"hawk/cli/internal/session"
	"hawk/cli/internal/storage"
	"hawk/cli/internal/viewmodel"
)

// TestLoginLogout_RealComponents runs a full session through the production
// keychain, storage, router and session store.
func TestLoginLogout_RealComponents(t *testing.T) {
	ctx := context.Background()
	srv, _ := newServer(t, http.StatusOK, okToken, http.StatusOK)

	dir := t.TempDir()
	local := storage.NewFile(filepath.Join(dir, "storage.json"))
	routes := storage.NewFile(filepath.Join(dir, "route.json"))
	keys := keychain.FromKeyring(keyring.NewArrayKeyring(nil))
	sessions := session.NewStore(keys, local)
	nav := router.New(routes, &bytes.Buffer{})
	vm := viewmodel.New()

	c := New(newAPI(srv.URL), Deps{
		Session:   sessions,
		Tokens:    keys,
		Storage:   local,
		Navigator: nav,
		ViewModel: vm,
	})

	require.NoError(t, wait(t, c.Login(ctx, "alice", "pw")))
	vm.SetUser(viewmodel.User{Username: c.Data().UserName()})

	stored, err := local.Keys(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{session.StorageKey}, stored)

	require.NoError(t, wait(t, c.Logout(ctx)))

	stored, err = local.Keys(ctx)
	require.NoError(t, err)
	assert.Empty(t, stored, "acknowledged logout leaves local storage empty")

	_, err = keys.LoadAccessToken()
	assert.ErrorIs(t, err, keychain.ErrNoToken)
	_, ok, err := sessions.TokenInfo(ctx)
	require.NoError(t, err)
	assert.False(t, ok)

	route, err := nav.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, router.Unauthenticated, route)
	assert.False(t, c.Data().IsAuthenticated())
}
