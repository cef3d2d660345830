// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package router

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/pterm/pterm"
	"github.com/stretchr/testify/require"

	"hawk/cli/internal/storage"
)

func TestRouter_NavigateTo(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	ctx := context.Background()
	local := storage.NewFile(filepath.Join(t.TempDir(), "s.json"))
	var out bytes.Buffer
	r := New(local, &out)

	cur, err := r.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, Unauthenticated, cur)

	require.NoError(t, r.NavigateTo(ctx, Landing))
	require.Contains(t, out.String(), "Pipelines are available")

	cur, err = r.Current(ctx)
	require.NoError(t, err)
	require.Equal(t, Landing, cur)

	// The route survives into a new process.
	cur, err = New(local, &out).Current(ctx)
	require.NoError(t, err)
	require.Equal(t, Landing, cur)
}

func TestRouter_UnknownRouteAndHint(t *testing.T) {
	pterm.DisableStyling()
	t.Cleanup(pterm.EnableStyling)

	ctx := context.Background()
	var out bytes.Buffer
	r := New(storage.NewFile(filepath.Join(t.TempDir(), "s.json")), &out)

	require.NoError(t, r.NavigateTo(ctx, "index.agents"))
	require.Contains(t, out.String(), "→ index.agents")

	out.Reset()
	r.Hint("index.agents", "Agents view")
	require.NoError(t, r.NavigateTo(ctx, "index.agents"))
	require.Contains(t, out.String(), "Agents view")
}
