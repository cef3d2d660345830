// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package router tracks which view the client is on. In a terminal a view is a
// hint printed to the user; the route itself is remembered in a store of its
// own so the next invocation knows where the previous one left off.
//
// The route store must not be the client's local storage: logout wipes local
// storage and then navigates, and the wipe has to leave it empty.
package router

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/pterm/pterm"

	"hawk/cli/internal/storage"
)

// Default routes.
const (
	Landing         = "index.pipelines"
	Unauthenticated = "/authenticate"
)

// StorageKey is the local storage key holding the current route.
const StorageKey = "route"

// Router records navigation.
type Router struct {
	mu      sync.Mutex
	local   storage.Local
	out     io.Writer
	current string
	hints   map[string]string
}

// New returns a router persisting the route to local and printing hints to out
// (os.Stdout when nil).
func New(local storage.Local, out io.Writer) *Router {
	if out == nil {
		out = os.Stdout
	}
	return &Router{
		local: local,
		out:   out,
		hints: map[string]string{
			Landing:         "Signed in. Pipelines are available.",
			Unauthenticated: "Signed out. Run 'hawk login' to authenticate.",
		},
	}
}

// Hint sets the message printed when navigating to route.
func (r *Router) Hint(route, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.hints[route] = msg
}

// NavigateTo switches to route.
func (r *Router) NavigateTo(ctx context.Context, route string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.current = route
	if msg, ok := r.hints[route]; ok {
		pterm.Info.WithWriter(r.out).Println(msg)
	} else {
		pterm.Info.WithWriter(r.out).Printfln("→ %s", route)
	}
	return r.local.Set(ctx, StorageKey, route)
}

// Current returns the active route, falling back to the stored one and then
// to Unauthenticated.
func (r *Router) Current(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.current != "" {
		return r.current, nil
	}
	route, err := r.local.Get(ctx, StorageKey)
	if errors.Is(err, storage.ErrNotFound) {
		return Unauthenticated, nil
	}
	if err != nil {
		return "", err
	}
	return route, nil
}
