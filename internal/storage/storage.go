// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package storage implements the client's persistent local storage: a flat
// string key/value namespace that survives between CLI invocations and can be
// wiped in one call on logout.
//
// Two backends exist: a JSON document in the XDG state dir (default) and Redis
// for setups where several hosts share one client session.
package storage

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"hawk/cli/internal/xdg"
)

// ErrNotFound is returned by Get for a missing key.
var ErrNotFound = errors.New("storage: key not found")

// Local is the persistent key/value store.
type Local interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	// Clear removes every key the store owns.
	Clear(ctx context.Context) error
}

// Options selects and configures a backend.
type Options struct {
	Backend  string // "file" (default) or "redis"
	Path     string // file backend document; defaults to <xdg state>/hawk/storage.json
	RedisURL string
	Prefix   string
}

// RouteFile returns the document the router remembers the current view in. It
// sits next to the default storage document but is never wiped with it.
func RouteFile() (*File, error) {
	dir, err := xdg.StateDir()
	if err != nil {
		return nil, err
	}
	return NewFile(filepath.Join(dir, "route.json")), nil
}

// Open returns the backend described by opts.
func Open(ctx context.Context, opts Options) (Local, error) {
	switch opts.Backend {
	case "", "file":
		path := opts.Path
		if path == "" {
			dir, err := xdg.StateDir()
			if err != nil {
				return nil, err
			}
			path = filepath.Join(dir, "storage.json")
		}
		return NewFile(path), nil
	case "redis":
		return OpenRedis(ctx, opts.RedisURL, opts.Prefix)
	default:
		return nil, fmt.Errorf("unknown storage backend %q (use file or redis)", opts.Backend)
	}
}
