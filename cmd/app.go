// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

package cmd

import (
	"context"
	"io"

	"github.com/rs/zerolog"

	"hawk/cli/internal/auth"
	"hawk/cli/internal/backend"
	"hawk/cli/internal/config"
	"hawk/cli/internal/keychain"
	"hawk/cli/internal/logging"
	"hawk/cli/internal/router"
	"hawk/cli/internal/session"
	"hawk/cli/internal/storage"
	"hawk/cli/internal/viewmodel"
)

// app is one invocation's set of wired components.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	keys     *keychain.Manager
	local    storage.Local
	sessions *session.Store
	router   *router.Router
	vm       *viewmodel.Model
	client   *auth.Client
}

// newApp loads configuration and wires the auth client. A session persisted
// by an earlier invocation is restored so the client starts authenticated.
func newApp(ctx context.Context, out io.Writer) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	level := cfg.Log.Level
	if verbose {
		level = "debug"
	}
	log := logging.New(logging.Options{Level: level, Format: cfg.Log.Format})

	keys, err := keychain.NewManager(keychain.Options{
		Backends:     cfg.Keyring.Backends,
		FileDir:      cfg.Keyring.FileDir,
		FilePassword: cfg.KeyringPassword,
	})
	if err != nil {
		return nil, err
	}

	local, err := storage.Open(ctx, storage.Options{
		Backend:  cfg.Storage.Backend,
		Path:     cfg.Storage.Path,
		RedisURL: cfg.Storage.RedisURL,
		Prefix:   cfg.Storage.Prefix,
	})
	if err != nil {
		return nil, err
	}

	routes, err := storage.RouteFile()
	if err != nil {
		return nil, err
	}

	a := &app{
		cfg:      cfg,
		log:      log,
		keys:     keys,
		local:    local,
		sessions: session.NewStore(keys, local),
		router:   router.New(routes, out),
		vm:       viewmodel.New(),
	}
	a.router.Hint(cfg.Routes.Landing, "Signed in. Pipelines are available.")
	a.router.Hint(cfg.Routes.Unauthenticated, "Signed out. Run 'hawk login' to authenticate.")

	api := backend.New(backend.Endpoints{
		Token:  cfg.TokenURL(),
		Logout: cfg.LogoutURL(),
	}, backend.Options{
		Timeout:   cfg.HTTP.Timeout,
		UserAgent: "hawk-cli/" + Version,
	})

	a.client = auth.New(api, auth.Deps{
		Session:   a.sessions,
		Tokens:    keys,
		Storage:   local,
		Navigator: a.router,
		Logger:    logging.NewSink(log),
		ViewModel: a.vm,
		Routes: auth.Routes{
			Landing:         cfg.Routes.Landing,
			Unauthenticated: cfg.Routes.Unauthenticated,
		},
		EscapeCredentials: cfg.Login.EscapeCredentials,
	})

	a.restore(ctx)
	log.Debug().Str("server", cfg.ServerURL).Stringer("state", a.client.Data().State()).Msg("client ready")
	return a, nil
}

func (a *app) restore(ctx context.Context) {
	info, ok, err := a.sessions.TokenInfo(ctx)
	if err != nil {
		a.log.Debug().Err(err).Msg("no usable stored session")
		return
	}
	if !ok {
		return
	}
	a.client.Restore(info)
	a.vm.SetUser(viewmodel.User{Username: info.Username})
}

// Close releases the storage backend.
func (a *app) Close() error {
	if c, ok := a.local.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
