// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package auth signs the user in and out of a HawkCD server.
//
// Client exchanges credentials for tokens at the password-grant token
// endpoint, publishes the resulting session, and keeps the process-wide
// authentication flag (Data) in step:
//
//	Anonymous --login ok--> Authenticated
//	*         --login failed / logout acknowledged / LogoutUser--> Anonymous
//
// Collaborators are plain interfaces passed to New so every side effect can
// be replaced in tests.
package auth

import (
	"context"
	"errors"
	"sync"

	"hawk/cli/internal/backend"
	autherrors "hawk/cli/internal/errors"
	"hawk/cli/internal/router"
	"hawk/cli/internal/session"
)

// SessionStore receives the session produced by a successful login. Clear
// drops the stored record on local logout.
type SessionStore interface {
	SetTokenInfo(ctx context.Context, info session.Info) error
	Clear(ctx context.Context) error
}

// TokenStore owns the locally held tokens. ClearAuth invalidates them.
type TokenStore interface {
	ClearAuth() error
}

// LocalStorage is the persistent store wiped on acknowledged logout.
type LocalStorage interface {
	Clear(ctx context.Context) error
}

// Navigator switches the client's view.
type Navigator interface {
	NavigateTo(ctx context.Context, route string) error
}

// Logger records server responses and errors.
type Logger interface {
	Log(entry any)
}

// ViewModel is the client-side user model. Logout reads the username from it
// and LogoutUser flushes it.
type ViewModel interface {
	Username() string
	Reset()
}

// Routes names the views the client navigates to.
type Routes struct {
	Landing         string
	Unauthenticated string
}

// Deps bundles the collaborators of Client.
type Deps struct {
	Session   SessionStore
	Tokens    TokenStore
	Storage   LocalStorage
	Navigator Navigator
	Logger    Logger
	ViewModel ViewModel
	Routes    Routes
	// EscapeCredentials percent-encodes username and password in the token
	// request. Off by default, matching what the server has always received.
	EscapeCredentials bool
}

// Client performs login and logout. It is the only writer of Data.
type Client struct {
	be   backend.API
	deps Deps
	data *Data

	// mu serializes the state changes made when a call completes, so one
	// call's flag, session and navigation updates are never interleaved with
	// another's. Network round trips run outside it.
	mu sync.Mutex
}

type nopLogger struct{}

func (nopLogger) Log(any) {}

// New returns a Client. Routes default to router.Landing and
// router.Unauthenticated; a nil Logger discards entries.
func New(be backend.API, deps Deps) *Client {
	if deps.Routes.Landing == "" {
		deps.Routes.Landing = router.Landing
	}
	if deps.Routes.Unauthenticated == "" {
		deps.Routes.Unauthenticated = router.Unauthenticated
	}
	if deps.Logger == nil {
		deps.Logger = nopLogger{}
	}
	return &Client{be: be, deps: deps, data: &Data{}}
}

// Data exposes the authentication flag for observers.
func (c *Client) Data() *Data {
	return c.data
}

// Restore marks the user signed in from a session persisted by an earlier
// process. It performs no network call and no navigation.
func (c *Client) Restore(info session.Info) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data.signIn(info.Username)
}

// Login posts the credentials to the token endpoint and returns immediately.
//
// On a 2xx answer the session is published, the flag becomes authenticated,
// the client navigates to the landing route and the Pending resolves with nil.
// Otherwise the flag becomes anonymous and the Pending rejects with the error;
// for a non-2xx answer errors.As reaches *backend.ResponseError carrying the
// raw payload. Nothing is retried.
func (c *Client) Login(ctx context.Context, username, password string) *Pending {
	p := newPending()
	form := backend.PasswordGrantForm(username, password, c.deps.EscapeCredentials)
	go func() {
		p.settle(c.login(ctx, form))
	}()
	return p
}

func (c *Client) login(ctx context.Context, form string) error {
	tok, err := c.be.RequestToken(ctx, form)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		c.data.signOut()
		return err
	}

	info := session.Info{
		AccessToken:  tok.AccessToken,
		RefreshToken: tok.RefreshToken,
		Username:     tok.UserName,
		Email:        tok.UserName,
		Issued:       tok.Issued,
		Expires:      tok.Expires,
	}
	if err := c.deps.Session.SetTokenInfo(ctx, info); err != nil {
		c.data.signOut()
		return autherrors.Wrap(autherrors.Storage, "publish session", err)
	}
	c.data.signIn(tok.UserName)

	if err := c.deps.Navigator.NavigateTo(ctx, c.deps.Routes.Landing); err != nil {
		c.deps.Logger.Log(err)
	}
	return nil
}

// Logout tells the server the current user is leaving and returns immediately.
//
// Only when the server acknowledges (2xx) are the tokens invalidated, local
// storage wiped, the flag reset and the client sent to the unauthenticated
// route. Either way the outcome is logged. The Pending always resolves with
// nil; it exists so callers can wait for completion before exiting.
func (c *Client) Logout(ctx context.Context) *Pending {
	p := newPending()
	username := c.deps.ViewModel.Username()
	go func() {
		c.logout(ctx, username)
		p.settle(nil)
	}()
	return p
}

func (c *Client) logout(ctx context.Context, username string) {
	resp, err := c.be.Logout(ctx, username)
	if err != nil {
		c.deps.Logger.Log(err)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.deps.Tokens.ClearAuth(); err != nil {
		c.deps.Logger.Log(autherrors.Wrap(autherrors.Storage, "invalidate token", err))
	}
	if err := c.deps.Storage.Clear(ctx); err != nil {
		c.deps.Logger.Log(autherrors.Wrap(autherrors.Storage, "clear local storage", err))
	}
	c.data.signOut()
	if err := c.deps.Navigator.NavigateTo(ctx, c.deps.Routes.Unauthenticated); err != nil {
		c.deps.Logger.Log(err)
	}
	c.deps.Logger.Log(resp)
}

// LogoutUser ends the session locally without contacting the server, e.g.
// after an expired token is detected. The token is invalidated, the session
// record dropped, the flag reset, the client sent to the unauthenticated
// route and the view model flushed; every step runs even if an earlier one
// fails. Other local storage entries are left alone. username is accepted
// for call-site symmetry and not used.
func (c *Client) LogoutUser(ctx context.Context, username string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	var errs []error
	if err := c.deps.Tokens.ClearAuth(); err != nil {
		errs = append(errs, autherrors.Wrap(autherrors.Storage, "invalidate token", err))
	}
	if err := c.deps.Session.Clear(ctx); err != nil {
		errs = append(errs, autherrors.Wrap(autherrors.Storage, "drop session", err))
	}
	c.data.signOut()
	if err := c.deps.Navigator.NavigateTo(ctx, c.deps.Routes.Unauthenticated); err != nil {
		errs = append(errs, err)
	}
	c.deps.ViewModel.Reset()
	return errors.Join(errs...)
}
