// Copyright (c) 2025 Hawk
// Licensed under the MIT License. See LICENSE file in the project root for details.

// Package keychain provides thread-safe keychain operations for hawk.
// It holds the access and refresh tokens issued by the HawkCD token endpoint in
// the OS credential store (macOS Keychain, Windows Credential Manager, Secret
// Service, ...) and falls back to an encrypted file when no native store exists.
//
// Clearing the stored tokens is how the client invalidates its local session.
package keychain

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/99designs/keyring"

	"hawk/cli/internal/xdg"
)

// ServiceName identifies our keychain/credential store namespace.
const ServiceName = "hawk"

// Keys used for storing secrets in the OS keychain.
const (
	KeyAccessToken  = "auth_access_token"
	KeyRefreshToken = "auth_refresh_token"
)

// ErrNoToken is returned when the requested token is absent or empty.
var ErrNoToken = errors.New("no token stored")

// Manager provides thread-safe operations for the OS keychain.
type Manager struct {
	mu   sync.RWMutex
	ring keyring.Keyring
}

// Options controls which keyring backends may be opened.
type Options struct {
	// Backends restricts the backend types (e.g. "keychain", "wincred",
	// "secret-service", "file"). Empty means platform natives plus file.
	Backends []string
	// FileDir is where the file backend keeps its encrypted items.
	// Defaults to <xdg data>/hawk/keyring.
	FileDir string
	// FilePassword unlocks the file backend. When empty the backend prompts on
	// the terminal.
	FilePassword string
}

// NewManager opens the OS keyring.
func NewManager(opts Options) (*Manager, error) {
	ring, err := openRing(opts)
	if err != nil {
		return nil, err
	}
	return &Manager{ring: ring}, nil
}

// FromKeyring wraps an already opened keyring. Tests pass keyring.NewArrayKeyring.
func FromKeyring(ring keyring.Keyring) *Manager {
	return &Manager{ring: ring}
}

// openRing opens the keyring restricted to the configured or default backends.
func openRing(opts Options) (keyring.Keyring, error) {
	allowed := make([]keyring.BackendType, 0, len(opts.Backends))
	for _, b := range opts.Backends {
		allowed = append(allowed, keyring.BackendType(b))
	}
	if len(allowed) == 0 {
		allowed = defaultBackends()
	}

	dir := opts.FileDir
	if dir == "" {
		data, err := xdg.DataDir()
		if err != nil {
			return nil, err
		}
		dir = filepath.Join(data, "keyring")
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, err
	}

	prompt := keyring.TerminalPrompt
	if opts.FilePassword != "" {
		prompt = keyring.FixedStringPrompt(opts.FilePassword)
	}

	cfg := keyring.Config{
		ServiceName:              ServiceName,
		AllowedBackends:          allowed,
		KeychainName:             "login",
		KeychainTrustApplication: true,
		LibSecretCollectionName:  ServiceName,
		KWalletAppID:             ServiceName,
		KWalletFolder:            ServiceName,
		WinCredPrefix:            ServiceName,
		PassPrefix:               ServiceName,
		FileDir:                  dir,
		FilePasswordFunc:         prompt,
	}

	ring, err := keyring.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	return ring, nil
}

// defaultBackends prefers the platform's native store and keeps the encrypted
// file backend as a last resort.
func defaultBackends() []keyring.BackendType {
	switch runtime.GOOS {
	case "darwin":
		return []keyring.BackendType{keyring.KeychainBackend, keyring.PassBackend, keyring.FileBackend}
	case "windows":
		return []keyring.BackendType{keyring.WinCredBackend, keyring.FileBackend}
	default:
		return []keyring.BackendType{keyring.SecretServiceBackend, keyring.KWalletBackend, keyring.PassBackend, keyring.FileBackend}
	}
}

// SaveAuthTokens stores access and refresh tokens in the OS keychain.
// Empty values are skipped so a caller can update one token at a time.
func (m *Manager) SaveAuthTokens(accessToken, refreshToken string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if accessToken != "" {
		if err := m.ring.Set(keyring.Item{Key: KeyAccessToken, Data: []byte(accessToken), Label: "hawk access token"}); err != nil {
			return err
		}
	}
	if refreshToken != "" {
		if err := m.ring.Set(keyring.Item{Key: KeyRefreshToken, Data: []byte(refreshToken), Label: "hawk refresh token"}); err != nil {
			return err
		}
	}
	return nil
}

// LoadAccessToken retrieves the access token from the keychain.
func (m *Manager) LoadAccessToken() (string, error) {
	return m.load(KeyAccessToken)
}

// LoadRefreshToken retrieves the refresh token from the keychain.
func (m *Manager) LoadRefreshToken() (string, error) {
	return m.load(KeyRefreshToken)
}

func (m *Manager) load(key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	it, err := m.ring.Get(key)
	if err != nil {
		if errors.Is(err, keyring.ErrKeyNotFound) {
			return "", ErrNoToken
		}
		return "", err
	}
	if len(it.Data) == 0 {
		return "", ErrNoToken
	}
	return string(it.Data), nil
}

// ClearAuth removes both tokens from the keychain. Missing items are not an error.
func (m *Manager) ClearAuth() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	var errs []error
	for _, key := range []string{KeyAccessToken, KeyRefreshToken} {
		if err := m.ring.Remove(key); err != nil && !isNotFound(err) {
			errs = append(errs, fmt.Errorf("remove %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func isNotFound(err error) bool {
	return errors.Is(err, keyring.ErrKeyNotFound) || errors.Is(err, os.ErrNotExist)
}
