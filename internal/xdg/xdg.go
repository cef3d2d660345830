// Package xdg provides helpers to resolve XDG Base Directory paths for hawk.
// Configuration lives under the config dir, the local storage document and the
// last visited route under the state dir, and the encrypted keyring fallback
// under the data dir.
package xdg

import (
	"os"
	"path/filepath"
)

const appDir = "hawk"

// ConfigDir returns the XDG config directory for hawk.
// The directory is created with private permissions (0700) if missing.
// It falls back to ~/.config/hawk when XDG_CONFIG_HOME is unset.
func ConfigDir() (string, error) {
	return resolve("XDG_CONFIG_HOME", ".config")
}

// StateDir returns the XDG state directory for hawk.
// It falls back to ~/.local/state/hawk when XDG_STATE_HOME is unset.
func StateDir() (string, error) {
	return resolve("XDG_STATE_HOME", filepath.Join(".local", "state"))
}

// DataDir returns the XDG data directory for hawk.
// It falls back to ~/.local/share/hawk when XDG_DATA_HOME is unset.
func DataDir() (string, error) {
	return resolve("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func resolve(envKey, homeRel string) (string, error) {
	base := os.Getenv(envKey)
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, homeRel)
	}
	dir := filepath.Join(base, appDir)
	if err := os.MkdirAll(dir, 0o700); err != nil { // private dir
		return "", err
	}
	return dir, nil
}
