// Package config loads hawk CLI configuration.
// Tokens go to the OS keychain; the only secret read here is the keyring
// file password, and only from the environment.
//
// Values come from a YAML file with environment variables laid over it.
// The file is resolved in this order:
//  1. explicit path (--config flag);
//  2. HAWK_CONFIG;
//  3. config.yaml in the XDG config dir;
//  4. environment only.
//
// A .env file in the working directory is loaded into the environment first.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"

	"hawk/cli/internal/xdg"
)

// Config holds CLI settings. The only secret, KeyringPassword, is read from the
// environment and never from a file.
type Config struct {
	ServerURL string          `yaml:"server_url" env:"HAWK_SERVER_URL" env-default:"http://localhost:8080"`
	Endpoints EndpointsConfig `yaml:"endpoints"`
	Routes    RoutesConfig    `yaml:"routes"`
	Login     LoginConfig     `yaml:"login"`
	HTTP      HTTPConfig      `yaml:"http"`
	Log       LogConfig       `yaml:"log"`
	Storage   StorageConfig   `yaml:"storage"`
	Keyring   KeyringConfig   `yaml:"keyring"`

	// KeyringPassword unlocks the encrypted file keyring. Environment only.
	KeyringPassword string `yaml:"-" env:"HAWK_KEYRING_PASSWORD"`
}

// EndpointsConfig holds server paths relative to ServerURL.
type EndpointsConfig struct {
	Token  string `yaml:"token" env:"HAWK_TOKEN_ENDPOINT" env-default:"/Token"`
	Logout string `yaml:"logout" env:"HAWK_LOGOUT_ENDPOINT" env-default:"/auth/logout"`
}

// RoutesConfig names the views the client navigates to.
type RoutesConfig struct {
	Landing         string `yaml:"landing" env:"HAWK_ROUTE_LANDING" env-default:"index.pipelines"`
	Unauthenticated string `yaml:"unauthenticated" env:"HAWK_ROUTE_UNAUTHENTICATED" env-default:"/authenticate"`
}

// LoginConfig controls how credentials are put on the wire.
type LoginConfig struct {
	// EscapeCredentials percent-encodes username and password. Off by default:
	// the server has always received them concatenated verbatim.
	EscapeCredentials bool `yaml:"escape_credentials" env:"HAWK_ESCAPE_CREDENTIALS" env-default:"false"`
}

// HTTPConfig holds client transport settings.
type HTTPConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"HAWK_HTTP_TIMEOUT" env-default:"10s"`
}

// LogConfig holds logger settings.
type LogConfig struct {
	Level  string `yaml:"level" env:"HAWK_LOG_LEVEL" env-default:"info"`
	Format string `yaml:"format" env:"HAWK_LOG_FORMAT" env-default:"console"` // console or json
}

// StorageConfig selects the local storage backend.
type StorageConfig struct {
	Backend  string `yaml:"backend" env:"HAWK_STORAGE_BACKEND" env-default:"file"`
	Path     string `yaml:"path" env:"HAWK_STORAGE_PATH"`
	RedisURL string `yaml:"redis_url" env:"HAWK_STORAGE_REDIS_URL"`
	Prefix   string `yaml:"prefix" env:"HAWK_STORAGE_PREFIX" env-default:"hawk:"`
}

// KeyringConfig restricts which keyring backends may hold tokens.
type KeyringConfig struct {
	Backends []string `yaml:"backends" env:"HAWK_KEYRING_BACKENDS" env-separator:","`
	FileDir  string   `yaml:"file_dir" env:"HAWK_KEYRING_FILE_DIR"`
}

// TokenURL returns the absolute token endpoint URL.
func (c *Config) TokenURL() string {
	return strings.TrimRight(c.ServerURL, "/") + c.Endpoints.Token
}

// LogoutURL returns the absolute logout endpoint URL.
func (c *Config) LogoutURL() string {
	return strings.TrimRight(c.ServerURL, "/") + c.Endpoints.Logout
}

// Load reads configuration using the priority described in the package doc.
func Load(path string) (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	if path == "" {
		path = os.Getenv("HAWK_CONFIG")
	}
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", path, err)
		}
		return read(path)
	}

	if dir, err := xdg.ConfigDir(); err == nil {
		p := filepath.Join(dir, "config.yaml")
		if _, err := os.Stat(p); err == nil {
			return read(p)
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}
	}

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read env: %w", err)
	}
	return &cfg, nil
}

// read parses the file; cleanenv overlays environment variables on top.
func read(path string) (*Config, error) {
	var cfg Config
	if err := cleanenv.ReadConfig(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return &cfg, nil
}
