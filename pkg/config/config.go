// Package config provides unified configuration for the beitrag service.
//
// Configuration is loaded with a layered approach:
//  1. Built-in defaults
//  2. YAML config file (discovered or explicitly specified)
//  3. Environment variable overrides (BEITRAG_ prefix)
//  4. File reference resolution (_file suffix fields)
//  5. Validation
package config

import (
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all configuration for the beitrag service.
type Config struct {
	Server        ServerConfig        `yaml:"server"`
	Auth          AuthConfig          `yaml:"auth"`
	Storage       StorageConfig       `yaml:"storage"`
	Images        ImagesConfig        `yaml:"images"`
	AI            AIConfig            `yaml:"ai"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         int           `yaml:"port"`          // default: 8080
	ReadTimeout  time.Duration `yaml:"read_timeout"`  // default: 15s
	WriteTimeout time.Duration `yaml:"write_timeout"` // default: 120s
}

// AuthConfig holds session and password settings.
type AuthConfig struct {
	TokenSecret     string        `yaml:"token_secret"`      // required
	TokenSecretFile string        `yaml:"token_secret_file"` // _file variant for token_secret
	TokenTTL        time.Duration `yaml:"token_ttl"`         // default: 168h (7 days)
	BcryptCost      int           `yaml:"bcrypt_cost"`       // default: bcrypt.DefaultCost
	SecureCookies   bool          `yaml:"secure_cookies"`    // default: false (plain HTTP dev)
}

// StorageConfig holds persistence settings.
type StorageConfig struct {
	Type     string         `yaml:"type"` // "memory" or "postgres", default: "memory"
	Postgres PostgresConfig `yaml:"postgres"`
}

// PostgresConfig holds PostgreSQL-specific settings.
type PostgresConfig struct {
	DSN            string `yaml:"dsn"`
	DSNFile        string `yaml:"dsn_file"`         // _file variant for dsn
	MaxConns       int32  `yaml:"max_conns"`        // default: 25
	MigrateOnStart bool   `yaml:"migrate_on_start"` // default: false
}

// ImagesConfig holds object storage settings for profile images. The
// feature is disabled when the endpoint is empty.
type ImagesConfig struct {
	Endpoint      string `yaml:"endpoint"`
	AccessKey     string `yaml:"access_key"`
	SecretKey     string `yaml:"secret_key"`
	SecretKeyFile string `yaml:"secret_key_file"` // _file variant for secret_key
	Bucket        string `yaml:"bucket"`          // default: "beitrag-avatars"
	PublicBaseURL string `yaml:"public_base_url"`
	UseSSL        bool   `yaml:"use_ssl"`
}

// AIConfig holds content generation backend settings. The feature is
// disabled when the backend URL is empty.
type AIConfig struct {
	BackendURL string        `yaml:"backend_url"`
	APIKey     string        `yaml:"api_key"`
	APIKeyFile string        `yaml:"api_key_file"` // _file variant for api_key
	Model      string        `yaml:"model"`        // default: "gemini-2.5-flash"
	Timeout    time.Duration `yaml:"timeout"`      // default: 120s
}

// ObservabilityConfig holds monitoring and instrumentation settings.
type ObservabilityConfig struct {
	Metrics MetricsConfig `yaml:"metrics"`
}

// MetricsConfig holds Prometheus metrics endpoint settings.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Path    string `yaml:"path"`    // default: "/metrics"
}

// Defaults returns a Config with all default values filled in.
func Defaults() Config {
	return Config{
		Server: ServerConfig{
			Port:         8080,
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 120 * time.Second,
		},
		Auth: AuthConfig{
			TokenTTL:   7 * 24 * time.Hour,
			BcryptCost: bcrypt.DefaultCost,
		},
		Storage: StorageConfig{
			Type: "memory",
			Postgres: PostgresConfig{
				MaxConns: 25,
			},
		},
		Images: ImagesConfig{
			Bucket: "beitrag-avatars",
		},
		AI: AIConfig{
			Model:   "gemini-2.5-flash",
			Timeout: 120 * time.Second,
		},
		Observability: ObservabilityConfig{
			Metrics: MetricsConfig{
				Enabled: true,
				Path:    "/metrics",
			},
		},
	}
}
