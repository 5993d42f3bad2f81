package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Load loads configuration from a layered set of sources.
//
// The loading order is:
//  1. Built-in defaults
//  2. YAML config file (explicit path, BEITRAG_CONFIG env, ./config.yaml, /etc/beitrag/config.yaml)
//  3. Environment variable overrides
//  4. File reference resolution (_file suffix)
//  5. Validation
func Load(configPath string) (*Config, error) {
	cfg := Defaults()

	filePath := discoverConfigFile(configPath)
	if filePath != "" {
		if err := loadYAMLFile(filePath, &cfg); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", filePath, err)
		}
	}

	applyEnvOverrides(&cfg)

	if err := resolveFileReferences(&cfg); err != nil {
		return nil, fmt.Errorf("resolving file references: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}

	return &cfg, nil
}

// discoverConfigFile finds the config file path using the discovery order:
// 1. Explicit configPath argument
// 2. BEITRAG_CONFIG environment variable
// 3. ./config.yaml in the current directory
// 4. /etc/beitrag/config.yaml
//
// Returns empty string if no config file is found.
func discoverConfigFile(configPath string) string {
	if configPath != "" {
		return configPath
	}

	if envPath := os.Getenv("BEITRAG_CONFIG"); envPath != "" {
		return envPath
	}

	candidates := []string{
		"config.yaml",
		"/etc/beitrag/config.yaml",
	}
	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// loadYAMLFile reads and parses a YAML file into the Config struct.
// Fields not present in the YAML retain their current (default) values.
func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnvOverrides maps BEITRAG_* environment variables to config
// fields. Env vars win over the YAML file.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("BEITRAG_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("BEITRAG_TOKEN_SECRET"); v != "" {
		cfg.Auth.TokenSecret = v
	}
	if v := os.Getenv("BEITRAG_TOKEN_TTL"); v != "" {
		if ttl, err := time.ParseDuration(v); err == nil {
			cfg.Auth.TokenTTL = ttl
		}
	}
	if v := os.Getenv("BEITRAG_SECURE_COOKIES"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Auth.SecureCookies = b
		}
	}
	if v := os.Getenv("BEITRAG_STORAGE"); v != "" {
		cfg.Storage.Type = v
	}
	if v := os.Getenv("BEITRAG_POSTGRES_DSN"); v != "" {
		cfg.Storage.Postgres.DSN = v
	}
	if v := os.Getenv("BEITRAG_MINIO_ENDPOINT"); v != "" {
		cfg.Images.Endpoint = v
	}
	if v := os.Getenv("BEITRAG_MINIO_ACCESS_KEY"); v != "" {
		cfg.Images.AccessKey = v
	}
	if v := os.Getenv("BEITRAG_MINIO_SECRET_KEY"); v != "" {
		cfg.Images.SecretKey = v
	}
	if v := os.Getenv("BEITRAG_MINIO_BUCKET"); v != "" {
		cfg.Images.Bucket = v
	}
	if v := os.Getenv("BEITRAG_IMAGES_BASE_URL"); v != "" {
		cfg.Images.PublicBaseURL = v
	}
	if v := os.Getenv("BEITRAG_AI_BACKEND_URL"); v != "" {
		cfg.AI.BackendURL = v
	}
	if v := os.Getenv("BEITRAG_AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}
	if v := os.Getenv("BEITRAG_AI_MODEL"); v != "" {
		cfg.AI.Model = v
	}
}

// resolveFileReferences reads _file fields and populates the corresponding
// value fields. For each field ending in _file, if the value field is
// empty and the file field is set, the file is read, whitespace is
// trimmed, and the value field is populated.
func resolveFileReferences(cfg *Config) error {
	// auth.token_secret_file -> auth.token_secret
	if cfg.Auth.TokenSecretFile != "" && cfg.Auth.TokenSecret == "" {
		val, err := readSecretFile(cfg.Auth.TokenSecretFile)
		if err != nil {
			return fmt.Errorf("auth.token_secret_file: %w", err)
		}
		cfg.Auth.TokenSecret = val
	}

	// storage.postgres.dsn_file -> storage.postgres.dsn
	if cfg.Storage.Postgres.DSNFile != "" && cfg.Storage.Postgres.DSN == "" {
		val, err := readSecretFile(cfg.Storage.Postgres.DSNFile)
		if err != nil {
			return fmt.Errorf("storage.postgres.dsn_file: %w", err)
		}
		cfg.Storage.Postgres.DSN = val
	}

	// images.secret_key_file -> images.secret_key
	if cfg.Images.SecretKeyFile != "" && cfg.Images.SecretKey == "" {
		val, err := readSecretFile(cfg.Images.SecretKeyFile)
		if err != nil {
			return fmt.Errorf("images.secret_key_file: %w", err)
		}
		cfg.Images.SecretKey = val
	}

	// ai.api_key_file -> ai.api_key
	if cfg.AI.APIKeyFile != "" && cfg.AI.APIKey == "" {
		val, err := readSecretFile(cfg.AI.APIKeyFile)
		if err != nil {
			return fmt.Errorf("ai.api_key_file: %w", err)
		}
		cfg.AI.APIKey = val
	}

	return nil
}

// readSecretFile reads a file and returns its content with surrounding whitespace trimmed.
func readSecretFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
