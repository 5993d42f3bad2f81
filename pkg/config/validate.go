package config

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

// Validate checks the configuration for required fields and valid values.
// Returns an error with a descriptive field path on failure.
func (c *Config) Validate() error {
	var errs []error

	// auth.token_secret is required: without it every session token in the
	// wild could be forged.
	if c.Auth.TokenSecret == "" {
		errs = append(errs, fmt.Errorf("auth.token_secret or auth.token_secret_file is required"))
	}

	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, fmt.Errorf("auth.token_ttl must be > 0, got %s", c.Auth.TokenTTL))
	}

	if c.Auth.BcryptCost != 0 && (c.Auth.BcryptCost < bcrypt.MinCost || c.Auth.BcryptCost > bcrypt.MaxCost) {
		errs = append(errs, fmt.Errorf("auth.bcrypt_cost must be between %d and %d, got %d", bcrypt.MinCost, bcrypt.MaxCost, c.Auth.BcryptCost))
	}

	if c.Server.Port <= 0 {
		errs = append(errs, fmt.Errorf("server.port must be > 0, got %d", c.Server.Port))
	}

	switch c.Storage.Type {
	case "memory", "postgres":
		// valid
	default:
		errs = append(errs, fmt.Errorf("storage.type must be \"memory\" or \"postgres\", got %q", c.Storage.Type))
	}

	if c.Storage.Type == "postgres" {
		if c.Storage.Postgres.DSN == "" && c.Storage.Postgres.DSNFile == "" {
			errs = append(errs, fmt.Errorf("storage.postgres.dsn or storage.postgres.dsn_file is required when storage.type is \"postgres\""))
		}
	}

	// Object storage settings travel together.
	if c.Images.Endpoint != "" {
		if c.Images.AccessKey == "" || c.Images.SecretKey == "" {
			errs = append(errs, fmt.Errorf("images.access_key and images.secret_key are required when images.endpoint is set"))
		}
		if c.Images.PublicBaseURL == "" {
			errs = append(errs, fmt.Errorf("images.public_base_url is required when images.endpoint is set"))
		}
	}

	return errors.Join(errs...)
}
