// Command server runs the beitrag blog API.
//
// Configuration is layered: built-in defaults, a YAML config file
// (-config flag, BEITRAG_CONFIG, ./config.yaml, /etc/beitrag/config.yaml),
// then BEITRAG_* environment variable overrides. The token signing secret
// is required; everything else has a workable default.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/beitrag-dev/beitrag/pkg/aigen"
	"github.com/beitrag-dev/beitrag/pkg/auth"
	"github.com/beitrag-dev/beitrag/pkg/auth/token"
	"github.com/beitrag-dev/beitrag/pkg/config"
	"github.com/beitrag-dev/beitrag/pkg/images"
	"github.com/beitrag-dev/beitrag/pkg/storage"
	"github.com/beitrag-dev/beitrag/pkg/storage/memory"
	"github.com/beitrag-dev/beitrag/pkg/storage/postgres"
	"github.com/beitrag-dev/beitrag/pkg/transport"
)

func main() {
	if err := run(); err != nil {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}

func run() error {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		return err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	store, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("opening store: %w", err)
	}
	defer store.Close()

	tokens := token.NewService([]byte(cfg.Auth.TokenSecret), cfg.Auth.TokenTTL)

	deps := transport.Deps{
		Credentials: auth.NewCredentialStore(store, cfg.Auth.BcryptCost),
		Tokens:      tokens,
		Gate:        auth.NewGate(tokens, store),
		Store:       store,
		Logger:      logger,
	}

	if cfg.Images.Endpoint != "" {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		avatars, err := images.New(ctx, images.Config{
			Endpoint:      cfg.Images.Endpoint,
			AccessKey:     cfg.Images.AccessKey,
			SecretKey:     cfg.Images.SecretKey,
			Bucket:        cfg.Images.Bucket,
			PublicBaseURL: cfg.Images.PublicBaseURL,
			UseSSL:        cfg.Images.UseSSL,
		})
		cancel()
		if err != nil {
			return fmt.Errorf("connecting to object storage: %w", err)
		}
		deps.Avatars = avatars
		logger.Info("image uploads enabled", "endpoint", cfg.Images.Endpoint, "bucket", cfg.Images.Bucket)
	} else {
		logger.Info("image uploads disabled")
	}

	if cfg.AI.BackendURL != "" {
		generator := aigen.NewClient(cfg.AI.BackendURL, cfg.AI.APIKey, cfg.AI.Model, cfg.AI.Timeout)
		defer generator.Close()
		deps.Generator = generator
		logger.Info("content generation enabled", "model", cfg.AI.Model)
	} else {
		logger.Info("content generation disabled")
	}

	adapterCfg := transport.DefaultConfig()
	adapterCfg.SecureCookies = cfg.Auth.SecureCookies
	adapterCfg.SessionTTL = cfg.Auth.TokenTTL

	adapter := transport.NewAdapter(deps, adapterCfg)

	srv := transport.NewServer(adapter,
		transport.WithAddr(fmt.Sprintf(":%d", cfg.Server.Port)),
		transport.WithLogger(logger),
	)

	return srv.ListenAndServe()
}

// openStore connects the configured storage backend.
func openStore(cfg *config.Config) (storage.Store, error) {
	switch cfg.Storage.Type {
	case "postgres":
		pgCfg := postgres.Config{
			DSN:            cfg.Storage.Postgres.DSN,
			MaxConns:       cfg.Storage.Postgres.MaxConns,
			MigrateOnStart: cfg.Storage.Postgres.MigrateOnStart,
		}

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		store, err := postgres.New(ctx, pgCfg)
		if err != nil {
			return nil, err
		}
		slog.Info("storage connected", "type", "postgres")
		return store, nil

	default:
		slog.Info("storage connected", "type", "memory")
		return memory.New(), nil
	}
}
