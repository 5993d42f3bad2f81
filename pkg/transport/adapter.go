package transport

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/beitrag-dev/beitrag/pkg/auth"
	"github.com/beitrag-dev/beitrag/pkg/auth/token"
	"github.com/beitrag-dev/beitrag/pkg/observability"
	"github.com/beitrag-dev/beitrag/pkg/storage"
)

// ContentGenerator produces draft post content from a title.
type ContentGenerator interface {
	Generate(ctx context.Context, title string) (string, error)
}

// AvatarStore uploads and deletes profile images in object storage.
type AvatarStore interface {
	Upload(ctx context.Context, contentType string, r io.Reader, size int64) (string, error)
	Delete(ctx context.Context, url string) error
}

// Deps bundles the collaborators the adapter routes requests to. Avatars
// and Generator are optional; the corresponding endpoints reply 503 when
// they are absent.
type Deps struct {
	Credentials *auth.CredentialStore
	Tokens      *token.Service
	Gate        *auth.Gate
	Store       storage.Store
	Avatars     AvatarStore
	Generator   ContentGenerator
	Logger      *slog.Logger
}

// Config holds configuration for the HTTP adapter.
type Config struct {
	MaxBodySize   int64
	MaxImageSize  int64
	SecureCookies bool
	SessionTTL    time.Duration
}

// DefaultConfig returns the default adapter configuration.
func DefaultConfig() Config {
	return Config{
		MaxBodySize:  1 << 20, // 1 MB JSON bodies
		MaxImageSize: 5 << 20, // 5 MB avatar uploads
		SessionTTL:   token.DefaultTTL,
	}
}

// Adapter serves the blog API over HTTP. It routes requests to the
// appropriate handler and serializes responses.
type Adapter struct {
	creds     *auth.CredentialStore
	tokens    *token.Service
	gate      *auth.Gate
	store     storage.Store
	avatars   AvatarStore
	generator ContentGenerator
	cookies   SessionCookies
	config    Config
	logger    *slog.Logger
	mux       *http.ServeMux
}

// NewAdapter creates an HTTP adapter and registers all routes.
func NewAdapter(deps Deps, cfg Config) *Adapter {
	if cfg.MaxBodySize == 0 {
		cfg.MaxBodySize = DefaultConfig().MaxBodySize
	}
	if cfg.MaxImageSize == 0 {
		cfg.MaxImageSize = DefaultConfig().MaxImageSize
	}
	if cfg.SessionTTL == 0 {
		cfg.SessionTTL = token.DefaultTTL
	}
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}

	a := &Adapter{
		creds:     deps.Credentials,
		tokens:    deps.Tokens,
		gate:      deps.Gate,
		store:     deps.Store,
		avatars:   deps.Avatars,
		generator: deps.Generator,
		cookies:   SessionCookies{Secure: cfg.SecureCookies, TTL: cfg.SessionTTL},
		config:    cfg,
		logger:    logger,
		mux:       http.NewServeMux(),
	}

	// The auth and profile endpoints reject with the {"error"} envelope,
	// the post endpoints with {"message"}.
	requireUser := auth.Middleware(a.gate, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, errorBody{Error: "Unauthorized"})
	})
	requirePoster := auth.Middleware(a.gate, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusUnauthorized, messageBody{Message: "Unauthorized"})
	})

	a.mux.HandleFunc("POST /api/auth/register", a.handleRegister)
	a.mux.HandleFunc("POST /api/auth/login", a.handleLogin)
	a.mux.HandleFunc("POST /api/auth/logout", a.handleLogout)
	a.mux.Handle("GET /api/auth/me", requireUser(http.HandlerFunc(a.handleMe)))

	a.mux.Handle("GET /api/user/profile", requireUser(http.HandlerFunc(a.handleGetProfile)))
	a.mux.Handle("PUT /api/user/profile", requireUser(http.HandlerFunc(a.handleUpdateProfile)))

	a.mux.HandleFunc("GET /api/posts", a.handleListPosts)
	a.mux.Handle("POST /api/posts", requirePoster(http.HandlerFunc(a.handleCreatePost)))
	a.mux.Handle("GET /api/posts/user", requirePoster(http.HandlerFunc(a.handleMyPosts)))
	a.mux.Handle("POST /api/posts/aicontent", requirePoster(http.HandlerFunc(a.handleGenerateContent)))
	a.mux.HandleFunc("GET /api/posts/{id}", a.handleGetPost)
	a.mux.Handle("PUT /api/posts/{id}", requirePoster(http.HandlerFunc(a.handleUpdatePost)))
	a.mux.Handle("DELETE /api/posts/{id}", requirePoster(http.HandlerFunc(a.handleDeletePost)))

	a.mux.HandleFunc("GET /healthz", a.handleHealthz)
	a.mux.HandleFunc("GET /readyz", a.handleReadyz)
	a.mux.Handle("GET /metrics", promhttp.Handler())

	return a
}

// Handler returns the http.Handler for this adapter with the full
// middleware stack applied. Use this to integrate with an http.Server or
// test with httptest.
func (a *Adapter) Handler() http.Handler {
	var h http.Handler = a.mux
	h = Recovery(a.logger)(h)
	h = observability.MetricsMiddleware(h)
	h = Logging(a.logger)(h)
	h = RequestID(h)
	return h
}

func (a *Adapter) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleReadyz reports readiness by pinging the store.
func (a *Adapter) handleReadyz(w http.ResponseWriter, r *http.Request) {
	if err := a.store.HealthCheck(r.Context()); err != nil {
		a.logger.Error("readiness check failed", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
