package auth

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/beitrag-dev/beitrag/pkg/observability"
)

// RejectFunc writes the 401 response when a protected route is hit
// without a usable token. The wire shape differs between route families,
// so the caller supplies it.
type RejectFunc func(w http.ResponseWriter, r *http.Request)

// Middleware creates HTTP middleware that requires an authenticated user.
// It runs the gate, injects the user into the request context on success,
// and rejects with the supplied writer otherwise.
func Middleware(gate *Gate, reject RejectFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			result := gate.chain.Authenticate(r.Context(), r)

			if result.Decision != Yes || result.User == nil {
				reason := "invalid_token"
				if errors.Is(result.Err, ErrUnauthenticated) {
					reason = "missing_token"
				}
				observability.AuthFailuresTotal.WithLabelValues(reason).Inc()
				slog.Warn("authentication failed",
					"path", r.URL.Path,
					"remote_addr", r.RemoteAddr,
					"error", result.Err,
				)
				reject(w, r)
				return
			}

			slog.Debug("authentication succeeded",
				"user_id", result.User.ID,
				"path", r.URL.Path,
			)

			next.ServeHTTP(w, r.WithContext(SetUser(r.Context(), result.User)))
		})
	}
}

// Populate creates middleware that resolves the token when one is present
// but never rejects. Routes that serve both authenticated and anonymous
// callers sit behind this; handlers check UserFromContext themselves.
func Populate(gate *Gate) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if u, ok := gate.Authenticate(r.Context(), r); ok {
				r = r.WithContext(SetUser(r.Context(), u))
			}
			next.ServeHTTP(w, r)
		})
	}
}
