package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/beitrag-dev/beitrag/pkg/api"
	"github.com/beitrag-dev/beitrag/pkg/auth/token"
	"github.com/beitrag-dev/beitrag/pkg/storage"
)

// SessionCookieName is the cookie that carries the session token.
const SessionCookieName = "token"

// resolver turns a raw token string into a live user. Shared by the
// cookie and bearer authenticators.
type resolver struct {
	tokens *token.Service
	users  storage.UserStore
}

// resolve verifies the token and looks up the referenced user. A valid
// token whose user has since been deleted is a No, not an error: the
// request is simply unauthenticated.
func (rs *resolver) resolve(ctx context.Context, tok string) Result {
	userID, err := rs.tokens.Verify(tok)
	if err != nil {
		return Result{Decision: No, Err: err}
	}

	u, err := rs.users.GetUserByID(ctx, userID)
	if errors.Is(err, storage.ErrNotFound) {
		return Result{Decision: No, Err: fmt.Errorf("token user %s no longer exists", userID)}
	}
	if err != nil {
		return Result{Decision: No, Err: fmt.Errorf("resolving token user: %w", err)}
	}

	return Result{Decision: Yes, User: u}
}

// CookieAuthenticator reads the session token from the "token" cookie.
type CookieAuthenticator struct {
	resolver
}

// Authenticate abstains when the cookie is absent so the bearer
// authenticator can have a look.
func (a *CookieAuthenticator) Authenticate(ctx context.Context, r *http.Request) Result {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return Result{Decision: Abstain}
	}
	return a.resolve(ctx, c.Value)
}

// BearerAuthenticator reads the session token from an
// "Authorization: Bearer <token>" header.
type BearerAuthenticator struct {
	resolver
}

// Authenticate abstains when there is no Authorization header or it does
// not use the Bearer scheme.
func (a *BearerAuthenticator) Authenticate(ctx context.Context, r *http.Request) Result {
	header := r.Header.Get("Authorization")
	if header == "" {
		return Result{Decision: Abstain}
	}
	if !strings.HasPrefix(header, "Bearer ") {
		return Result{Decision: Abstain}
	}

	tok := strings.TrimPrefix(header, "Bearer ")
	if tok == "" {
		return Result{Decision: No, Err: ErrUnauthenticated}
	}
	return a.resolve(ctx, tok)
}

// Gate is the per-request authorization check. It extracts a token
// (cookie first, bearer header second), verifies it, and resolves it to a
// user record. It is a pure read: safe to call on every request,
// including unauthenticated ones, and keeps no per-session state.
type Gate struct {
	chain *Chain
}

// NewGate builds a gate over the given token service and user store.
func NewGate(tokens *token.Service, users storage.UserStore) *Gate {
	rs := resolver{tokens: tokens, users: users}
	return &Gate{
		chain: &Chain{
			Authenticators: []Authenticator{
				&CookieAuthenticator{resolver: rs},
				&BearerAuthenticator{resolver: rs},
			},
		},
	}
}

// Authenticate resolves the request's token to a user. The second return
// is false when no token was sent, the token failed verification, or the
// referenced user no longer exists.
func (g *Gate) Authenticate(ctx context.Context, r *http.Request) (*api.User, bool) {
	result := g.chain.Authenticate(ctx, r)
	if result.Decision != Yes || result.User == nil {
		return nil, false
	}
	return result.User, true
}
