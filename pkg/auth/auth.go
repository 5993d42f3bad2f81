package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/beitrag-dev/beitrag/pkg/api"
)

// Decision represents the three possible outcomes of a token extraction
// attempt.
type Decision int

const (
	// Yes means a token was present and resolved to a live user.
	Yes Decision = iota

	// No means a token was present but invalid, or referenced a user
	// that no longer exists. The chain stops and the request is treated
	// as unauthenticated.
	No

	// Abstain means this authenticator found no token of its kind.
	// The chain continues to the next authenticator.
	Abstain
)

// Result carries the outcome of an authentication attempt.
type Result struct {
	Decision Decision
	User     *api.User // populated only when Decision == Yes
	Err      error     // populated only when Decision == No
}

// Authenticator examines one token carrier on the request and returns a
// three-outcome vote.
type Authenticator interface {
	Authenticate(ctx context.Context, r *http.Request) Result
}

// Sentinel errors.
var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrForbidden       = errors.New("access denied")
)

// Chain evaluates authenticators in order. The first non-abstaining vote
// wins, which is how cookie-before-header precedence is expressed: the
// cookie authenticator runs first and the bearer authenticator only gets
// a say when no cookie was sent.
type Chain struct {
	Authenticators []Authenticator
}

// Authenticate runs the chain. Stops on the first Yes or No. If every
// authenticator abstains no token was presented at all, which is a plain
// unauthenticated result, not an error.
func (c *Chain) Authenticate(ctx context.Context, r *http.Request) Result {
	for _, authn := range c.Authenticators {
		result := authn.Authenticate(ctx, r)
		if result.Decision != Abstain {
			return result
		}
	}
	return Result{Decision: No, Err: ErrUnauthenticated}
}
