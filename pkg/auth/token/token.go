// Package token issues and verifies the signed session tokens that carry a
// user identity between requests. Tokens are HS256 JWTs with a single
// custom claim and an expiry; they are stateless, so nothing is stored
// server-side and rotating the signing secret invalidates every
// outstanding token.
package token

import (
	"errors"
	"fmt"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is the session lifetime used when none is configured.
const DefaultTTL = 7 * 24 * time.Hour

// ErrInvalid is returned by Verify for any token that does not check out:
// bad signature, malformed payload, wrong algorithm, or past expiry. The
// caller treats all of these the same way, as "no valid token".
var ErrInvalid = errors.New("invalid token")

// Claims embeds the registered JWT claims plus the bound user identifier.
type Claims struct {
	jwtlib.RegisteredClaims
	UserID string `json:"userId"`
}

// Service issues and verifies session tokens with a process-wide secret.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time // injectable for expiry tests
}

// NewService creates a token service. A zero ttl falls back to DefaultTTL.
func NewService(secret []byte, ttl time.Duration) *Service {
	if ttl == 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: secret, ttl: ttl, now: time.Now}
}

// Issue produces a signed token embedding the user identifier and an
// expiry ttl from now.
func (s *Service) Issue(userID string) (string, error) {
	now := s.now()
	token := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, Claims{
		RegisteredClaims: jwtlib.RegisteredClaims{
			IssuedAt:  jwtlib.NewNumericDate(now),
			ExpiresAt: jwtlib.NewNumericDate(now.Add(s.ttl)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify returns the embedded user identifier, or ErrInvalid if the
// signature does not match, the payload is malformed, or the expiry has
// passed. Attacker-supplied garbage is a normal invalid result, never a
// panic.
func (s *Service) Verify(tokenStr string) (string, error) {
	claims := &Claims{}

	token, err := jwtlib.ParseWithClaims(tokenStr, claims,
		func(t *jwtlib.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwtlib.WithValidMethods([]string{"HS256"}),
		jwtlib.WithTimeFunc(func() time.Time { return s.now() }),
	)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrInvalid, err)
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrInvalid
	}

	return claims.UserID, nil
}
