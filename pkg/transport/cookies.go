package transport

import (
	"net/http"
	"time"

	"github.com/beitrag-dev/beitrag/pkg/auth"
)

// SessionCookies writes and clears the session cookie. The cookie is
// HttpOnly and SameSite Strict; Secure is a deployment decision (off for
// plain-HTTP local development).
type SessionCookies struct {
	Secure bool
	TTL    time.Duration
}

// Set writes the session cookie carrying the signed token.
func (c SessionCookies) Set(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(c.TTL.Seconds()),
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}

// Clear expires the session cookie immediately.
func (c SessionCookies) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   c.Secure,
		SameSite: http.SameSiteStrictMode,
	})
}
