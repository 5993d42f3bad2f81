package transport

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/beitrag-dev/beitrag/pkg/api"
	"github.com/beitrag-dev/beitrag/pkg/auth"
)

// decodeJSON decodes a JSON body with the size cap applied. A body that
// fails to parse is a validation error, not a server fault.
func (a *Adapter) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, a.config.MaxBodySize)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return api.NewValidationError("Invalid request body")
	}
	return nil
}

// handleRegister handles POST /api/auth/register. A successful
// registration is also a login: the session cookie is set on the response.
func (a *Adapter) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}

	u, err := a.creds.CreateUser(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	tok, err := a.tokens.Issue(u.ID)
	if err != nil {
		writeError(w, fmt.Errorf("issuing token: %w", err))
		return
	}

	a.cookies.Set(w, tok)
	writeJSON(w, http.StatusCreated, api.AuthResponse{Success: true, User: u.Public()})
}

// handleLogin handles POST /api/auth/login.
func (a *Adapter) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		writeError(w, err)
		return
	}
	if verr := api.ValidateLogin(&req); verr != nil {
		writeError(w, verr)
		return
	}

	u, err := a.creds.VerifyCredentials(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, err)
		return
	}

	tok, err := a.tokens.Issue(u.ID)
	if err != nil {
		writeError(w, fmt.Errorf("issuing token: %w", err))
		return
	}

	a.cookies.Set(w, tok)
	writeJSON(w, http.StatusOK, api.AuthResponse{Success: true, User: u.Public()})
}

// handleLogout handles POST /api/auth/logout. Tokens are stateless, so
// logout just clears the cookie; an outstanding bearer token stays valid
// until it expires.
func (a *Adapter) handleLogout(w http.ResponseWriter, r *http.Request) {
	a.cookies.Clear(w)
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"message": "Logged out successfully",
	})
}

// handleMe handles GET /api/auth/me.
func (a *Adapter) handleMe(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, api.AuthResponse{
		Success:       true,
		User:          u.Public(),
		Authenticated: true,
	})
}
