package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/beitrag-dev/beitrag/pkg/api"
	"github.com/beitrag-dev/beitrag/pkg/storage"
)

// CredentialStore owns password hashing and verification on top of the
// user store. Plaintext passwords never leave this type: they arrive as
// arguments, get hashed with a fresh random salt (bcrypt), and are
// discarded.
type CredentialStore struct {
	users storage.UserStore
	cost  int
}

// NewCredentialStore creates a credential store. A cost outside bcrypt's
// valid range falls back to bcrypt.DefaultCost.
func NewCredentialStore(users storage.UserStore, cost int) *CredentialStore {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &CredentialStore{users: users, cost: cost}
}

// CreateUser validates the registration input, hashes the password, and
// persists the user. A duplicate email surfaces as a validation error
// with the same wording the original registration flow uses.
func (c *CredentialStore) CreateUser(ctx context.Context, name, email, password string) (*api.User, error) {
	req := &api.RegisterRequest{Name: name, Email: email, Password: password}
	if verr := api.ValidateRegister(req); verr != nil {
		return nil, verr
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), c.cost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now().UTC()
	u := &api.User{
		ID:           api.NewUserID(),
		Name:         name,
		Email:        api.NormalizeEmail(email),
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := c.users.CreateUser(ctx, u); err != nil {
		if errors.Is(err, storage.ErrConflict) {
			return nil, api.NewValidationError("User already exists")
		}
		return nil, fmt.Errorf("creating user: %w", err)
	}

	return u, nil
}

// VerifyCredentials looks the user up by email and compares the password
// against the stored hash. Unknown email and wrong password both return
// the same generic unauthorized error so callers cannot probe for
// registered accounts.
func (c *CredentialStore) VerifyCredentials(ctx context.Context, email, password string) (*api.User, error) {
	u, err := c.users.GetUserByEmail(ctx, email)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, api.NewInvalidCredentialsError()
	}
	if err != nil {
		return nil, fmt.Errorf("looking up user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, api.NewInvalidCredentialsError()
	}

	return u, nil
}
