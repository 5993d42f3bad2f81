package storage

import (
	"context"

	"github.com/beitrag-dev/beitrag/pkg/api"
)

// UserStore handles persistence of user records.
//
// Emails are stored normalized (lowercased, trimmed) and unique; CreateUser
// returns ErrConflict when the email is already registered. All writes are
// atomic single-record operations.
type UserStore interface {
	// CreateUser persists a new user. The caller assigns the ID and the
	// password hash before calling.
	CreateUser(ctx context.Context, u *api.User) error

	// GetUserByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetUserByID(ctx context.Context, id string) (*api.User, error)

	// GetUserByEmail retrieves a user by normalized email.
	// Returns ErrNotFound if absent.
	GetUserByEmail(ctx context.Context, email string) (*api.User, error)

	// UpdateUser replaces the mutable fields (name, image, bio,
	// updated_at) of an existing user. The ID and email are immutable
	// here. Returns ErrNotFound if the user does not exist.
	UpdateUser(ctx context.Context, u *api.User) error
}

// PostStore handles persistence of blog posts.
type PostStore interface {
	// CreatePost persists a new post. The caller assigns the ID and
	// AuthorID before calling.
	CreatePost(ctx context.Context, p *api.Post) error

	// GetPost retrieves a post by ID with author name and email joined.
	// Returns ErrNotFound if absent.
	GetPost(ctx context.Context, id string) (*api.Post, error)

	// ListPosts returns all posts, newest first, with author info joined.
	ListPosts(ctx context.Context) ([]*api.Post, error)

	// ListPostsByAuthor returns the given author's posts, newest first.
	ListPostsByAuthor(ctx context.Context, authorID string) ([]*api.Post, error)

	// UpdatePost replaces the title, content, and updated_at of an
	// existing post. AuthorID is immutable. Returns ErrNotFound if the
	// post does not exist. Ownership is checked by the caller.
	UpdatePost(ctx context.Context, p *api.Post) error

	// DeletePost removes a post permanently. Returns ErrNotFound if the
	// post does not exist.
	DeletePost(ctx context.Context, id string) error
}

// Store combines the user and post stores with lifecycle operations.
type Store interface {
	UserStore
	PostStore

	// HealthCheck verifies the store connection is functional.
	HealthCheck(ctx context.Context) error

	// Close releases connections and resources.
	Close() error
}
