// Package memory provides an in-memory implementation of storage.Store for
// testing and lightweight deployments. Records are lost when the process
// restarts.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/beitrag-dev/beitrag/pkg/api"
	"github.com/beitrag-dev/beitrag/pkg/storage"
)

// Store is an in-memory storage.Store.
type Store struct {
	mu      sync.RWMutex
	users   map[string]*api.User // by ID
	byEmail map[string]string    // normalized email -> user ID
	posts   map[string]*api.Post // by ID
}

// Ensure Store implements storage.Store at compile time.
var _ storage.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{
		users:   make(map[string]*api.User),
		byEmail: make(map[string]string),
		posts:   make(map[string]*api.Post),
	}
}

// CreateUser persists a new user. Returns storage.ErrConflict when the
// email is already registered.
func (s *Store) CreateUser(ctx context.Context, u *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	email := api.NormalizeEmail(u.Email)
	if _, exists := s.byEmail[email]; exists {
		return storage.ErrConflict
	}
	if _, exists := s.users[u.ID]; exists {
		return storage.ErrConflict
	}

	cp := *u
	cp.Email = email
	s.users[u.ID] = &cp
	s.byEmail[email] = u.ID
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

// GetUserByEmail retrieves a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*api.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[api.NormalizeEmail(email)]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *s.users[id]
	return &cp, nil
}

// UpdateUser replaces the mutable fields of an existing user.
func (s *Store) UpdateUser(ctx context.Context, u *api.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.users[u.ID]
	if !ok {
		return storage.ErrNotFound
	}
	cur.Name = u.Name
	cur.Image = u.Image
	cur.Bio = u.Bio
	cur.UpdatedAt = u.UpdatedAt
	return nil
}

// DeleteUser removes a user. Not part of storage.Store; used by tests to
// simulate a deleted account holding a still-valid token.
func (s *Store) DeleteUser(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.byEmail, u.Email)
	delete(s.users, id)
	return nil
}

// CreatePost persists a new post.
func (s *Store) CreatePost(ctx context.Context, p *api.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.posts[p.ID]; exists {
		return storage.ErrConflict
	}
	cp := *p
	s.posts[p.ID] = &cp
	return nil
}

// GetPost retrieves a post by ID with author info joined.
func (s *Store) GetPost(ctx context.Context, id string) (*api.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.posts[id]
	if !ok {
		return nil, storage.ErrNotFound
	}
	cp := *p
	s.joinAuthor(&cp)
	return &cp, nil
}

// ListPosts returns all posts, newest first.
func (s *Store) ListPosts(ctx context.Context) ([]*api.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*api.Post, 0, len(s.posts))
	for _, p := range s.posts {
		cp := *p
		s.joinAuthor(&cp)
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out, nil
}

// ListPostsByAuthor returns the author's posts, newest first.
func (s *Store) ListPostsByAuthor(ctx context.Context, authorID string) ([]*api.Post, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*api.Post
	for _, p := range s.posts {
		if p.AuthorID != authorID {
			continue
		}
		cp := *p
		s.joinAuthor(&cp)
		out = append(out, &cp)
	}
	sortNewestFirst(out)
	return out, nil
}

// UpdatePost replaces title, content, and updated_at of an existing post.
func (s *Store) UpdatePost(ctx context.Context, p *api.Post) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur, ok := s.posts[p.ID]
	if !ok {
		return storage.ErrNotFound
	}
	cur.Title = p.Title
	cur.Content = p.Content
	cur.UpdatedAt = p.UpdatedAt
	return nil
}

// DeletePost removes a post permanently.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.posts[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.posts, id)
	return nil
}

// HealthCheck always succeeds for the in-memory store.
func (s *Store) HealthCheck(ctx context.Context) error { return nil }

// Close is a no-op for the in-memory store.
func (s *Store) Close() error { return nil }

// joinAuthor fills AuthorName and AuthorEmail from the user table.
// Must be called with at least the read lock held.
func (s *Store) joinAuthor(p *api.Post) {
	if u, ok := s.users[p.AuthorID]; ok {
		p.AuthorName = u.Name
		p.AuthorEmail = u.Email
	}
}

func sortNewestFirst(posts []*api.Post) {
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}
		return posts[i].ID > posts[j].ID
	})
}
