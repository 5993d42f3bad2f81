// Package postgres provides a PostgreSQL implementation of storage.Store.
// It uses pgx/v5 for connection pooling and embedded SQL migrations for
// schema management.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/beitrag-dev/beitrag/pkg/api"
	"github.com/beitrag-dev/beitrag/pkg/storage"
)

// Store is a PostgreSQL-backed storage.Store.
type Store struct {
	pool *pgxpool.Pool
}

// Ensure Store implements storage.Store at compile time.
var _ storage.Store = (*Store)(nil)

// New creates a new PostgreSQL store with the given configuration.
// If MigrateOnStart is true, schema migrations are applied automatically.
func New(ctx context.Context, cfg Config) (*Store, error) {
	cfg.defaults()

	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parsing DSN: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxConns
	poolCfg.MinConns = cfg.MinConns
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connectivity.
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{pool: pool}

	if cfg.MigrateOnStart {
		if err := s.migrate(ctx); err != nil {
			pool.Close()
			return nil, fmt.Errorf("running migrations: %w", err)
		}
	}

	return s, nil
}

// CreateUser persists a new user. The email is stored normalized; a
// duplicate registration returns storage.ErrConflict.
func (s *Store) CreateUser(ctx context.Context, u *api.User) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO users (id, name, email, password_hash, image, bio, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`,
		u.ID, u.Name, api.NormalizeEmail(u.Email), u.PasswordHash,
		u.Image, u.Bio, u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

// GetUserByID retrieves a user by ID.
func (s *Store) GetUserByID(ctx context.Context, id string) (*api.User, error) {
	return s.getUser(ctx, "id = $1", id)
}

// GetUserByEmail retrieves a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (*api.User, error) {
	return s.getUser(ctx, "lower(email) = $1", api.NormalizeEmail(email))
}

func (s *Store) getUser(ctx context.Context, where string, arg any) (*api.User, error) {
	var u api.User
	err := s.pool.QueryRow(ctx, `
		SELECT id, name, email, password_hash, image, bio, created_at, updated_at
		FROM users
		WHERE `+where,
		arg,
	).Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash, &u.Image, &u.Bio, &u.CreatedAt, &u.UpdatedAt)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying user: %w", err)
	}
	return &u, nil
}

// UpdateUser replaces the mutable profile fields of an existing user in a
// single atomic statement.
func (s *Store) UpdateUser(ctx context.Context, u *api.User) error {
	result, err := s.pool.Exec(ctx, `
		UPDATE users SET name = $2, image = $3, bio = $4, updated_at = $5
		WHERE id = $1
	`,
		u.ID, u.Name, u.Image, u.Bio, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// CreatePost persists a new post.
func (s *Store) CreatePost(ctx context.Context, p *api.Post) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO posts (id, title, content, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		p.ID, p.Title, p.Content, p.AuthorID, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrConflict
		}
		return fmt.Errorf("inserting post: %w", err)
	}
	return nil
}

const postColumns = `
	p.id, p.title, p.content, p.author_id, p.created_at, p.updated_at,
	u.name, u.email
`

// GetPost retrieves a post by ID with author name and email joined.
func (s *Store) GetPost(ctx context.Context, id string) (*api.Post, error) {
	var p api.Post
	err := s.pool.QueryRow(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		WHERE p.id = $1
	`, id).Scan(
		&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
		&p.AuthorName, &p.AuthorEmail,
	)

	if errors.Is(err, pgx.ErrNoRows) {
		return nil, storage.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying post: %w", err)
	}
	return &p, nil
}

// ListPosts returns all posts, newest first, with author info joined.
func (s *Store) ListPosts(ctx context.Context) ([]*api.Post, error) {
	return s.listPosts(ctx, "", nil)
}

// ListPostsByAuthor returns the author's posts, newest first.
func (s *Store) ListPostsByAuthor(ctx context.Context, authorID string) ([]*api.Post, error) {
	return s.listPosts(ctx, "WHERE p.author_id = $1", []any{authorID})
}

func (s *Store) listPosts(ctx context.Context, where string, args []any) ([]*api.Post, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT `+postColumns+`
		FROM posts p
		JOIN users u ON u.id = p.author_id
		`+where+`
		ORDER BY p.created_at DESC, p.id DESC
	`, args...)
	if err != nil {
		return nil, fmt.Errorf("querying posts: %w", err)
	}
	defer rows.Close()

	posts := []*api.Post{}
	for rows.Next() {
		var p api.Post
		if err := rows.Scan(
			&p.ID, &p.Title, &p.Content, &p.AuthorID, &p.CreatedAt, &p.UpdatedAt,
			&p.AuthorName, &p.AuthorEmail,
		); err != nil {
			return nil, fmt.Errorf("scanning post: %w", err)
		}
		posts = append(posts, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating posts: %w", err)
	}
	return posts, nil
}

// UpdatePost replaces title, content, and updated_at of an existing post.
func (s *Store) UpdatePost(ctx context.Context, p *api.Post) error {
	result, err := s.pool.Exec(ctx, `
		UPDATE posts SET title = $2, content = $3, updated_at = $4
		WHERE id = $1
	`,
		p.ID, p.Title, p.Content, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("updating post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeletePost removes a post permanently.
func (s *Store) DeletePost(ctx context.Context, id string) error {
	result, err := s.pool.Exec(ctx, "DELETE FROM posts WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("deleting post: %w", err)
	}
	if result.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// HealthCheck verifies the database connection.
func (s *Store) HealthCheck(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close releases the connection pool.
func (s *Store) Close() error {
	s.pool.Close()
	return nil
}

// isUniqueViolation checks for a PostgreSQL unique violation (23505).
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return err != nil && strings.Contains(err.Error(), "23505")
}
