package api

import "time"

// User is the stored user record. The password hash is kept out of every
// JSON shape; only the storage layer and the credential store touch it.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Image        string    `json:"image,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the client-visible projection of a User.
type PublicUser struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Image     string    `json:"image,omitempty"`
	Bio       string    `json:"bio,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Public returns the client-visible projection of the user.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Email:     u.Email,
		Image:     u.Image,
		Bio:       u.Bio,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Post is a blog post. AuthorID is set at creation and never changes;
// only the author may update or delete the post.
//
// AuthorName and AuthorEmail are filled by read queries that join the
// author record. They are not persisted on the post itself.
type Post struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	AuthorID    string    `json:"author"`
	AuthorName  string    `json:"authorName,omitempty"`
	AuthorEmail string    `json:"authorEmail,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// RegisterRequest is the body of POST /api/auth/register.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register, login, and me.
type AuthResponse struct {
	Success       bool        `json:"success"`
	User          *PublicUser `json:"user"`
	Authenticated bool        `json:"authenticated,omitempty"`
}

// ProfileResponse wraps a profile read or update result.
type ProfileResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	User    *PublicUser `json:"user"`
}

// CreatePostRequest is the body of POST /api/posts.
type CreatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// UpdatePostRequest is the body of PUT /api/posts/{id}. Empty fields are
// left unchanged.
type UpdatePostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// GenerateContentRequest is the body of POST /api/posts/aicontent.
type GenerateContentRequest struct {
	Title string `json:"title"`
}

// GenerateContentResponse carries the generated draft text.
type GenerateContentResponse struct {
	Message string `json:"message"`
	Content string `json:"content"`
}
