package transport

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/beitrag-dev/beitrag/pkg/api"
	"github.com/beitrag-dev/beitrag/pkg/auth"
	"github.com/beitrag-dev/beitrag/pkg/observability"
	"github.com/beitrag-dev/beitrag/pkg/storage"
)

// handleListPosts handles GET /api/posts. Public: anyone can read,
// newest first, with author name and email joined in.
func (a *Adapter) handleListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := a.store.ListPosts(r.Context())
	if err != nil {
		writeMessageError(w, fmt.Errorf("listing posts: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// handleCreatePost handles POST /api/posts. The author is always the
// authenticated caller; nothing in the request body can claim another
// identity.
func (a *Adapter) handleCreatePost(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var req api.CreatePostRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		writeMessageError(w, err)
		return
	}
	if verr := api.ValidateCreatePost(&req); verr != nil {
		writeMessageError(w, verr)
		return
	}

	now := time.Now().UTC()
	p := &api.Post{
		ID:          api.NewPostID(),
		Title:       req.Title,
		Content:     req.Content,
		AuthorID:    u.ID,
		AuthorName:  u.Name,
		AuthorEmail: u.Email,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := a.store.CreatePost(r.Context(), p); err != nil {
		writeMessageError(w, fmt.Errorf("creating post: %w", err))
		return
	}

	writeJSON(w, http.StatusCreated, p)
}

// handleGetPost handles GET /api/posts/{id}. Public.
func (a *Adapter) handleGetPost(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if !api.ValidatePostID(id) {
		writeMessageError(w, api.NewValidationError("Invalid post ID"))
		return
	}

	p, err := a.store.GetPost(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessageError(w, api.NewNotFoundError("Post not found"))
		return
	}
	if err != nil {
		writeMessageError(w, fmt.Errorf("getting post: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// loadOwnedPost fetches the post and checks the caller owns it. Existence
// is checked before ownership, so a non-owner probing a missing ID sees
// the same 404 as everyone else.
func (a *Adapter) loadOwnedPost(w http.ResponseWriter, r *http.Request) (*api.Post, bool) {
	id := r.PathValue("id")
	if !api.ValidatePostID(id) {
		writeMessageError(w, api.NewValidationError("Invalid post ID"))
		return nil, false
	}

	p, err := a.store.GetPost(r.Context(), id)
	if errors.Is(err, storage.ErrNotFound) {
		writeMessageError(w, api.NewNotFoundError("Post not found"))
		return nil, false
	}
	if err != nil {
		writeMessageError(w, fmt.Errorf("getting post: %w", err))
		return nil, false
	}

	if !auth.IsOwner(auth.UserFromContext(r.Context()), p) {
		writeMessageError(w, api.NewForbiddenError("Forbidden"))
		return nil, false
	}

	return p, true
}

// handleUpdatePost handles PUT /api/posts/{id}. Owner only; empty fields
// in the body leave the current value unchanged.
func (a *Adapter) handleUpdatePost(w http.ResponseWriter, r *http.Request) {
	p, ok := a.loadOwnedPost(w, r)
	if !ok {
		return
	}

	var req api.UpdatePostRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		writeMessageError(w, err)
		return
	}
	if verr := api.ValidateUpdatePost(&req); verr != nil {
		writeMessageError(w, verr)
		return
	}

	if req.Title != "" {
		p.Title = req.Title
	}
	if req.Content != "" {
		p.Content = req.Content
	}
	p.UpdatedAt = time.Now().UTC()

	if err := a.store.UpdatePost(r.Context(), p); err != nil {
		writeMessageError(w, fmt.Errorf("updating post: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, p)
}

// handleDeletePost handles DELETE /api/posts/{id}. Owner only; the delete
// is hard, a subsequent GET returns 404.
func (a *Adapter) handleDeletePost(w http.ResponseWriter, r *http.Request) {
	p, ok := a.loadOwnedPost(w, r)
	if !ok {
		return
	}

	if err := a.store.DeletePost(r.Context(), p.ID); err != nil {
		writeMessageError(w, fmt.Errorf("deleting post: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, messageBody{Message: "Post deleted successfully"})
}

// handleMyPosts handles GET /api/posts/user: the caller's posts, newest
// first.
func (a *Adapter) handleMyPosts(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	posts, err := a.store.ListPostsByAuthor(r.Context(), u.ID)
	if err != nil {
		writeMessageError(w, fmt.Errorf("listing posts: %w", err))
		return
	}
	writeJSON(w, http.StatusOK, posts)
}

// handleGenerateContent handles POST /api/posts/aicontent: drafts post
// content for a title via the generation backend.
func (a *Adapter) handleGenerateContent(w http.ResponseWriter, r *http.Request) {
	var req api.GenerateContentRequest
	if err := a.decodeJSON(w, r, &req); err != nil {
		writeMessageError(w, err)
		return
	}
	if req.Title == "" {
		writeMessageError(w, api.NewValidationError("Title is required"))
		return
	}

	if a.generator == nil {
		writeJSON(w, http.StatusServiceUnavailable, messageBody{Message: "Content generation is unavailable"})
		return
	}

	start := time.Now()
	content, err := a.generator.Generate(r.Context(), req.Title)
	observability.GenerationDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		writeMessageError(w, fmt.Errorf("generating content: %w", err))
		return
	}

	writeJSON(w, http.StatusOK, api.GenerateContentResponse{
		Message: "Content generated successfully",
		Content: content,
	})
}
