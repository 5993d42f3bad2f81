package auth

import "github.com/beitrag-dev/beitrag/pkg/api"

// IsOwner reports whether the authenticated user owns the post. Handlers
// use it as the precondition for update and delete: a failing check on an
// authenticated request is a Forbidden outcome, distinct from the
// Unauthorized outcome of a failed authentication.
func IsOwner(u *api.User, p *api.Post) bool {
	if u == nil || p == nil {
		return false
	}
	return u.ID == p.AuthorID
}
