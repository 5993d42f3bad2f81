package transport

import (
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/beitrag-dev/beitrag/pkg/api"
	"github.com/beitrag-dev/beitrag/pkg/auth"
	"github.com/beitrag-dev/beitrag/pkg/observability"
)

// handleGetProfile handles GET /api/user/profile.
func (a *Adapter) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, api.ProfileResponse{Success: true, User: u.Public()})
}

// handleUpdateProfile handles PUT /api/user/profile. The browser client
// sends multipart form data (name and bio fields plus an optional image
// file); a plain JSON body with name and bio is accepted too.
func (a *Adapter) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	u := auth.UserFromContext(r.Context())

	var name, bio string
	var imageURL string

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if strings.HasPrefix(mediaType, "multipart/") {
		if err := r.ParseMultipartForm(a.config.MaxImageSize); err != nil {
			writeError(w, api.NewValidationError("Invalid form data"))
			return
		}
		name = r.FormValue("name")
		bio = r.FormValue("bio")

		file, header, err := r.FormFile("image")
		switch {
		case err == http.ErrMissingFile:
			// No new image, keep the current one.
		case err != nil:
			writeError(w, api.NewValidationError("Invalid image upload"))
			return
		default:
			defer file.Close()
			imageURL, err = a.uploadAvatar(w, r, header.Header.Get("Content-Type"), file, header.Size)
			if err != nil {
				return // response already written
			}
		}
	} else {
		var req struct {
			Name string `json:"name"`
			Bio  string `json:"bio"`
		}
		if err := a.decodeJSON(w, r, &req); err != nil {
			writeError(w, err)
			return
		}
		name, bio = req.Name, req.Bio
	}

	if verr := api.ValidateProfile(name, bio); verr != nil {
		writeError(w, verr)
		return
	}

	oldImage := u.Image
	updated := *u
	updated.Name = name
	updated.Bio = bio
	if imageURL != "" {
		updated.Image = imageURL
	}
	updated.UpdatedAt = time.Now().UTC()

	if err := a.store.UpdateUser(r.Context(), &updated); err != nil {
		writeError(w, fmt.Errorf("updating user: %w", err))
		return
	}

	// Best effort: a stale object in the bucket is not worth failing the
	// update over.
	if imageURL != "" && oldImage != "" && a.avatars != nil {
		if err := a.avatars.Delete(r.Context(), oldImage); err != nil {
			a.logger.Warn("deleting previous avatar", "error", err, "url", oldImage)
		}
	}

	writeJSON(w, http.StatusOK, api.ProfileResponse{
		Success: true,
		Message: "Profile updated successfully",
		User:    updated.Public(),
	})
}

// uploadAvatar validates and stores a new profile image. On failure the
// error response has already been written and a non-nil error is returned.
func (a *Adapter) uploadAvatar(w http.ResponseWriter, r *http.Request, contentType string, file io.Reader, size int64) (string, error) {
	if a.avatars == nil {
		writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "Image uploads are unavailable"})
		return "", fmt.Errorf("no avatar store configured")
	}
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, api.NewValidationError("Only image files are allowed"))
		return "", fmt.Errorf("unsupported content type %q", contentType)
	}
	if size > a.config.MaxImageSize {
		writeError(w, api.NewValidationError("Image is too large"))
		return "", fmt.Errorf("image exceeds %d bytes", a.config.MaxImageSize)
	}

	url, err := a.avatars.Upload(r.Context(), contentType, file, size)
	if err != nil {
		observability.ImageUploadsTotal.WithLabelValues("error").Inc()
		writeError(w, fmt.Errorf("uploading avatar: %w", err))
		return "", err
	}
	observability.ImageUploadsTotal.WithLabelValues("ok").Inc()
	return url, nil
}
