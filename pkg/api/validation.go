package api

import (
	"fmt"
	"regexp"
	"strings"
)

// Validation limits.
const (
	MinPasswordLength = 6
	MaxNameLength     = 50
	MaxBioLength      = 500
	MaxTitleLength    = 200
	MaxContentLength  = 100_000
)

var emailPattern = regexp.MustCompile(`^\w+([.-]?\w+)*@\w+([.-]?\w+)*(\.\w{2,3})+$`)

// NormalizeEmail lowercases and trims an email address. Storage uniqueness
// is enforced on the normalized form.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// ValidateRegister checks a registration request. It returns an *Error
// describing the first validation failure, or nil if the request is valid.
func ValidateRegister(req *RegisterRequest) *Error {
	if strings.TrimSpace(req.Name) == "" || req.Email == "" || req.Password == "" {
		return NewValidationError("Please provide all required fields")
	}
	if len(req.Password) < MinPasswordLength {
		return NewValidationError(fmt.Sprintf("Password must be at least %d characters", MinPasswordLength))
	}
	if len(strings.TrimSpace(req.Name)) > MaxNameLength {
		return NewValidationError(fmt.Sprintf("Name cannot exceed %d characters", MaxNameLength))
	}
	if !emailPattern.MatchString(NormalizeEmail(req.Email)) {
		return NewValidationError("Please provide a valid email")
	}
	return nil
}

// ValidateLogin checks a login request for the required fields. Credential
// correctness is checked separately by the credential store.
func ValidateLogin(req *LoginRequest) *Error {
	if req.Email == "" || req.Password == "" {
		return NewValidationError("Please provide email and password")
	}
	return nil
}

// ValidateProfile checks profile field updates. Zero values are allowed;
// the caller only sends fields it wants to change.
func ValidateProfile(name, bio string) *Error {
	if len(strings.TrimSpace(name)) > MaxNameLength {
		return NewValidationError(fmt.Sprintf("Name cannot exceed %d characters", MaxNameLength))
	}
	if len(bio) > MaxBioLength {
		return NewValidationError(fmt.Sprintf("Bio cannot exceed %d characters", MaxBioLength))
	}
	return nil
}

// ValidateCreatePost checks a post creation request.
func ValidateCreatePost(req *CreatePostRequest) *Error {
	if strings.TrimSpace(req.Title) == "" {
		return NewValidationError("Please provide a title")
	}
	if strings.TrimSpace(req.Content) == "" {
		return NewValidationError("Please provide content")
	}
	if len(req.Title) > MaxTitleLength {
		return NewValidationError(fmt.Sprintf("Title cannot exceed %d characters", MaxTitleLength))
	}
	if len(req.Content) > MaxContentLength {
		return NewValidationError("Content is too long")
	}
	return nil
}

// ValidateUpdatePost checks a post update request. Empty fields mean
// "leave unchanged", so only present values are bounded.
func ValidateUpdatePost(req *UpdatePostRequest) *Error {
	if strings.TrimSpace(req.Title) == "" && strings.TrimSpace(req.Content) == "" {
		return NewValidationError("Nothing to update")
	}
	if len(req.Title) > MaxTitleLength {
		return NewValidationError(fmt.Sprintf("Title cannot exceed %d characters", MaxTitleLength))
	}
	if len(req.Content) > MaxContentLength {
		return NewValidationError("Content is too long")
	}
	return nil
}
