package api

import (
	"strings"
	"testing"
)

func TestNewUserID(t *testing.T) {
	id := NewUserID()
	if !strings.HasPrefix(id, "usr_") {
		t.Errorf("user ID %q missing prefix", id)
	}
	if !ValidateUserID(id) {
		t.Errorf("generated user ID %q fails validation", id)
	}
}

func TestNewPostID(t *testing.T) {
	id := NewPostID()
	if !strings.HasPrefix(id, "post_") {
		t.Errorf("post ID %q missing prefix", id)
	}
	if !ValidatePostID(id) {
		t.Errorf("generated post ID %q fails validation", id)
	}
}

func TestIDUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := NewPostID()
		if seen[id] {
			t.Fatalf("duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}

func TestValidateUserID_Rejects(t *testing.T) {
	for _, id := range []string{
		"",
		"usr_",
		"usr_short",
		"post_abcdefghijklmnopqrstuvwx",
		"usr_abcdefghijklmnopqrstuvw!",
		"abcdefghijklmnopqrstuvwxyz",
	} {
		if ValidateUserID(id) {
			t.Errorf("ValidateUserID(%q) = true, want false", id)
		}
	}
}

func TestPublicUserOmitsPasswordHash(t *testing.T) {
	u := &User{ID: NewUserID(), Name: "Ann", Email: "ann@x.com", PasswordHash: "$2a$10$abc"}
	pub := u.Public()
	if pub.ID != u.ID || pub.Name != u.Name || pub.Email != u.Email {
		t.Error("public projection lost fields")
	}
}
