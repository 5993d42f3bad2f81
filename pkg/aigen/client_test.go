package aigen

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/beitrag-dev/beitrag/pkg/api"
)

func TestGenerate(t *testing.T) {
	var gotReq chatRequest
	var gotAuth string

	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("path = %q, want /chat/completions", r.URL.Path)
		}
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Errorf("decoding request: %v", err)
		}

		json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"role": "assistant", "content": "  A draft about Go.  \n"}},
			},
		})
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "test-key", "test-model", 0)

	content, err := client.Generate(context.Background(), "Go concurrency")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if content != "A draft about Go." {
		t.Errorf("content = %q, want trimmed text", content)
	}
	if gotAuth != "Bearer test-key" {
		t.Errorf("Authorization = %q", gotAuth)
	}
	if gotReq.Model != "test-model" {
		t.Errorf("model = %q", gotReq.Model)
	}
	if len(gotReq.Messages) != 2 || gotReq.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v, want system + user", gotReq.Messages)
	}
	if !strings.Contains(gotReq.Messages[1].Content, "Go concurrency") {
		t.Errorf("user message %q missing title", gotReq.Messages[1].Content)
	}
}

func TestGenerate_BackendError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		json.NewEncoder(w).Encode(map[string]any{
			"error": map[string]string{"message": "quota exceeded"},
		})
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "", "test-model", 0)

	_, err := client.Generate(context.Background(), "Go")
	var apiErr *api.Error
	if !errors.As(err, &apiErr) {
		t.Fatalf("err = %v, want *api.Error", err)
	}
	if apiErr.Kind != api.ErrorKindServerError {
		t.Errorf("kind = %q, want server_error", apiErr.Kind)
	}
	if !strings.Contains(apiErr.Message, "quota exceeded") {
		t.Errorf("message = %q, want backend detail", apiErr.Message)
	}
}

func TestGenerate_EmptyChoices(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer backend.Close()

	client := NewClient(backend.URL, "", "test-model", 0)

	if _, err := client.Generate(context.Background(), "Go"); err == nil {
		t.Error("expected error for empty choices")
	}
}

func TestGenerate_ConnectionRefused(t *testing.T) {
	// A server that is already closed refuses connections.
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	client := NewClient(backend.URL, "", "test-model", 0)

	var apiErr *api.Error
	if _, err := client.Generate(context.Background(), "Go"); !errors.As(err, &apiErr) {
		t.Errorf("err = %v, want *api.Error", err)
	}
}
