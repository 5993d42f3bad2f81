package transport

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestRequestID_Generated(t *testing.T) {
	var inCtx string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inCtx = RequestIDFromContext(r.Context())
	}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if inCtx == "" {
		t.Error("no request ID in handler context")
	}
	if got := rec.Header().Get("X-Request-ID"); got != inCtx {
		t.Errorf("header = %q, context = %q, want equal", got, inCtx)
	}
}

func TestRequestID_ClientProvided(t *testing.T) {
	var inCtx string
	h := RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		inCtx = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	h.ServeHTTP(httptest.NewRecorder(), req)

	if inCtx != "abc-123" {
		t.Errorf("request ID = %q, want client value", inCtx)
	}
}

func TestRequestIDFromContext_Empty(t *testing.T) {
	if id := RequestIDFromContext(context.Background()); id != "" {
		t.Errorf("empty context returned %q", id)
	}
}

func TestRecovery(t *testing.T) {
	h := Recovery(slog.New(slog.NewTextHandler(&strings.Builder{}, nil)))(
		http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			panic("handler exploded")
		}))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest("GET", "/", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if body := rec.Body.String(); strings.Contains(body, "exploded") {
		t.Errorf("panic detail leaked to client: %q", body)
	}
}

func TestLogging_RecordsStatus(t *testing.T) {
	var buf strings.Builder
	logger := slog.New(slog.NewTextHandler(&buf, nil))

	h := Logging(logger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/api/posts", nil))

	out := buf.String()
	if !strings.Contains(out, "status=418") {
		t.Errorf("log output missing status: %q", out)
	}
	if !strings.Contains(out, "path=/api/posts") {
		t.Errorf("log output missing path: %q", out)
	}
}
