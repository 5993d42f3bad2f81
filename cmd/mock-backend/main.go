// Command mock-backend runs a deterministic Chat Completions server for
// local development and testing of the content generation endpoint. It
// echoes the requested title back as canned blog-style prose, so the full
// flow can be exercised without an API key or network access.
//
// Configuration:
//
//	MOCK_PORT - Listen port (default: 9090)
//
// Point the service at it with:
//
//	BEITRAG_AI_BACKEND_URL=http://localhost:9090
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"
)

func main() {
	port := os.Getenv("MOCK_PORT")
	if port == "" {
		port = "9090"
	}

	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat/completions", handleChatCompletions)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok\n"))
	})

	srv := &http.Server{Addr: ":" + port, Handler: mux}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		slog.Info("mock backend starting", "port", port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("mock backend failed", "error", err)
			os.Exit(1)
		}
	}()

	<-ctx.Done()
	slog.Info("mock backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	srv.Shutdown(shutdownCtx)
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	ID      string       `json:"id"`
	Object  string       `json:"object"`
	Model   string       `json:"model"`
	Choices []chatChoice `json:"choices"`
}

type chatChoice struct {
	Index        int         `json:"index"`
	Message      chatMessage `json:"message"`
	FinishReason string      `json:"finish_reason"`
}

func handleChatCompletions(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, `{"error":{"message":"invalid request","type":"invalid_request_error"}}`, http.StatusBadRequest)
		return
	}

	// The title sits on the last line of the user message.
	var title string
	for _, m := range req.Messages {
		if m.Role == "user" {
			lines := strings.Split(strings.TrimSpace(m.Content), "\n")
			title = strings.TrimSpace(lines[len(lines)-1])
		}
	}
	if title == "" {
		title = "an unnamed topic"
	}

	content := fmt.Sprintf(
		"This is a generated draft about %s. It opens with a short introduction, "+
			"develops the idea over a few plain paragraphs, and closes with a summary. "+
			"Replace this text with real backend output in production.", title)

	resp := chatResponse{
		ID:     fmt.Sprintf("chatcmpl-mock-%d", time.Now().UnixNano()),
		Object: "chat.completion",
		Model:  req.Model,
		Choices: []chatChoice{
			{
				Index:        0,
				Message:      chatMessage{Role: "assistant", Content: content},
				FinishReason: "stop",
			},
		},
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}
