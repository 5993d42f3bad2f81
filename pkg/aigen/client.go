// Package aigen drafts blog post content from a title by calling an
// OpenAI-compatible Chat Completions backend. Any backend speaking that
// dialect works; the base URL, API key, and model are configuration.
package aigen

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/beitrag-dev/beitrag/pkg/api"
)

// systemPrompt keeps the backend from emitting markdown. The generated
// text goes straight into the post editor as plain prose.
const systemPrompt = `You are a professional content writer.
You MUST return plain text only.

Rules:
- Do NOT use markdown
- Do NOT use headings (no ##, ###)
- Do NOT use bullet points or numbering
- Do NOT use bold, italics, or symbols
- Write in clear paragraphs like a blog article`

// Client performs HTTP requests against an OpenAI-compatible Chat
// Completions backend.
type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	model      string
}

// NewClient creates a Client for an OpenAI-compatible backend.
func NewClient(baseURL, apiKey, model string, timeout time.Duration) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		model:      model,
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model    string        `json:"model"`
	Messages []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

type chatErrorResponse struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate produces blog-style content for the given title or
// description. The returned text is trimmed plain prose.
func (c *Client) Generate(ctx context.Context, title string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: "Generate informative blog-style content based on the following title or description:\n" + title},
		},
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", api.NewServerError(fmt.Sprintf("failed to marshal request: %s", err.Error()))
	}

	url := c.baseURL + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", api.NewServerError(fmt.Sprintf("failed to create HTTP request: %s", err.Error()))
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	httpResp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", api.NewServerError(fmt.Sprintf("backend connection error: %s", err.Error()))
	}
	defer httpResp.Body.Close()

	if httpResp.StatusCode < 200 || httpResp.StatusCode >= 300 {
		return "", mapHTTPError(httpResp)
	}

	var chatResp chatResponse
	if err := json.NewDecoder(httpResp.Body).Decode(&chatResp); err != nil {
		return "", api.NewServerError(fmt.Sprintf("failed to parse backend response: %s", err.Error()))
	}
	if len(chatResp.Choices) == 0 {
		return "", api.NewServerError("backend returned no choices")
	}

	return strings.TrimSpace(chatResp.Choices[0].Message.Content), nil
}

// Close releases client resources.
func (c *Client) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}

// mapHTTPError converts a non-2xx backend response into an api.Error,
// pulling the backend's message out of the body when one is present.
func mapHTTPError(resp *http.Response) *api.Error {
	message := extractErrorMessage(resp.Body)
	if message == "" {
		message = fmt.Sprintf("backend error (HTTP %d)", resp.StatusCode)
	}
	return api.NewServerError(message)
}

// extractErrorMessage tries to parse the body as a chat error response.
func extractErrorMessage(body io.Reader) string {
	if body == nil {
		return ""
	}

	data, err := io.ReadAll(io.LimitReader(body, 4096))
	if err != nil || len(data) == 0 {
		return ""
	}

	var errResp chatErrorResponse
	if err := json.Unmarshal(data, &errResp); err == nil && errResp.Error.Message != "" {
		return errResp.Error.Message
	}

	return ""
}
