// Package client provides a JSON-over-HTTP client for the realapps server,
// used by the CLI.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/raphaelgruber/realapps-go/internal/metrics"
	"github.com/raphaelgruber/realapps-go/internal/storage"
)

// Client talks to the realapps HTTP API on behalf of one user.
type Client struct {
	baseURL    string
	userID     string
	httpClient *http.Client
}

// New creates a client. If baseURL is empty, uses REALAPPS_SERVER_URL or
// defaults to localhost:5001. Timeout is configurable via
// REALAPPS_CLIENT_TIMEOUT (default 2m, chat calls can be slow).
func New(baseURL, userID string) *Client {
	if baseURL == "" {
		baseURL = os.Getenv("REALAPPS_SERVER_URL")
	}
	if baseURL == "" {
		baseURL = "http://localhost:5001"
	}

	timeout := 2 * time.Minute
	if t := os.Getenv("REALAPPS_CLIENT_TIMEOUT"); t != "" {
		if d, err := time.ParseDuration(t); err == nil {
			timeout = d
		}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		userID:  userID,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// apiError is the {"error": ...} body returned for failed requests.
type apiError struct {
	Error string `json:"error"`
}

// do sends one request and decodes the JSON response into out (when
// non-nil). Non-2xx responses become errors carrying the server message.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.userID != "" {
		req.Header.Set("X-User-ID", c.userID)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var apiErr apiError
		if json.Unmarshal(raw, &apiErr) == nil && apiErr.Error != "" {
			return fmt.Errorf("server error (status %d): %s", resp.StatusCode, apiErr.Error)
		}
		return fmt.Errorf("server error (status %d): %s", resp.StatusCode, string(raw))
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Subjects lists all available subjects.
func (c *Client) Subjects(ctx context.Context) ([]string, error) {
	var resp struct {
		Subjects []string `json:"subjects"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/subjects", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Subjects, nil
}

// Applications returns the application examples for one subject.
func (c *Client) Applications(ctx context.Context, subject string) ([]string, error) {
	var resp struct {
		Applications []string `json:"applications"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/applications/"+subject, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Applications, nil
}

// SaveKeyResult is the response of a key save.
type SaveKeyResult struct {
	Message   string `json:"message"`
	UniqueKey string `json:"unique_key"`
}

// SaveKey stores an API key for the client's user.
func (c *Client) SaveKey(ctx context.Context, keyName, provider, apiKey string, creditLimit *float64) (*SaveKeyResult, error) {
	body := map[string]any{
		"key_name": keyName,
		"provider": provider,
		"api_key":  apiKey,
	}
	if creditLimit != nil {
		body["credit_limit"] = *creditLimit
	}

	var resp SaveKeyResult
	if err := c.do(ctx, http.MethodPost, "/api/keys", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Keys lists the user's stored API keys (without secrets).
func (c *Client) Keys(ctx context.Context) ([]storage.FormattedAPIKey, error) {
	var resp struct {
		APIKeys []storage.FormattedAPIKey `json:"api_keys"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/keys", nil, &resp); err != nil {
		return nil, err
	}
	return resp.APIKeys, nil
}

// DeleteKey removes the key record stored under the given provider key.
func (c *Client) DeleteKey(ctx context.Context, provider string) error {
	return c.do(ctx, http.MethodDelete, "/api/keys/"+provider, nil, nil)
}

// History lists the user's conversations, newest first.
func (c *Client) History(ctx context.Context) ([]map[string]any, error) {
	var resp struct {
		Conversations []map[string]any `json:"conversations"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/history", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Conversations, nil
}

// Conversation fetches one conversation record.
func (c *Client) Conversation(ctx context.Context, conversationID string) (map[string]any, error) {
	var resp map[string]any
	if err := c.do(ctx, http.MethodGet, "/api/history/"+conversationID, nil, &resp); err != nil {
		return nil, err
	}
	return resp, nil
}

// DeleteConversation removes one conversation.
func (c *Client) DeleteConversation(ctx context.Context, conversationID string) error {
	return c.do(ctx, http.MethodDelete, "/api/history/"+conversationID, nil, nil)
}

// ClearHistory removes all of the user's conversations.
func (c *Client) ClearHistory(ctx context.Context) error {
	return c.do(ctx, http.MethodDelete, "/api/history", nil, nil)
}

// Usage fetches the server's runtime statistics.
func (c *Client) Usage(ctx context.Context) (*metrics.Snapshot, error) {
	var resp metrics.Snapshot
	if err := c.do(ctx, http.MethodGet, "/api/usage", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
