package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// completionTemperature matches what the client app always requested.
const completionTemperature = 0.7

// Client forwards chat completion requests to a provider endpoint.
type Client struct {
	httpClient *http.Client
	logger     *slog.Logger

	// baseURL overrides the resolved provider URL when non-empty (tests).
	baseURL string
}

// NewClient creates a chat proxy client. The timeout bounds the full
// round trip to the upstream provider.
func NewClient(timeout time.Duration, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		logger:     logger,
	}
}

// ChatRequest describes one forwarded exchange.
type ChatRequest struct {
	Provider     string
	Model        string
	APIKey       string
	SystemPrompt string
	UserMessage  string
}

// Usage is the normalized token accounting extracted from a provider
// response. Field names follow the wire format returned to clients.
type Usage struct {
	InputTokens  int `json:"input_tokens"`
	OutputTokens int `json:"output_tokens"`
	TotalTokens  int `json:"total_tokens"`
}

// ChatResponse is the decoded provider reply. Usage is nil when the
// provider reported none.
type ChatResponse struct {
	Message string
	Usage   *Usage
}

// UpstreamError reports a non-200 status from the provider.
type UpstreamError struct {
	Provider   string
	StatusCode int
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("Failed to get response from %s API (Status: %d)", e.Provider, e.StatusCode)
}

// completionRequest is the JSON body posted to /chat/completions. All
// enumerated providers accept this OpenAI-compatible shape.
type completionRequest struct {
	Model       string              `json:"model"`
	Messages    []completionMessage `json:"messages"`
	Temperature float64             `json:"temperature"`
}

type completionMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// CreateChatCompletion posts the exchange to the provider's chat
// completion endpoint and decodes the provider-specific response shape.
func (c *Client) CreateChatCompletion(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	baseURL, headers := Resolve(req.Provider, req.APIKey)
	if c.baseURL != "" {
		baseURL = c.baseURL
	}

	body, err := json.Marshal(completionRequest{
		Model: req.Model,
		Messages: []completionMessage{
			{Role: "system", Content: req.SystemPrompt},
			{Role: "user", Content: req.UserMessage},
		},
		Temperature: completionTemperature,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range headers {
		httpReq.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		c.logger.Warn("provider returned error",
			"provider", req.Provider, "status", resp.StatusCode, "body", truncate(string(raw), 500))
		return nil, &UpstreamError{Provider: req.Provider, StatusCode: resp.StatusCode}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return decoderFor(req.Provider)(raw)
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
