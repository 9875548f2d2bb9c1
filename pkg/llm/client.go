package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// DefaultBaseURL is the OpenAI-compatible API root used when none is configured.
const DefaultBaseURL = "https://api.openai.com/v1"

// Message is one role-tagged entry of a chat completion request.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatClient produces one text completion for an ordered message list.
// An empty return value means the call failed; there is no empty-but-valid
// completion.
type ChatClient interface {
	Complete(ctx context.Context, messages []Message, model string) string
}

// Client calls an OpenAI-compatible chat completion endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	model      string
	httpClient *http.Client
}

// Config wires a chat completion provider.
type Config struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

// NewClient builds a chat client from configuration.
func NewClient(cfg Config) *Client {
	baseURL := strings.TrimSuffix(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 120 * time.Second
	}

	return &Client{
		baseURL:    baseURL,
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Model returns the configured default model identifier.
func (c *Client) Model() string {
	return c.model
}

// Complete posts the messages and returns the completion text. The model
// argument overrides the configured default when non-empty. Any failure
// (request error, non-2xx status, malformed body) returns the empty string;
// callers must treat empty as "no completion produced".
func (c *Client) Complete(ctx context.Context, messages []Message, model string) string {
	if model == "" {
		model = c.model
	}

	body, err := json.Marshal(map[string]any{
		"model":    model,
		"messages": messages,
	})
	if err != nil {
		log.Printf("llm: marshal request: %v", err)
		return ""
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		log.Printf("llm: new request: %v", err)
		return ""
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Printf("llm: request failed: %v", err)
		return ""
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 10<<20))
	if err != nil {
		log.Printf("llm: read response: %v", err)
		return ""
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		log.Printf("llm: completion error %s: %s", resp.Status, truncate(strings.TrimSpace(string(respBody)), 256))
		return ""
	}

	var payload struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(respBody, &payload); err != nil {
		log.Printf("llm: decode response: %v", err)
		return ""
	}
	if len(payload.Choices) == 0 {
		log.Printf("llm: response carried no choices")
		return ""
	}

	return strings.TrimSpace(payload.Choices[0].Message.Content)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
