package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"tubenote/internal/services"
)

const (
	defaultBaseURL     = "https://generativelanguage.googleapis.com/v1beta"
	defaultModel       = "gemini-2.5-flash"
	defaultHTTPTimeout = 60 * time.Second
)

// Config captures the runtime settings required to talk to the Gemini API.
type Config struct {
	APIKey         string
	BaseURL        string
	Model          string
	TimeoutSeconds int
}

// Client wraps the Gemini generateContent API.
type Client struct {
	cfg        Config
	httpClient *http.Client
}

// Option customizes the client.
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithBaseURL overrides the default API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.cfg.BaseURL = strings.TrimRight(base, "/")
		}
	}
}

// NewClient constructs a Gemini client using the supplied configuration.
func NewClient(cfg Config, opts ...Option) *Client {
	timeout := defaultHTTPTimeout
	if cfg.TimeoutSeconds > 0 {
		timeout = time.Duration(cfg.TimeoutSeconds) * time.Second
	}
	client := &Client{
		cfg: Config{
			APIKey:         strings.TrimSpace(cfg.APIKey),
			BaseURL:        strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
			Model:          strings.TrimSpace(cfg.Model),
			TimeoutSeconds: cfg.TimeoutSeconds,
		},
		httpClient: &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(client)
	}
	if client.cfg.BaseURL == "" {
		client.cfg.BaseURL = defaultBaseURL
	}
	if client.cfg.Model == "" {
		client.cfg.Model = defaultModel
	}
	if client.httpClient == nil {
		client.httpClient = &http.Client{Timeout: timeout}
	}
	return client
}

// Envelope is the raw top-level response returned by the API, before any
// content extraction. Non-2xx responses that decode into an envelope with a
// populated Error are returned as-is so the extractor can classify them.
type Envelope struct {
	Candidates []Candidate `json:"candidates"`
	Error      *APIError   `json:"error"`
}

// Candidate is one generated alternative inside the envelope.
type Candidate struct {
	Content Content `json:"content"`
}

// Content holds the generated parts of a candidate.
type Content struct {
	Parts []Part `json:"parts"`
}

// Part carries one span of generated text.
type Part struct {
	Text string `json:"text"`
}

// APIError is the vendor-level error payload carried by an envelope.
type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Text returns the generated text at candidates[0].content.parts[0].text,
// or the empty string when that path is absent.
func (e Envelope) Text() string {
	if len(e.Candidates) == 0 {
		return ""
	}
	parts := e.Candidates[0].Content.Parts
	if len(parts) == 0 {
		return ""
	}
	return parts[0].Text
}

type generateRequest struct {
	Contents []requestContent `json:"contents"`
}

type requestContent struct {
	Parts []Part `json:"parts"`
}

// Generate sends a prompt to the generateContent endpoint and returns the raw
// response envelope. A missing API key fails before any network call.
func (c *Client) Generate(ctx context.Context, prompt string) (Envelope, error) {
	var empty Envelope
	if strings.TrimSpace(prompt) == "" {
		return empty, services.Wrap(services.ErrInvalidInput, "gemini", "generate", "prompt required", nil)
	}
	if c.cfg.APIKey == "" {
		return empty, services.Wrap(services.ErrUnconfigured, "gemini", "generate",
			"api key required (set GEMINI_API_KEY or gemini.api_key)", nil)
	}

	endpoint, err := url.JoinPath(c.cfg.BaseURL, "models", c.cfg.Model+":generateContent")
	if err != nil {
		return empty, services.Wrap(services.ErrUpstream, "gemini", "build url", "", err)
	}
	endpoint += "?key=" + url.QueryEscape(c.cfg.APIKey)

	payload := generateRequest{
		Contents: []requestContent{
			{Parts: []Part{{Text: prompt}}},
		},
	}
	encoded, err := json.Marshal(payload)
	if err != nil {
		return empty, services.Wrap(services.ErrUpstream, "gemini", "encode request", "", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(encoded))
	if err != nil {
		return empty, services.Wrap(services.ErrUpstream, "gemini", "build request", "", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if isTimeout(err) {
			return empty, services.Wrap(services.ErrTimeout, "gemini", "generate",
				fmt.Sprintf("no response within %s", c.timeoutDuration()), err)
		}
		return empty, services.Wrap(services.ErrUpstream, "gemini", "generate", "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		if isTimeout(err) {
			return empty, services.Wrap(services.ErrTimeout, "gemini", "read response",
				fmt.Sprintf("no response within %s", c.timeoutDuration()), err)
		}
		return empty, services.Wrap(services.ErrUpstream, "gemini", "read response", "", err)
	}

	var envelope Envelope
	if err := json.Unmarshal(body, &envelope); err != nil {
		return empty, services.Wrap(services.ErrUpstream, "gemini", "decode response",
			fmt.Sprintf("http %d: %s", resp.StatusCode, snippet(body)), err)
	}
	if resp.StatusCode >= http.StatusMultipleChoices && envelope.Error == nil {
		return empty, services.Wrap(services.ErrUpstream, "gemini", "generate",
			fmt.Sprintf("http %d: %s", resp.StatusCode, snippet(body)), nil)
	}
	return envelope, nil
}

func (c *Client) timeoutDuration() time.Duration {
	if c == nil || c.httpClient == nil || c.httpClient.Timeout <= 0 {
		return defaultHTTPTimeout
	}
	return c.httpClient.Timeout
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		return true
	}
	return false
}

func snippet(body []byte) string {
	clean := strings.Join(strings.Fields(string(body)), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	if clean == "" {
		return "<empty>"
	}
	return clean
}
