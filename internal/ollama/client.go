// Package ollama is a minimal client for a local Ollama model service.
package ollama

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	// DefaultPingTimeout bounds the reachability check
	DefaultPingTimeout = 2 * time.Second

	// DefaultRequestTimeout bounds a single generation request
	DefaultRequestTimeout = 30 * time.Second

	// FormatJSON asks the model to emit a JSON document
	FormatJSON = "json"
)

// GenerateRequest is the body of POST /api/generate.
type GenerateRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Stream bool   `json:"stream"`
	Format string `json:"format,omitempty"`
}

// GenerateResponse is the non-streaming response of /api/generate.
type GenerateResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Done     bool   `json:"done"`
}

// Options configures a Client.
type Options struct {
	Endpoint       string
	Model          string
	PingTimeout   time.Duration
	RequestTimeout time.Duration
}

// Client talks to the Ollama HTTP API.
type Client struct {
	endpoint       string
	model          string
	pingTimeout   time.Duration
	requestTimeout time.Duration
	httpClient     *http.Client
	logger         *zap.Logger
}

// NewClient creates a client. Zero timeouts take the defaults.
func NewClient(opts Options, logger *zap.Logger) *Client {
	if opts.PingTimeout <= 0 {
		opts.PingTimeout = DefaultPingTimeout
	}
	if opts.RequestTimeout <= 0 {
		opts.RequestTimeout = DefaultRequestTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		endpoint:       strings.TrimRight(opts.Endpoint, "/"),
		model:          opts.Model,
		pingTimeout:   opts.PingTimeout,
		requestTimeout: opts.RequestTimeout,
		httpClient:     &http.Client{},
		logger:         logger,
	}
}

// Endpoint returns the base URL of the service
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Model returns the configured model name
func (c *Client) Model() string {
	return c.model
}

// Ping checks that the service answers GET /api/tags with 200 within the ping timeout.
func (c *Client) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, c.pingTimeout)
	defer cancel()

	resp, err := c.do(ctx, http.MethodGet, c.endpoint+"/api/tags", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &APIError{Status: resp.StatusCode, Message: "reachability check failed"}
	}
	return nil
}

// Generate sends a single non-streaming prompt and returns the model's response text.
func (c *Client) Generate(ctx context.Context, prompt, format string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.requestTimeout)
	defer cancel()

	req := &GenerateRequest{
		Model:  c.model,
		Prompt: prompt,
		Stream: false,
		Format: format,
	}

	var resp GenerateResponse
	if err := c.doJSON(ctx, http.MethodPost, c.endpoint+"/api/generate", req, &resp); err != nil {
		return "", fmt.Errorf("generate: %w", err)
	}

	c.logger.Debug("model responded",
		zap.String("model", c.model),
		zap.Int("prompt_chars", len(prompt)),
		zap.Int("response_chars", len(resp.Response)))

	return resp.Response, nil
}

func (c *Client) do(ctx context.Context, method, url string, body io.Reader) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute request: %w", err)
	}
	return resp, nil
}

func (c *Client) doJSON(ctx context.Context, method, url string, reqBody, respBody interface{}) error {
	var body io.Reader
	if reqBody != nil {
		data, err := json.Marshal(reqBody)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.do(ctx, method, url, body)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if respBody != nil {
		if err := json.NewDecoder(resp.Body).Decode(respBody); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// APIError represents a non-success response from the service.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("ollama error (%d): %s", e.Status, e.Message)
}

func decodeError(resp *http.Response) error {
	var errResp struct {
		Error string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&errResp); err != nil || errResp.Error == "" {
		return &APIError{Status: resp.StatusCode, Message: fmt.Sprintf("HTTP %d", resp.StatusCode)}
	}
	return &APIError{Status: resp.StatusCode, Message: errResp.Error}
}
