package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

// DefaultEndpoint is the default chat endpoint.
const DefaultEndpoint = "http://localhost:8000/chat"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 32 << 20

// Client is a chat backend client. It makes exactly one attempt per call.
type Client struct {
	endpoint   string
	httpClient *http.Client
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithEndpoint sets the chat endpoint URL.
func WithEndpoint(endpoint string) Option {
	return func(c *Client) {
		c.endpoint = strings.TrimSpace(endpoint)
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

// New creates a new chat backend client.
func New(opts ...Option) *Client {
	c := &Client{
		endpoint:   DefaultEndpoint,
		httpClient: http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Endpoint returns the configured endpoint.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Chat sends the conversation for account and returns the backend reply.
func (c *Client) Chat(ctx context.Context, account string, messages []Message) (*ChatResponse, error) {
	if len(messages) == 0 {
		return nil, fmt.Errorf("messages must not be empty")
	}
	body, err := json.Marshal(ChatRequest{Account: account, Messages: messages})
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	var resp ChatResponse
	if err := c.post(ctx, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Ask sends a single question with no history.
func (c *Client) Ask(ctx context.Context, account, question string) (*ChatResponse, error) {
	return c.Chat(ctx, account, []Message{UserMessage(question)})
}

// post performs a POST request, validates the envelope and decodes the
// response.
func (c *Client) post(ctx context.Context, body []byte, result any) error {
	start := time.Now()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.Debug("HTTP request failed",
			slog.String("method", http.MethodPost),
			slog.String("endpoint", c.endpoint),
			slog.String("error", err.Error()),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return fmt.Errorf("executing request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := c.parseError(resp)
		slog.Debug("HTTP request returned error",
			slog.String("method", http.MethodPost),
			slog.String("endpoint", c.endpoint),
			slog.Int("status", resp.StatusCode),
			slog.Int64("duration_ms", time.Since(start).Milliseconds()),
		)
		return apiErr
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("reading response: %w", err)
	}
	if err := validateEnvelope(data); err != nil {
		return err
	}
	if err := json.Unmarshal(data, result); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}

	slog.Debug("HTTP request completed",
		slog.String("method", http.MethodPost),
		slog.String("endpoint", c.endpoint),
		slog.Int("status", resp.StatusCode),
		slog.Int("bytes", len(data)),
		slog.Int64("duration_ms", time.Since(start).Milliseconds()),
	)

	return nil
}

// parseError extracts an APIError from an error response.
func (c *Client) parseError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	var errResp errorResponse
	if json.Unmarshal(body, &errResp) == nil {
		if errResp.Error != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Error}
		}
		if errResp.Detail != "" {
			return &APIError{StatusCode: resp.StatusCode, Message: errResp.Detail}
		}
	}
	msg := strings.TrimSpace(string(body))
	if msg == "" {
		msg = http.StatusText(resp.StatusCode)
	}
	return &APIError{StatusCode: resp.StatusCode, Message: msg}
}
