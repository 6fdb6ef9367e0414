// Package apiclient is a thin REST client for the chat backend.
package apiclient

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

	"github.com/rs/zerolog"

	"chatbot/pkg/types"
)

// DefaultBaseURL is used when neither an explicit URL nor CHATBOT_API_BASE_URL is set.
const DefaultBaseURL = "http://localhost:8000/api"

// BaseURLFromEnv returns CHATBOT_API_BASE_URL or DefaultBaseURL.
func BaseURLFromEnv() string {
	if v := strings.TrimSpace(os.Getenv("CHATBOT_API_BASE_URL")); v != "" {
		return v
	}
	return DefaultBaseURL
}

// Client performs the three backend round trips. It holds no per-request
// state and is safe for concurrent use.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger installs a structured logger.
func WithLogger(l zerolog.Logger) Option { return func(c *Client) { c.log = l } }

// New returns a client for baseURL, e.g. http://localhost:8000/api.
// An empty baseURL falls back to BaseURLFromEnv.
func New(baseURL string, opts ...Option) *Client {
	if strings.TrimSpace(baseURL) == "" {
		baseURL = BaseURLFromEnv()
	}
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    http.DefaultClient,
		log:     zerolog.Nop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// BaseURL returns the normalized base URL.
func (c *Client) BaseURL() string { return c.baseURL }

// FetchHealth calls GET {base}/health.
func (c *Client) FetchHealth(ctx context.Context) (types.HealthResponse, error) {
	var out types.HealthResponse
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

// FetchModels calls GET {base}/mock/models. An empty registry yields an
// empty slice and no error.
func (c *Client) FetchModels(ctx context.Context) ([]types.ModelCard, error) {
	var out []types.ModelCard
	if err := c.do(ctx, http.MethodGet, "/mock/models", nil, &out); err != nil {
		return nil, err
	}
	if out == nil {
		out = []types.ModelCard{}
	}
	return out, nil
}

// CreateChat posts req to {base}/mock/chat and returns the whole chunk stream.
func (c *Client) CreateChat(ctx context.Context, req types.ChatRequest) (types.ChatResponse, error) {
	var out types.ChatResponse
	body, err := json.Marshal(req)
	if err != nil {
		return out, fmt.Errorf("encode chat request: %w", err)
	}
	err = c.do(ctx, http.MethodPost, "/mock/chat", body, &out)
	return out, err
}

type requestIDKey struct{}

// WithRequestID attaches an id that is sent as X-Request-ID.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

func (c *Client) do(ctx context.Context, method, path string, body []byte, out any) error {
	var rdr io.Reader
	if body != nil {
		rdr = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, rdr)
	if err != nil {
		return fmt.Errorf("new request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if id, ok := ctx.Value(requestIDKey{}).(string); ok && id != "" {
		req.Header.Set("X-Request-ID", id)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug().Str("method", method).Str("path", path).Err(err).Msg("request failed")
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Dur("dur", time.Since(start)).Msg("request done")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newStatusError(resp.StatusCode, raw)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return &DecodeError{Path: path, Err: err}
	}
	return nil
}
