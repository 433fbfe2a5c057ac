// Package base provides the shared HTTP fetcher for the Wikipedia API.
package base

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	apierrors "github.com/olgasafonova/wikipedia-mcp-server/internal/errors"
	"github.com/olgasafonova/wikipedia-mcp-server/metrics"
	"github.com/olgasafonova/wikipedia-mcp-server/tracing"
	"go.opentelemetry.io/otel/attribute"
)

// DefaultUserAgent identifies this server to Wikipedia
const DefaultUserAgent = "Wikipedia MCP Server/1.0.0 (https://github.com/olgasafonova/wikipedia-mcp-server)"

// Client performs JSON GET requests against the Wikipedia API. It holds no
// per-request state and is safe for concurrent use.
type Client struct {
	HTTPClient *http.Client
	Logger     *slog.Logger
	UserAgent  string
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(c *http.Client) ClientOption {
	return func(client *Client) {
		client.HTTPClient = c
	}
}

// WithLogger sets a custom logger
func WithLogger(l *slog.Logger) ClientOption {
	return func(client *Client) {
		client.Logger = l
	}
}

// WithUserAgent sets the User-Agent header value
func WithUserAgent(ua string) ClientOption {
	return func(client *Client) {
		if ua != "" {
			client.UserAgent = ua
		}
	}
}

// WithTimeout sets an overall request timeout. Zero keeps the transport default.
func WithTimeout(d time.Duration) ClientOption {
	return func(client *Client) {
		client.HTTPClient = newHTTPClient(d)
	}
}

// NewClient creates a new base client with default settings
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		HTTPClient: newHTTPClient(0),
		Logger:     slog.Default(),
		UserAgent:  DefaultUserAgent,
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// RequestConfig describes a single API request
type RequestConfig struct {
	URL       string
	Lang      string // language subdomain, for metrics and spans
	Operation string // search, article or random
}

// GetJSON issues one GET request and decodes the JSON body into out.
// Non-2xx responses fail with *errors.HTTPError, malformed bodies with
// *errors.DecodeError. Nothing is retried.
func (c *Client) GetJSON(ctx context.Context, cfg RequestConfig, out any) (err error) {
	ctx, span := tracing.StartSpan(ctx, "wikipedia.api."+cfg.Operation)
	defer span.End()
	tracing.AddWikipediaAttributes(span, cfg.Lang, cfg.Operation)

	start := time.Now()
	defer func() {
		duration := time.Since(start).Seconds()
		metrics.RecordAPICall(cfg.Lang, cfg.Operation, duration, err == nil, apierrors.Code(err))
		tracing.SetStatus(span, err)
		if err != nil {
			c.Logger.Warn("Wikipedia API request failed",
				"operation", cfg.Operation,
				"lang", cfg.Lang,
				"url", cfg.URL,
				"error", err)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, cfg.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", c.UserAgent)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}

	body, err := readAndClose(resp)
	span.SetAttributes(
		attribute.Int("http.response.status_code", resp.StatusCode),
		attribute.Int("http.response.body.size", len(body)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return apierrors.NewHTTPError(resp.StatusCode, reasonPhrase(resp), cfg.URL)
	}
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return &apierrors.DecodeError{Err: err}
	}

	c.Logger.Debug("Wikipedia API request completed",
		"operation", cfg.Operation,
		"lang", cfg.Lang,
		"status", resp.StatusCode,
		"bytes", len(body))
	return nil
}

// reasonPhrase extracts "Service Unavailable" from "503 Service Unavailable"
func reasonPhrase(resp *http.Response) string {
	return strings.TrimSpace(strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)))
}

// readAndClose reads the response body and closes it
func readAndClose(resp *http.Response) ([]byte, error) {
	body, err := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	return body, err
}

// newHTTPClient creates an HTTP client with connection reuse tuned for a single API host per language
func newHTTPClient(timeout time.Duration) *http.Client {
	transport := &http.Transport{
		Proxy:               http.ProxyFromEnvironment,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     120 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		DisableCompression:  false,
		ForceAttemptHTTP2:   true,
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
