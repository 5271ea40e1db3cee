// Package tripapi is the client for the remote travel API: the conversational
// intake endpoint and flight search.
package tripapi

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

	"github.com/prometheus/client_golang/prometheus"
)

// Client issues JSON requests against a base URL. It never retries and sets
// no timeout of its own; the caller's context bounds each call.
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics
}

type Option func(*clientOptions)

type clientOptions struct {
	httpClient *http.Client
	logger     *slog.Logger
	registerer prometheus.Registerer
}

func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) { o.httpClient = hc }
}

func WithLogger(logger *slog.Logger) Option {
	return func(o *clientOptions) { o.logger = logger }
}

// WithRegisterer registers the client's collectors. Without it the client
// still counts, but nothing is exported.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *clientOptions) { o.registerer = reg }
}

func NewClient(baseURL string, opts ...Option) *Client {
	o := clientOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.httpClient == nil {
		o.httpClient = &http.Client{}
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: o.httpClient,
		logger:     o.logger,
		metrics:    newMetrics(o.registerer),
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

// Get issues GET {baseURL}/{endpoint} and decodes the JSON body into out.
func (c *Client) Get(ctx context.Context, endpoint string, out any) error {
	return c.do(ctx, http.MethodGet, endpoint, nil, out, msgFetchFailed)
}

// Post issues POST {baseURL}/{endpoint} with body encoded as JSON and decodes
// the JSON response into out.
func (c *Client) Post(ctx context.Context, endpoint string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return fmt.Errorf("marshal request: %w", err)
	}
	return c.do(ctx, http.MethodPost, endpoint, data, out, msgSendFailed)
}

func (c *Client) do(ctx context.Context, method, endpoint string, body []byte, out any, failMsg string) error {
	endpoint = strings.TrimLeft(endpoint, "/")
	label := metricLabel(endpoint)
	start := time.Now()
	defer func() {
		c.metrics.latency.WithLabelValues(label, method).Observe(time.Since(start).Seconds())
	}()

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+"/"+endpoint, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.metrics.requests.WithLabelValues(label, method, "transport_error").Inc()
		c.logger.Warn("Trip API call failed", "method", method, "endpoint", endpoint, "error", err)
		return &Error{Method: method, Endpoint: endpoint, Message: failMsg, err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		c.metrics.requests.WithLabelValues(label, method, "transport_error").Inc()
		return &Error{Method: method, Endpoint: endpoint, Message: failMsg, err: fmt.Errorf("read response: %w", err)}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.metrics.requests.WithLabelValues(label, method, "http_error").Inc()
		c.logger.Warn("Trip API returned error status",
			"method", method,
			"endpoint", endpoint,
			"status", resp.StatusCode,
			"body", truncate(string(respBody), 256))
		return &Error{Method: method, Endpoint: endpoint, Status: resp.StatusCode, Message: failMsg}
	}

	if out != nil {
		if err := json.Unmarshal(respBody, out); err != nil {
			c.metrics.requests.WithLabelValues(label, method, "decode_error").Inc()
			return &Error{Method: method, Endpoint: endpoint, Message: failMsg, err: fmt.Errorf("unmarshal response: %w", err)}
		}
	}

	c.metrics.requests.WithLabelValues(label, method, "ok").Inc()
	c.logger.Debug("Trip API call", "method", method, "endpoint", endpoint, "duration", time.Since(start))
	return nil
}

// metricLabel keeps the first two path segments so path parameters do not
// explode label cardinality.
func metricLabel(endpoint string) string {
	parts := strings.SplitN(endpoint, "/", 3)
	if len(parts) > 2 {
		parts = parts[:2]
	}
	return strings.Join(parts, "/")
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
