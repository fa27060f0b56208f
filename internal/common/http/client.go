// internal/common/http/client.go
package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"go.opentelemetry.io/otel/trace"

	"player-api/internal/common/metrics"
	"player-api/internal/common/observability"
)

const maxBodyBytes = 10 << 20

// Response is a fully read upstream response.
type Response struct {
	StatusCode int
	Body       []byte
}

func (r *Response) OK() bool {
	return r.StatusCode == http.StatusOK
}

func (r *Response) DecodeJSON(out interface{}) error {
	if err := json.Unmarshal(r.Body, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// Client is an instrumented JSON client for one upstream provider.
// It is safe for concurrent use once configured.
type Client struct {
	httpClient *http.Client
	provider   string
	header     http.Header
	obs        *observability.Observability
}

// NewClient creates a client; a zero timeout keeps the net/http default (none).
func NewClient(provider string, timeout time.Duration, obs *observability.Observability) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		provider: provider,
		header:   make(http.Header),
		obs:      obs,
	}
}

// SetHeader adds a header sent with every request. Call before first use.
func (c *Client) SetHeader(key, value string) {
	c.header.Set(key, value)
}

// Get issues a GET. A non-nil error means no response was received.
func (c *Client) Get(ctx context.Context, operation, url string) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return c.do(ctx, operation, req)
}

// PostJSON marshals body and POSTs it.
func (c *Client) PostJSON(ctx context.Context, operation, url string, body interface{}) (*Response, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	return c.do(ctx, operation, req)
}

func (c *Client) do(ctx context.Context, operation string, req *http.Request) (*Response, error) {
	for key, values := range c.header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	ctx, span := c.obs.StartSpan(ctx, c.provider, operation)
	req = req.WithContext(ctx)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.record(ctx, span, operation, "error", start, err)
		return nil, fmt.Errorf("making request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		c.record(ctx, span, operation, "error", start, err)
		return nil, fmt.Errorf("reading response: %w", err)
	}

	outcome := "ok"
	if resp.StatusCode != http.StatusOK {
		outcome = "http_" + strconv.Itoa(resp.StatusCode)
	}
	c.record(ctx, span, operation, outcome, start, nil)

	return &Response{StatusCode: resp.StatusCode, Body: body}, nil
}

func (c *Client) record(ctx context.Context, span trace.Span, operation, outcome string, start time.Time, err error) {
	metrics.UpstreamRequestsTotal.WithLabelValues(c.provider, operation, outcome).Inc()
	c.obs.RecordUpstreamCall(ctx, c.provider, operation, outcome, time.Since(start))
	observability.EndSpan(span, outcome, err)
}
