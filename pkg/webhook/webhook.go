// Package webhook posts hostgrep search results to an HTTP endpoint.
package webhook

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ccollicutt/hostgrep/pkg/output"
)

// DefaultTimeout bounds a single notification request.
const DefaultTimeout = 10 * time.Second

// maxResponseBody caps how much of the endpoint's reply is kept.
const maxResponseBody = 64 * 1024

// Event types.
const (
	EventInitial = "initial"
	EventChanged = "changed"
)

// Event is the JSON payload posted to the endpoint.
type Event struct {
	Type    string         `json:"type"`
	Changed []string       `json:"changed,omitempty"`
	SentAt  time.Time      `json:"sent_at"`
	Report  *output.Report `json:"report"`
}

// Options configures a Client.
type Options struct {
	URL     string
	Token   string        // sent as a bearer token when set
	Timeout time.Duration // DefaultTimeout if zero
}

// Client notifies a single endpoint.
type Client struct {
	httpClient *http.Client
	endpoint   string
	token      string
	timeout    time.Duration
}

// NewClient validates opts and returns a client for the endpoint.
func NewClient(opts Options) (*Client, error) {
	if err := ValidateURL(opts.URL); err != nil {
		return nil, err
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		httpClient: &http.Client{},
		endpoint:   opts.URL,
		token:      opts.Token,
		timeout:    timeout,
	}, nil
}

// ValidateURL reports whether raw is an absolute http or https URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid webhook url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid webhook url %q: scheme must be http or https", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("invalid webhook url %q: missing host", raw)
	}
	return nil
}

// Response is the outcome of one notification.
type Response struct {
	StatusCode int
	Body       string
	Duration   time.Duration
	Error      error
}

// Success reports whether the endpoint accepted the event.
func (r *Response) Success() bool {
	return r.Error == nil && r.StatusCode >= 200 && r.StatusCode < 300
}

// Send posts ev to the endpoint. Failures are reported in the Response.
func (c *Client) Send(ctx context.Context, ev Event) *Response {
	start := time.Now()
	resp := &Response{}
	fail := func(err error) *Response {
		resp.Error = err
		resp.Duration = time.Since(start)
		return resp
	}

	if ev.SentAt.IsZero() {
		ev.SentAt = start
	}
	payload, err := json.Marshal(ev)
	if err != nil {
		return fail(fmt.Errorf("encoding event: %w", err))
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return fail(fmt.Errorf("building request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "hostgrep-webhook")
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(fmt.Errorf("posting event: %w", err))
	}
	defer httpResp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseBody))
	if err != nil {
		return fail(fmt.Errorf("reading response: %w", err))
	}

	resp.StatusCode = httpResp.StatusCode
	resp.Body = string(body)
	resp.Duration = time.Since(start)
	if resp.StatusCode >= 400 {
		resp.Error = fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return resp
}
