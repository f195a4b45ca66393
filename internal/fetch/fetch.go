// Package fetch provides the shared outbound HTTP client used by all source
// adapters. One Client is created per aggregation run and handed to each
// adapter; adapters never construct their own http.Client.
package fetch

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// DefaultTimeout is the default per-request HTTP timeout.
const DefaultTimeout = 15 * time.Second

// DefaultUserAgent mimics a desktop browser; several job boards serve an
// empty shell to unknown agents.
const DefaultUserAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// maxBodyBytes caps how much of a response body is read, so a single
// misbehaving source cannot exhaust memory.
const maxBodyBytes = 4 << 20

// Result holds the response from a URL fetch.
type Result struct {
	URL         string
	Body        string
	ContentType string
	StatusCode  int
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures the shared client.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Headers   map[string]string
}

// DefaultOptions returns sensible defaults for fetching.
func DefaultOptions() *Options {
	return &Options{
		Timeout:   DefaultTimeout,
		UserAgent: DefaultUserAgent,
		Headers: map[string]string{
			"Accept":          "text/html,application/xhtml+xml,application/xml;q=0.9,application/json;q=0.9,*/*;q=0.8",
			"Accept-Language": "en-US,en;q=0.5",
		},
	}
}

// Client is the shared HTTP client configuration. It is safe for concurrent
// use by multiple adapters.
type Client struct {
	http      *http.Client
	userAgent string
	headers   map[string]string
}

// NewClient creates a Client from the given options.
func NewClient(opts *Options) *Client {
	if opts == nil {
		opts = DefaultOptions()
	}
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	userAgent := opts.UserAgent
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	return &Client{
		http:      &http.Client{Timeout: timeout},
		userAgent: userAgent,
		headers:   opts.Headers,
	}
}

// Close releases pooled network resources.
func (c *Client) Close() {
	c.http.CloseIdleConnections()
}

// Get retrieves the content at urlStr. A non-200 status returns both the
// Result and an *Error so callers can decide how much to salvage.
func (c *Client) Get(ctx context.Context, urlStr string) (*Result, error) {
	return c.do(ctx, http.MethodGet, urlStr, nil, nil)
}

// GetJSON retrieves urlStr and decodes the response body into v.
func (c *Client) GetJSON(ctx context.Context, urlStr string, v any) error {
	res, err := c.do(ctx, http.MethodGet, urlStr, nil, map[string]string{"Accept": "application/json"})
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(res.Body), v); err != nil {
		return &Error{URL: urlStr, Message: "failed to decode JSON response", Cause: err}
	}
	return nil
}

// PostJSON sends body as JSON to urlStr with extra headers and decodes the
// response into v.
func (c *Client) PostJSON(ctx context.Context, urlStr string, body any, headers map[string]string, v any) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return &Error{URL: urlStr, Message: "failed to encode request body", Cause: err}
	}
	merged := map[string]string{"Content-Type": "application/json"}
	for k, val := range headers {
		merged[k] = val
	}
	res, err := c.do(ctx, http.MethodPost, urlStr, payload, merged)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(res.Body), v); err != nil {
		return &Error{URL: urlStr, Message: "failed to decode JSON response", Cause: err}
	}
	return nil
}

// Document retrieves urlStr and parses the body as an HTML document.
func (c *Client) Document(ctx context.Context, urlStr string) (*goquery.Document, error) {
	res, err := c.Get(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	return ParseDocument(res.Body)
}

// ParseDocument parses raw HTML into a goquery document.
func ParseDocument(html string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

func (c *Client) do(ctx context.Context, method, urlStr string, body []byte, headers map[string]string) (*Result, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return nil, &Error{URL: urlStr, Message: "invalid URL", Cause: err}
	}

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, urlStr, reader)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to create request", Cause: err}
	}

	req.Header.Set("User-Agent", c.userAgent)
	for key, value := range c.headers {
		req.Header.Set(key, value)
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         urlStr,
		Body:        string(bodyBytes),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: urlStr, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}

	return result, nil
}
