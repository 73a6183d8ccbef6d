package bookstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/time/rate"
)

// Service defines the bookstore operations the UI depends on.
// It is implemented by *Client and can be wrapped or faked in tests.
type Service interface {
	FetchBooks(ctx context.Context) ([]Book, error)
	FetchNewBooks(ctx context.Context) ([]Book, error)
	FetchBook(ctx context.Context, id int64) (*Book, error)
	DeleteBook(ctx context.Context, id int64) error
}

// Ensure Client implements Service at compile time.
var _ Service = (*Client)(nil)

// StatusError reports a non-success HTTP response.
type StatusError struct {
	Path       string
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("api %s returned status %d", e.Path, e.StatusCode)
}

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool {
	var statusErr *StatusError
	return errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound
}

// Client talks to the bookstore HTTP API.
type Client struct {
	baseURL   *url.URL
	http      *http.Client
	userAgent string
	limiter   *rate.Limiter
	metrics   *Metrics
}

const (
	defaultAPIURL     = "http://localhost:8080"
	defaultUserAgent  = "leaflet/0.1"
	defaultTimeout    = 5 * time.Second
	defaultRatePerSec = 5

	booksPath    = "/api/v1/books"
	newBooksPath = "/api/v1/books/new"
	healthPath   = "/health"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Option customises a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http.Timeout = d
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero or negative disables limiting.
func WithRateLimit(perSecond int) Option {
	return func(c *Client) {
		if perSecond <= 0 {
			c.limiter = nil
			return
		}
		c.limiter = rate.NewLimiter(rate.Every(time.Second/time.Duration(perSecond)), perSecond)
	}
}

// WithMetrics records request metrics on m.
func WithMetrics(m *Metrics) Option {
	return func(c *Client) {
		c.metrics = m
	}
}

// WithTransport replaces the HTTP transport.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.http.Transport = rt
	}
}

// NewClient builds a Client for the API rooted at apiURL.
func NewClient(apiURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(apiURL)
	if err != nil {
		return nil, err
	}
	c := &Client{
		baseURL: base,
		http: &http.Client{
			Timeout: defaultTimeout,
		},
		userAgent: defaultUserAgent,
		limiter:   rate.NewLimiter(rate.Every(time.Second/defaultRatePerSec), defaultRatePerSec),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised API root.
func (c *Client) BaseURL() string {
	if c == nil || c.baseURL == nil {
		return ""
	}
	return c.baseURL.String()
}

// FetchBooks retrieves the full catalog.
func (c *Client) FetchBooks(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Book
	if err := c.do(ctx, http.MethodGet, booksPath, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchNewBooks retrieves the most recently added books.
func (c *Client) FetchNewBooks(ctx context.Context) ([]Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	var payload []Book
	if err := c.do(ctx, http.MethodGet, newBooksPath, &payload); err != nil {
		return nil, err
	}
	return payload, nil
}

// FetchBook retrieves a single book by id.
func (c *Client) FetchBook(ctx context.Context, id int64) (*Book, error) {
	if c == nil {
		return nil, fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return nil, fmt.Errorf("book id required")
	}
	var payload Book
	if err := c.do(ctx, http.MethodGet, bookPath(id), &payload); err != nil {
		return nil, err
	}
	return &payload, nil
}

// DeleteBook removes a book by id.
func (c *Client) DeleteBook(ctx context.Context, id int64) error {
	if c == nil {
		return fmt.Errorf("client is nil")
	}
	if id <= 0 {
		return fmt.Errorf("book id required")
	}
	return c.do(ctx, http.MethodDelete, bookPath(id), nil)
}

// Health queries the service health endpoint.
func (c *Client) Health(ctx context.Context) (HealthResponse, error) {
	if c == nil {
		return HealthResponse{}, fmt.Errorf("client is nil")
	}
	var payload HealthResponse
	if err := c.do(ctx, http.MethodGet, healthPath, &payload); err != nil {
		return payload, err
	}
	return payload, nil
}

func bookPath(id int64) string {
	return booksPath + "/" + strconv.FormatInt(id, 10)
}

func (c *Client) do(ctx context.Context, method, path string, dest any) error {
	rel := &url.URL{Path: path}
	return c.doURL(ctx, method, rel, dest)
}

func (c *Client) doURL(ctx context.Context, method string, rel *url.URL, dest any) error {
	endpoint := method + " " + endpointLabel(rel.Path)
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			c.metrics.IncError(endpoint, "rate_limit")
			return fmt.Errorf("wait for rate limiter: %w", err)
		}
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	c.metrics.IncRequest(endpoint)
	start := time.Now()
	resp, err := c.http.Do(req)
	c.metrics.ObserveDuration(endpoint, time.Since(start))
	if err != nil {
		c.metrics.IncError(endpoint, "transport")
		return fmt.Errorf("execute request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= 400 {
		c.metrics.IncError(endpoint, "status_"+strconv.Itoa(resp.StatusCode))
		return &StatusError{Path: rel.String(), StatusCode: resp.StatusCode}
	}
	if dest == nil {
		return nil
	}
	decoder := json.NewDecoder(resp.Body)
	if err := decoder.Decode(dest); err != nil {
		c.metrics.IncError(endpoint, "decode")
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// endpointLabel collapses numeric path segments so metrics stay low-cardinality.
func endpointLabel(path string) string {
	parts := strings.Split(path, "/")
	for i, part := range parts {
		if part == "" {
			continue
		}
		if _, err := strconv.ParseInt(part, 10, 64); err == nil {
			parts[i] = ":id"
		}
	}
	return strings.Join(parts, "/")
}

func parseBaseURL(apiURL string) (*url.URL, error) {
	trimmed := strings.TrimSpace(apiURL)
	if trimmed == "" {
		trimmed = defaultAPIURL
	}
	if !strings.Contains(trimmed, "://") {
		trimmed = "http://" + trimmed
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse api url %q: %w", apiURL, err)
	}
	if u.Host == "" {
		return nil, fmt.Errorf("api url %q has no host", apiURL)
	}
	u.Path = ""
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
