package authsdk

import (
	"net/http"
	"strings"
	"time"
)

// DefaultTimeout bounds every call when no other timeout is configured.
const DefaultTimeout = 5 * time.Second

// Client talks to the Folio token service.
type Client struct {
	BaseURL    string
	HTTPClient *http.Client

	// APIKey is sent as X-Service-Key when non-empty.
	APIKey string
}

// Option configures a Client.
type Option func(*Client)

// WithTimeout sets the per-request timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.HTTPClient.Timeout = d }
}

// WithAPIKey sets the shared service key.
func WithAPIKey(key string) Option {
	return func(c *Client) { c.APIKey = key }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.HTTPClient = hc }
}

// NewClient creates a token service client.
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		BaseURL: strings.TrimSuffix(baseURL, "/"),
		HTTPClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
