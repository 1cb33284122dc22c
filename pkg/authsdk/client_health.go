package authsdk

import (
	"context"
	"net/http"
)

// GetLiveness reports whether the Token Service process is up.
func (c *Client) GetLiveness(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/livez")
}

// GetReadiness reports whether the Token Service can sign and verify. A
// degraded service returns the decoded report together with an *Error that
// matches ErrUnavailable.
func (c *Client) GetReadiness(ctx context.Context) (*HealthResponse, error) {
	return c.probe(ctx, "/readyz")
}

func (c *Client) probe(ctx context.Context, path string) (*HealthResponse, error) {
	var health HealthResponse
	code, err := c.get(ctx, path, &health)
	if err != nil {
		return nil, err
	}
	if code != http.StatusOK {
		return &health, &Error{StatusCode: code, Message: health.Status}
	}
	return &health, nil
}
