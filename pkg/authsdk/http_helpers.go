package authsdk

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

// maxResponseBody caps how much of a token service answer we read.
const maxResponseBody = 1 << 20

// url builds a complete URL by appending the path to the base URL.
func (c *Client) url(path string) string {
	return c.BaseURL + path
}

// postJSON sends body as JSON to path and decodes the answer into target.
func (c *Client) postJSON(
	ctx context.Context,
	path string,
	body any,
	headers map[string]string,
	target any,
) error {
	var payload io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("authsdk: encode request: %w", err)
		}
		payload = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url(path), payload)
	if err != nil {
		return fmt.Errorf("authsdk: create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, value := range headers {
		req.Header.Set(key, value)
	}

	resp, err := c.do(req)
	if err != nil {
		return err
	}
	return decodeJSON(resp, target, http.StatusOK)
}

// get performs a GET and decodes the answer whatever the status, which suits
// health probes that report 503 with a body.
func (c *Client) get(ctx context.Context, path string, target any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url(path), nil)
	if err != nil {
		return 0, fmt.Errorf("authsdk: create request: %w", err)
	}

	resp, err := c.do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBody)).Decode(target); err != nil {
		return resp.StatusCode, fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}
	return resp.StatusCode, nil
}

func (c *Client) do(req *http.Request) (*http.Response, error) {
	if c.APIKey != "" {
		req.Header.Set(ServiceKeyHeader, c.APIKey)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnavailable, err)
	}
	return resp, nil
}

// decodeJSON decodes a JSON response into the target interface.
// Returns a typed *Error if the response indicates an error.
func decodeJSON(resp *http.Response, target any, expectedStatus int) error {
	defer resp.Body.Close()

	// Read body once for both error parsing and success decoding
	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return fmt.Errorf("%w: read response body: %w", ErrUnavailable, err)
	}

	if resp.StatusCode != expectedStatus {
		return parseErrorResponse(resp, bodyBytes)
	}

	if err := json.Unmarshal(bodyBytes, target); err != nil {
		return fmt.Errorf("%w: decode response: %w", ErrUnavailable, err)
	}

	return nil
}
