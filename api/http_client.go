// api/http_client.go
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return "unexpected status code: " + e.Status
}

// HTTPClient struct to hold base URL and HTTP client configuration
type HTTPClient struct {
	BaseURL    string
	HTTPClient *http.Client
}

// NewHTTPClient creates a new instance of HTTPClient with the default timeout.
func NewHTTPClient(baseURL string) *HTTPClient {
	return NewHTTPClientWithTimeout(baseURL, 10*time.Second)
}

// NewHTTPClientWithTimeout creates an HTTPClient whose requests give up after timeout.
func NewHTTPClientWithTimeout(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		BaseURL: baseURL,
		HTTPClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Request issues a GET to endpoint with the given query and decodes the JSON
// body into response.
func (c *HTTPClient) Request(ctx context.Context, endpoint string, query url.Values, response interface{}) error {
	res, err := c.do(ctx, endpoint, query)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return fmt.Errorf("read response body: %w", err)
	}

	if response != nil {
		if err := json.Unmarshal(resBody, response); err != nil {
			return fmt.Errorf("decode response from %s: %w", endpoint, err)
		}
	}

	return nil
}

// Download issues a GET to endpoint and streams the body into w, returning
// the number of bytes copied.
func (c *HTTPClient) Download(ctx context.Context, endpoint string, query url.Values, w io.Writer) (int64, error) {
	res, err := c.do(ctx, endpoint, query)
	if err != nil {
		return 0, err
	}
	defer res.Body.Close()

	n, err := io.Copy(w, res.Body)
	if err != nil {
		return n, fmt.Errorf("copy response body: %w", err)
	}
	return n, nil
}

func (c *HTTPClient) do(ctx context.Context, endpoint string, query url.Values) (*http.Response, error) {
	u := c.BaseURL + endpoint
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}

	res, err := c.HTTPClient.Do(req)
	if err != nil {
		return nil, err
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, res.Body)
		res.Body.Close()
		return nil, &StatusError{StatusCode: res.StatusCode, Status: res.Status, URL: endpoint}
	}

	return res, nil
}
