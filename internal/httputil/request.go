// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the lookup clients, the
// filename probe and the downloader.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/paimon/pkg/types"
)

// maxDrain bounds how much of an error response body is read before the
// connection is released.
const maxDrain = 64 << 10

// StatusError reports a response whose status code is not 2xx.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("HTTP %d from %s", e.StatusCode, e.URL)
}

// NewClient returns an HTTP client configured with the request timeout.
// Redirects are followed with the default policy.
func NewClient(cfg types.HTTPConfig) *http.Client {
	return &http.Client{Timeout: cfg.Timeout}
}

// NewRequest builds a request carrying the configured User-Agent.
func NewRequest(ctx context.Context, method, url, userAgent string) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if userAgent != "" {
		req.Header.Set("User-Agent", userAgent)
	}
	return req, nil
}

// Do sends req and returns the response if its status is 2xx. For any other
// status the body is drained and closed and a *StatusError is returned.
// The caller closes the body of a successful response.
func Do(client *http.Client, req *http.Request) (*http.Response, error) {
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrain))
		resp.Body.Close()
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: req.URL.String()}
	}
	return resp, nil
}

// Get is NewRequest followed by Do for a GET request.
func Get(ctx context.Context, client *http.Client, url, userAgent string) (*http.Response, error) {
	req, err := NewRequest(ctx, http.MethodGet, url, userAgent)
	if err != nil {
		return nil, err
	}
	return Do(client, req)
}
