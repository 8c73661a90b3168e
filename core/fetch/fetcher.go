// Package fetch implements the Fetcher interface.
// It performs HTTP GET requests and reports the final URL after redirects,
// which the detector uses as the base for resolving links.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/navpipe/core"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "navpipe/1.0 (https://github.com/gaurav-prasanna/navpipe)"

	// DefaultMaxBytes caps how much of a response body is read.
	DefaultMaxBytes int64 = 10 << 20
)

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client   *http.Client
	maxBytes int64
}

// New creates an HTTPFetcher that reads at most maxBytes of each body.
// A non-positive maxBytes selects DefaultMaxBytes.
func New(maxBytes int64) *HTTPFetcher {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	return &HTTPFetcher{
		client:   &http.Client{Timeout: defaultTimeout},
		maxBytes: maxBytes,
	}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", defaultUserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}
	if int64(len(body)) > f.maxBytes {
		return nil, fmt.Errorf("response for %s exceeds %d bytes", url, f.maxBytes)
	}

	final := url
	if resp.Request != nil && resp.Request.URL != nil {
		final = resp.Request.URL.String()
	}

	return &core.FetchResult{
		URL:        final,
		StatusCode: resp.StatusCode,
		HTML:       string(body),
	}, nil
}
