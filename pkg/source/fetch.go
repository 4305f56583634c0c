// Package source downloads and caches the raw domain lists
package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// DefaultURL is the registro.br list of domains in the release process
const DefaultURL = "https://registro.br/dominio/lista-processo-liberacao.txt"

// Fetcher supplies the raw text of a domain list
type Fetcher interface {
	Fetch(ctx context.Context) (string, error)
}

// FetchError is returned when the server answers with a non-200 status
type FetchError struct {
	URL        string
	StatusCode int
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to download %s: HTTP %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// HTTPFetcher downloads a list from a single URL
type HTTPFetcher struct {
	url        string
	httpClient *http.Client
	userAgent  string
}

// Option configures the HTTPFetcher.
type Option func(*HTTPFetcher)

// WithTimeout sets the HTTP client timeout.
func WithTimeout(d time.Duration) Option {
	return func(f *HTTPFetcher) {
		f.httpClient.Timeout = d
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *HTTPFetcher) {
		f.httpClient = c
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *HTTPFetcher) {
		f.userAgent = ua
	}
}

// NewHTTPFetcher creates a fetcher for url with default settings.
func NewHTTPFetcher(url string, opts ...Option) *HTTPFetcher {
	f := &HTTPFetcher{
		url:        url,
		httpClient: &http.Client{Timeout: 30 * time.Second},
		userAgent:  "domainRadar",
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// URL returns the address the fetcher downloads from
func (f *HTTPFetcher) URL() string { return f.url }

// Fetch downloads the list. It is not retried; cancel ctx to abort.
func (f *HTTPFetcher) Fetch(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request for %s: %w", f.url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", &FetchError{URL: f.url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	return string(body), nil
}
