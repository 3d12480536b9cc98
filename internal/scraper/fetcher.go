package scraper

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// UserAgent is a desktop browser string; ESPN blocks obvious bots.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/90.0.4430.212 Safari/537.36"
	Timeout   = 30 * time.Second
)

// Fetcher issues GET requests with a fixed set of headers
type Fetcher struct {
	client  *http.Client
	headers http.Header
}

// NewFetcher creates a Fetcher. A nil client gets a client with Timeout.
// The User-Agent header defaults to UserAgent when headers do not set one.
func NewFetcher(client *http.Client, headers map[string]string) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}

	h := make(http.Header)
	for k, v := range headers {
		h.Set(k, v)
	}
	if h.Get("User-Agent") == "" {
		h.Set("User-Agent", UserAgent)
	}

	return &Fetcher{
		client:  client,
		headers: h,
	}
}

// Fetch returns the body of url. Failures are reported as *TransportError.
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	for k, values := range f.headers {
		for _, v := range values {
			req.Header.Add(k, v)
		}
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &TransportError{URL: url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &TransportError{URL: url, StatusCode: resp.StatusCode}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}

	return body, nil
}
