package scraper

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"
)

const defaultUserAgent = "DjangoVoiceAssistant/1.0 (Educational Project)"

// Config holds configuration for the documentation fetcher
type Config struct {
	UserAgent         string
	Timeout           time.Duration // Default: 30s
	MaxRetries        int           // Default: 3
	RetryBackoff      time.Duration // Default: 1s
	RequestsPerMinute int           // Default: 30, polite to the docs servers
}

// FetchResult carries a fetched page and its change-detection metadata
type FetchResult struct {
	URL         string
	Body        []byte
	ETag        string
	ContentHash string
	FetchedAt   time.Time
}

// Client fetches documentation pages over HTTP with rate limiting and
// content-hash change detection.
type Client struct {
	httpClient  *http.Client
	rateLimiter *rate.Limiter
	config      Config
}

// NewClient creates a new fetcher client
func NewClient(cfg Config) *Client {
	if cfg.UserAgent == "" {
		cfg.UserAgent = defaultUserAgent
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.MaxRetries == 0 {
		cfg.MaxRetries = 3
	}
	if cfg.RetryBackoff == 0 {
		cfg.RetryBackoff = time.Second
	}
	if cfg.RequestsPerMinute == 0 {
		cfg.RequestsPerMinute = 30
	}

	limiter := rate.NewLimiter(
		rate.Every(time.Minute/time.Duration(cfg.RequestsPerMinute)),
		1,
	)

	return &Client{
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		rateLimiter: limiter,
		config:      cfg,
	}
}

// Fetch retrieves a page and returns its body with content hash and ETag.
// Transient failures (5xx, transport errors) are retried up to MaxRetries.
func (c *Client) Fetch(ctx context.Context, url string) (*FetchResult, error) {
	return c.fetch(ctx, url, "")
}

// FetchIfChanged retrieves a page only if it differs from the previously
// stored version. It sends If-None-Match when prevETag is set and compares
// content hashes otherwise; an unchanged page returns ErrNotModified so
// downstream extraction and translation are skipped.
func (c *Client) FetchIfChanged(ctx context.Context, url, prevHash, prevETag string) (*FetchResult, error) {
	result, err := c.fetch(ctx, url, prevETag)
	if err != nil {
		return nil, err
	}
	if result == nil {
		// 304 from upstream
		return nil, ErrNotModified
	}
	if prevHash != "" && result.ContentHash == prevHash {
		return nil, ErrNotModified
	}
	return result, nil
}

func (c *Client) fetch(ctx context.Context, url, etag string) (*FetchResult, error) {
	var lastErr error

	for attempt := 0; attempt <= c.config.MaxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, NewNetworkError(url, 0, ctx.Err())
			case <-time.After(c.config.RetryBackoff * time.Duration(attempt)):
			}
		}

		if err := c.rateLimiter.Wait(ctx); err != nil {
			return nil, NewNetworkError(url, 0, err)
		}

		result, retryable, err := c.doFetch(ctx, url, etag)
		if err == nil {
			return result, nil
		}
		lastErr = err
		if !retryable {
			return nil, err
		}
	}

	return nil, lastErr
}

// doFetch performs a single request. A nil result with nil error means the
// server answered 304 Not Modified.
func (c *Client) doFetch(ctx context.Context, url, etag string) (result *FetchResult, retryable bool, err error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, false, NewNetworkError(url, 0, err)
	}
	req.Header.Set("User-Agent", c.config.UserAgent)
	req.Header.Set("Accept", "text/html")
	if etag != "" {
		req.Header.Set("If-None-Match", etag)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, true, NewNetworkError(url, 0, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotModified:
		return nil, false, nil
	case resp.StatusCode >= 500:
		return nil, true, NewNetworkError(url, resp.StatusCode, fmt.Errorf("server error"))
	case resp.StatusCode != http.StatusOK:
		return nil, false, NewNetworkError(url, resp.StatusCode, fmt.Errorf("unexpected status"))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, true, NewNetworkError(url, 0, err)
	}

	hash := sha256.Sum256(body)

	return &FetchResult{
		URL:         url,
		Body:        body,
		ETag:        resp.Header.Get("ETag"),
		ContentHash: hex.EncodeToString(hash[:]),
		FetchedAt:   time.Now().UTC(),
	}, false, nil
}
