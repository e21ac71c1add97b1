// Package vimeo implements the source host API client: video metadata,
// binary downloads, and paginated catalog listing.
package vimeo

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"
)

const defaultBaseURL = "https://api.vimeo.com"

// Client is an authenticated source host API client.
type Client struct {
	accessToken string
	baseURL     string
	pageSize    int
	httpClient  *http.Client
	log         *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL sets a custom base URL (for testing).
func WithBaseURL(url string) Option {
	return func(c *Client) {
		c.baseURL = url
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithPageSize sets the catalog page size.
func WithPageSize(n int) Option {
	return func(c *Client) {
		c.pageSize = n
	}
}

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "vimeo")
	}
}

// New creates a new source host client. Download streams whole renditions
// through the same client, so it carries no overall timeout; hung requests
// are bounded by the transport's defaults or the caller's context.
func New(accessToken string, opts ...Option) *Client {
	c := &Client{
		accessToken: accessToken,
		baseURL:     defaultBaseURL,
		pageSize:    50,
		httpClient:  &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

const videoFields = "uri,name,type,duration,files,pictures.sizes,parent_folder.uri,parent_folder.name,parent_folder.ancestors"

// GetVideo fetches full metadata for a single video.
func (c *Client) GetVideo(ctx context.Context, id string) (*Video, error) {
	start := time.Now()

	endpoint := fmt.Sprintf("/videos/%s?fields=%s", id, videoFields)
	resp, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var video Video
	if err := json.NewDecoder(resp.Body).Decode(&video); err != nil {
		return nil, fmt.Errorf("decode video response: %w", err)
	}

	if c.log != nil {
		c.log.Debug("fetched video", "id", id, "name", video.Name, "duration_ms", time.Since(start).Milliseconds())
	}

	return &video, nil
}

// ListPage fetches one page of the authenticated account's video catalog.
// Quota rejections surface as a *RateLimitError so the caller can honor the
// advertised retry delay.
func (c *Client) ListPage(ctx context.Context, page int) (*VideoPage, error) {
	start := time.Now()

	endpoint := fmt.Sprintf("/me/videos?page=%d&per_page=%d&fields=%s", page, c.pageSize, videoFields)
	resp, err := c.doRequest(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := checkResponse(resp); err != nil {
		return nil, err
	}

	var videoPage VideoPage
	if err := json.NewDecoder(resp.Body).Decode(&videoPage); err != nil {
		return nil, fmt.Errorf("decode page response: %w", err)
	}

	if c.log != nil {
		c.log.Debug("fetched catalog page", "page", page, "items", len(videoPage.Data), "total", videoPage.Total, "duration_ms", time.Since(start).Milliseconds())
	}

	return &videoPage, nil
}

// Download retrieves a binary (video rendition or thumbnail) into memory.
// The progress callback receives (received, total) byte counts; total is 0
// when the host does not send a Content-Length.
func (c *Client) Download(ctx context.Context, url string, progress func(received, total int64)) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create download request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("download rejected: %s", resp.Status)
	}

	total := resp.ContentLength
	if total < 0 {
		total = 0
	}

	var buf bytes.Buffer
	if total > 0 {
		buf.Grow(int(total))
	}

	chunk := make([]byte, 64*1024)
	var received int64
	for {
		n, err := resp.Body.Read(chunk)
		if n > 0 {
			buf.Write(chunk[:n])
			received += int64(n)
			if progress != nil {
				progress(received, total)
			}
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read download body: %w", err)
		}
	}

	if c.log != nil {
		c.log.Debug("download finished", "bytes", received)
	}

	return buf.Bytes(), nil
}

// doRequest performs a single authenticated API request.
func (c *Client) doRequest(ctx context.Context, endpoint string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}

	return resp, nil
}

// checkResponse maps HTTP status codes to sentinel errors.
func checkResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	case http.StatusTooManyRequests:
		return &RateLimitError{RetryAfter: parseRetryAfter(resp.Header.Get("Retry-After"))}
	default:
		return fmt.Errorf("host API error: %s", resp.Status)
	}
}

// parseRetryAfter parses a Retry-After header in seconds, returning zero
// when absent or malformed.
func parseRetryAfter(value string) time.Duration {
	if value == "" {
		return 0
	}
	secs, err := strconv.Atoi(value)
	if err != nil || secs < 0 {
		return 0
	}
	return time.Duration(secs) * time.Second
}
