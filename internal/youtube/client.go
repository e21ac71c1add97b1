// Package youtube implements the destination platform API client: record
// creation, binary and thumbnail upload, and processing status checks.
package youtube

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
)

const defaultBaseURL = "https://upload.googleapis.com/vodarr/v1"

// maxTitleLength is the platform's hard limit on record titles. Longer
// titles are truncated, not rejected.
const maxTitleLength = 100

// SourceTagPrefix marks a record with the source video it was imported
// from; duplicate detection queries by this tag.
const SourceTagPrefix = "vodarr:src:"

// SourceTag builds the marker tag for a source video id.
func SourceTag(sourceID string) string {
	return SourceTagPrefix + sourceID
}

// Client is an authenticated destination platform client.
type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	log        *slog.Logger
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

// WithLogger sets a logger for debug output.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		c.log = log.With("component", "youtube")
	}
}

// New creates a new destination platform client. Uploads can be large, so
// the client carries no overall timeout; hung requests are bounded by the
// transport's defaults.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    defaultBaseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FindBySourceTag looks up an existing record tagged with the given source
// video id. Returns nil when no record carries the tag.
func (c *Client) FindBySourceTag(ctx context.Context, sourceID string) (*Record, error) {
	endpoint := "/videos?tag=" + url.QueryEscape(SourceTag(sourceID))
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	var result struct {
		Items []Record `json:"items"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	if len(result.Items) == 0 {
		return nil, nil
	}
	return &result.Items[0], nil
}

// CreateRecord creates a new video record and returns its id and upload
// target. The title is truncated to the platform's maximum length.
func (c *Client) CreateRecord(ctx context.Context, fields RecordFields) (*CreatedRecord, error) {
	fields.Title = truncateTitle(fields.Title)

	body, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("marshal record fields: %w", err)
	}

	resp, err := c.doRequest(ctx, http.MethodPost, "/videos", bytes.NewReader(body), "application/json")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return nil, err
	}

	var created CreatedRecord
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return nil, fmt.Errorf("decode create response: %w", err)
	}

	if c.log != nil {
		c.log.Debug("record created", "id", created.ID, "title", fields.Title)
	}

	return &created, nil
}

// UploadBinary transfers the video binary to the upload target returned by
// CreateRecord. The progress callback receives (sent, total) byte counts.
func (c *Client) UploadBinary(ctx context.Context, target string, data []byte, contentType string, progress func(sent, total int64)) error {
	body := &progressReader{
		reader:   bytes.NewReader(data),
		total:    int64(len(data)),
		progress: progress,
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, target, body)
	if err != nil {
		return fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", contentType)
	req.ContentLength = int64(len(data))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoResponse, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return fmt.Errorf("upload rejected: %s", resp.Status)
	}

	if c.log != nil {
		c.log.Debug("binary uploaded", "bytes", len(data))
	}

	return nil
}

// UploadThumbnail sets the record's thumbnail and returns its public URL.
func (c *Client) UploadThumbnail(ctx context.Context, recordID string, data []byte) (string, error) {
	endpoint := fmt.Sprintf("/videos/%s/thumbnail", recordID)
	resp, err := c.doRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(data), "image/jpeg")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return "", err
	}

	var result struct {
		ThumbnailURL string `json:"thumbnailUrl"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode thumbnail response: %w", err)
	}

	return result.ThumbnailURL, nil
}

// GetStatus fetches the record's raw processing status string. Classifying
// it into done/error/in-progress is the caller's concern.
func (c *Client) GetStatus(ctx context.Context, recordID string) (string, error) {
	endpoint := fmt.Sprintf("/videos/%s/status", recordID)
	resp, err := c.doRequest(ctx, http.MethodGet, endpoint, nil, "")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if err := c.checkResponse(resp); err != nil {
		return "", err
	}

	var result struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode status response: %w", err)
	}

	return result.Status, nil
}

func (c *Client) doRequest(ctx context.Context, method, endpoint string, body io.Reader, contentType string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoResponse, err)
	}

	return resp, nil
}

func (c *Client) checkResponse(resp *http.Response) error {
	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated:
		return nil
	case http.StatusNotFound:
		return ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return ErrUnauthorized
	default:
		return fmt.Errorf("platform API error: %s", resp.Status)
	}
}

// truncateTitle caps a title at maxTitleLength runes.
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= maxTitleLength {
		return title
	}
	return string(runes[:maxTitleLength])
}

// progressReader reports cumulative bytes read to a callback. The HTTP
// transport reads the request body, so reads track upload progress.
type progressReader struct {
	reader   *bytes.Reader
	total    int64
	sent     int64
	progress func(sent, total int64)
}

func (r *progressReader) Read(p []byte) (int, error) {
	n, err := r.reader.Read(p)
	if n > 0 {
		r.sent += int64(n)
		if r.progress != nil {
			r.progress(r.sent, r.total)
		}
	}
	return n, err
}
