package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client wraps HTTP calls to the vodarr server.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a new vodarr API client.
func NewClient(serverURL string) *Client {
	return &Client{
		baseURL: serverURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

func (c *Client) get(path string, result any) error {
	resp, err := c.httpClient.Get(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return json.NewDecoder(resp.Body).Decode(result)
}

func (c *Client) post(path string, body any, result any) error {
	var reader io.Reader
	if body != nil {
		jsonBody, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal error: %w", err)
		}
		reader = bytes.NewReader(jsonBody)
	}

	resp, err := c.httpClient.Post(c.baseURL+path, "application/json", reader)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch resp.StatusCode {
	case http.StatusOK, http.StatusCreated, http.StatusAccepted:
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(respBody))
	}

	if result != nil {
		return json.NewDecoder(resp.Body).Decode(result)
	}
	return nil
}

func (c *Client) delete(path string) error {
	req, err := http.NewRequest(http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("request creation failed: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusNoContent {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("server error %d: %s", resp.StatusCode, string(body))
	}

	return nil
}

// API response types (mirror server types)

type ScanStatus struct {
	State      string  `json:"state"`
	Page       int     `json:"page,omitempty"`
	TotalPages int     `json:"total_pages,omitempty"`
	Videos     int     `json:"videos"`
	Folders    int     `json:"folders"`
	StartedAt  *string `json:"started_at,omitempty"`
	FinishedAt *string `json:"finished_at,omitempty"`
	Error      string  `json:"error,omitempty"`
}

type StatusResponse struct {
	Status  string         `json:"status"`
	Version string         `json:"version"`
	Queue   map[string]int `json:"queue"`
	Scan    ScanStatus     `json:"scan"`
}

type ItemResponse struct {
	ID            string  `json:"id"`
	SourceID      string  `json:"source_id"`
	Title         string  `json:"title,omitempty"`
	Stage         string  `json:"stage"`
	Progress      float64 `json:"progress"`
	StatusText    string  `json:"status_text"`
	DestinationID string  `json:"destination_id,omitempty"`
	ThumbnailURL  string  `json:"thumbnail_url,omitempty"`
	ErrorMessage  string  `json:"error_message,omitempty"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type ListQueueResponse struct {
	Items []ItemResponse `json:"items"`
	Total int            `json:"total"`
}

type ClearResponse struct {
	Removed int `json:"removed"`
}

type EnqueueRequest struct {
	SourceID   string `json:"source_id"`
	Visibility string `json:"visibility"`
	Language   string `json:"language,omitempty"`
	Tags       string `json:"tags,omitempty"`
	Category   string `json:"category,omitempty"`
}

type RemoteVideo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FolderID  string `json:"folder_id"`
	SizeBytes int64  `json:"size_bytes"`
	Duration  int    `json:"duration"`
}

type VideoGroup struct {
	FolderID string        `json:"folder_id"`
	Path     string        `json:"path"`
	Videos   []RemoteVideo `json:"videos"`
}

type VideosResponse struct {
	Groups []VideoGroup `json:"groups"`
	Total  int          `json:"total"`
}

type VideoMatch struct {
	Video RemoteVideo `json:"video"`
	Score float64     `json:"score"`
}

type SearchResponse struct {
	Matches []VideoMatch `json:"matches"`
	Total   int          `json:"total"`
}

// Typed API methods

func (c *Client) Status() (*StatusResponse, error) {
	var resp StatusResponse
	if err := c.get("/api/v1/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Queue() (*ListQueueResponse, error) {
	var resp ListQueueResponse
	if err := c.get("/api/v1/queue", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) GetItem(id string) (*ItemResponse, error) {
	var resp ItemResponse
	if err := c.get("/api/v1/queue/"+url.PathEscape(id), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Enqueue(req EnqueueRequest) (*ItemResponse, error) {
	var resp ItemResponse
	if err := c.post("/api/v1/queue", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) RemoveItem(id string) error {
	return c.delete("/api/v1/queue/" + url.PathEscape(id))
}

func (c *Client) ClearDone() (*ClearResponse, error) {
	var resp ClearResponse
	if err := c.post("/api/v1/queue/clear", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) StartScan() (*ScanStatus, error) {
	var resp ScanStatus
	if err := c.post("/api/v1/scan", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) ScanStatus() (*ScanStatus, error) {
	var resp ScanStatus
	if err := c.get("/api/v1/scan/status", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) Videos() (*VideosResponse, error) {
	var resp VideosResponse
	if err := c.get("/api/v1/scan/videos", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

func (c *Client) SearchVideos(query string, limit int) (*SearchResponse, error) {
	params := url.Values{}
	params.Set("q", query)
	if limit > 0 {
		params.Set("limit", fmt.Sprintf("%d", limit))
	}

	var resp SearchResponse
	if err := c.get("/api/v1/scan/videos?"+params.Encode(), &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
