package v1

import (
	"time"

	"github.com/vmunix/vodarr/internal/catalog"
	"github.com/vmunix/vodarr/internal/queue"
)

// enqueueRequest is the body for POST /queue.
type enqueueRequest struct {
	SourceID   string `json:"source_id"`
	Visibility string `json:"visibility"`
	Language   string `json:"language,omitempty"`
	Tags       string `json:"tags,omitempty"`
	Category   string `json:"category,omitempty"`
}

// itemResponse is the API representation of an import item.
type itemResponse struct {
	ID            string    `json:"id"`
	SourceID      string    `json:"source_id"`
	Title         string    `json:"title,omitempty"`
	Stage         string    `json:"stage"`
	Progress      float64   `json:"progress"`
	StatusText    string    `json:"status_text"`
	DestinationID string    `json:"destination_id,omitempty"`
	ThumbnailURL  string    `json:"thumbnail_url,omitempty"`
	ErrorMessage  string    `json:"error_message,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func itemToResponse(item *queue.ImportItem) itemResponse {
	resp := itemResponse{
		ID:            item.ID,
		SourceID:      item.SourceID,
		Stage:         string(item.Stage),
		Progress:      item.Progress,
		StatusText:    item.StatusText,
		DestinationID: item.DestinationID,
		ThumbnailURL:  item.ThumbnailURL,
		ErrorMessage:  item.ErrorMessage,
		CreatedAt:     item.CreatedAt,
		UpdatedAt:     item.UpdatedAt,
	}
	if item.SourceMetadata != nil {
		resp.Title = item.SourceMetadata.Name
	}
	return resp
}

// listQueueResponse is the response for GET /queue.
type listQueueResponse struct {
	Items []itemResponse `json:"items"`
	Total int            `json:"total"`
}

// clearResponse is the response for POST /queue/clear.
type clearResponse struct {
	Removed int `json:"removed"`
}

// videosResponse is the folder-grouped view for GET /scan/videos.
type videosResponse struct {
	Groups []catalog.Group `json:"groups"`
	Total  int             `json:"total"`
}

// searchResponse is the response for GET /scan/videos?q=.
type searchResponse struct {
	Matches []catalog.Match `json:"matches"`
	Total   int             `json:"total"`
}

// statusResponse is the response for GET /status.
type statusResponse struct {
	Status  string             `json:"status"`
	Version string             `json:"version"`
	Queue   map[string]int     `json:"queue"`
	Scan    catalog.ScanStatus `json:"scan"`
}
