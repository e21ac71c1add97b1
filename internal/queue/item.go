// Package queue drives import items through the transfer pipeline and owns
// their persisted, resumable state.
package queue

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/text/language"

	"github.com/vmunix/vodarr/internal/vimeo"
)

// Options is the immutable snapshot of import parameters captured when the
// item is queued. Later changes to global defaults never affect items
// already in the queue.
type Options struct {
	Visibility string `json:"visibility"`
	Language   string `json:"language,omitempty"` // BCP 47 tag, blank to omit
	Tags       string `json:"tags,omitempty"`     // comma-separated
	Category   string `json:"category,omitempty"`
}

// Validate checks option values that the destination would reject.
func (o Options) Validate() error {
	if o.Language != "" {
		if _, err := language.Parse(o.Language); err != nil {
			return fmt.Errorf("invalid language %q: %w", o.Language, err)
		}
	}
	return nil
}

// ImportItem is one requested transfer. All mutation goes through the
// store's update function; fields are exported for persistence and the API.
type ImportItem struct {
	ID             string        `json:"id"`
	SourceID       string        `json:"source_id"`
	Stage          Stage         `json:"stage"`
	Progress       float64       `json:"progress"` // 0-100
	StatusText     string        `json:"status_text"`
	SourceMetadata *vimeo.Video  `json:"source_metadata,omitempty"` // set once, then read-only
	DestinationID  string        `json:"destination_id,omitempty"`  // set once, then read-only
	ThumbnailURL   string        `json:"thumbnail_url,omitempty"`
	ErrorMessage   string        `json:"error_message,omitempty"` // set only when Stage == error
	Options        Options       `json:"options"`
	CreatedAt      time.Time     `json:"created_at"`
	UpdatedAt      time.Time     `json:"updated_at"`
}

// NewImportItem creates a queued item in the initial stage.
func NewImportItem(sourceID string, opts Options) *ImportItem {
	now := time.Now()
	return &ImportItem{
		ID:        uuid.NewString(),
		SourceID:  sourceID,
		Stage:     StageChecking,
		Options:   opts,
		CreatedAt: now,
		UpdatedAt: now,
	}
}
