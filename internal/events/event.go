// Package events provides the pub/sub event bus used for progress reporting.
package events

import "time"

// Event type names.
const (
	EventStageChanged     = "import.stage_changed"
	EventProgressUpdated  = "import.progress_updated"
	EventImportCompleted  = "import.completed"
	EventImportFailed     = "import.failed"
	EventThumbnailSkipped = "import.thumbnail_skipped"
	EventScanPageFetched  = "scan.page_fetched"
	EventScanCompleted    = "scan.completed"
	EventScanFailed       = "scan.failed"
)

// Entity type names.
const (
	EntityItem = "item"
	EntityScan = "scan"
)

// Event is the base interface all events implement.
type Event interface {
	EventType() string
	EntityType() string // "item" or "scan"
	EntityID() string
	OccurredAt() time.Time
}

// BaseEvent provides common fields for all events.
type BaseEvent struct {
	Type      string    `json:"type"`
	Entity    string    `json:"entity_type"`
	ID        string    `json:"entity_id"`
	Timestamp time.Time `json:"occurred_at"`
}

func (e BaseEvent) EventType() string     { return e.Type }
func (e BaseEvent) EntityType() string    { return e.Entity }
func (e BaseEvent) EntityID() string      { return e.ID }
func (e BaseEvent) OccurredAt() time.Time { return e.Timestamp }

// NewBaseEvent creates a BaseEvent with the current timestamp.
func NewBaseEvent(eventType, entityType, entityID string) BaseEvent {
	return BaseEvent{
		Type:      eventType,
		Entity:    entityType,
		ID:        entityID,
		Timestamp: time.Now(),
	}
}
