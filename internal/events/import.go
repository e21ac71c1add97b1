package events

// StageChanged is emitted on every stage transition of an import item.
type StageChanged struct {
	BaseEvent
	ItemID   string `json:"item_id"`
	SourceID string `json:"source_id"`
	From     string `json:"from"`
	To       string `json:"to"`
}

// ProgressUpdated is emitted when an item's overall progress percentage moves.
type ProgressUpdated struct {
	BaseEvent
	ItemID     string  `json:"item_id"`
	Progress   float64 `json:"progress"`
	StatusText string  `json:"status_text"`
}

// ImportCompleted is emitted when an item reaches the complete stage.
type ImportCompleted struct {
	BaseEvent
	ItemID        string `json:"item_id"`
	SourceID      string `json:"source_id"`
	DestinationID string `json:"destination_id"`
	ThumbnailURL  string `json:"thumbnail_url,omitempty"`
}

// ImportFailed is emitted when an item reaches the error stage.
type ImportFailed struct {
	BaseEvent
	ItemID   string `json:"item_id"`
	SourceID string `json:"source_id"`
	Stage    string `json:"stage"` // stage the failure occurred in
	Reason   string `json:"reason"`
}

// ThumbnailSkipped is emitted when thumbnail transfer fails or no eligible
// thumbnail exists; the import continues without one.
type ThumbnailSkipped struct {
	BaseEvent
	ItemID string `json:"item_id"`
	Reason string `json:"reason"`
}
