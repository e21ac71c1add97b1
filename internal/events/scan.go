package events

// ScanPageFetched is emitted after each catalog page is retrieved.
type ScanPageFetched struct {
	BaseEvent
	Page       int `json:"page"`
	TotalPages int `json:"total_pages"`
	Items      int `json:"items"` // running item count
}

// ScanCompleted is emitted when a full catalog enumeration finishes.
type ScanCompleted struct {
	BaseEvent
	Videos  int `json:"videos"`
	Folders int `json:"folders"`
}

// ScanFailed is emitted when an enumeration aborts.
type ScanFailed struct {
	BaseEvent
	Reason string `json:"reason"`
}
