package youtube

// Record is an existing video record on the destination platform.
type Record struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// RecordFields are the fields submitted when creating a new record.
// Optional fields (Language, Category) are omitted from the request when
// blank. Tags always include the source marker tag.
type RecordFields struct {
	Title      string   `json:"title"`
	Visibility string   `json:"visibility"`
	Language   string   `json:"language,omitempty"`
	Category   string   `json:"category,omitempty"`
	Tags       []string `json:"tags"`
}

// CreatedRecord is the platform's response to record creation: the new
// record id and the target the binary must be uploaded to.
type CreatedRecord struct {
	ID        string `json:"id"`
	UploadURL string `json:"uploadUrl"`
}
