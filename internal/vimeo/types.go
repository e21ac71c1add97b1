package vimeo

import "strings"

// QualitySource is the rendition class for the original uploaded file. The
// host does not allow redistributing it, so it is never selected for
// transfer and its size is ignored when ranking renditions.
const QualitySource = "source"

// TypeVideo is the catalog entry type for normal on-demand videos. Other
// types (live events) are filtered out during enumeration.
const TypeVideo = "video"

// Video is the host's metadata for a single video.
type Video struct {
	URI          string   `json:"uri"` // "/videos/12345"
	Name         string   `json:"name"`
	Type         string   `json:"type"`
	Duration     int      `json:"duration"` // seconds
	Files        []File   `json:"files"`
	Pictures     Pictures `json:"pictures"`
	ParentFolder *Folder  `json:"parent_folder"` // nil when not filed in a folder
}

// ID returns the bare video identifier from the URI.
func (v *Video) ID() string {
	return lastSegment(v.URI)
}

// File is one downloadable rendition of a video.
type File struct {
	Quality string `json:"quality"` // "source", "hd", "sd", ...
	Type    string `json:"type"`    // MIME type
	Size    int64  `json:"size"`
	Link    string `json:"link"`
}

// Pictures holds the available thumbnail renditions.
type Pictures struct {
	Sizes []PictureSize `json:"sizes"`
}

// PictureSize is one thumbnail rendition.
type PictureSize struct {
	Width int    `json:"width"`
	Link  string `json:"link"`
}

// Folder is a containing folder with its ancestor chain.
type Folder struct {
	URI       string      `json:"uri"` // "/folders/67890"
	Name      string      `json:"name"`
	Ancestors []FolderRef `json:"ancestors"` // immediate-parent-first
}

// ID returns the bare folder identifier from the URI.
func (f *Folder) ID() string {
	return lastSegment(f.URI)
}

// FolderRef is a lightweight reference to an ancestor folder.
type FolderRef struct {
	URI  string `json:"uri"`
	Name string `json:"name"`
}

// VideoPage is one page of a catalog listing.
type VideoPage struct {
	Total   int     `json:"total"` // total entries across all pages
	Page    int     `json:"page"`
	PerPage int     `json:"per_page"`
	Paging  Paging  `json:"paging"`
	Data    []Video `json:"data"`
}

// Paging carries the upstream pagination cursors.
type Paging struct {
	Next string `json:"next"` // empty on the last page
}

func lastSegment(uri string) string {
	if i := strings.LastIndex(uri, "/"); i >= 0 {
		return uri[i+1:]
	}
	return uri
}
