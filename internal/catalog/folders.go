package catalog

import (
	"sort"
	"strings"

	"github.com/vmunix/vodarr/internal/vimeo"
)

// Synthetic bucket for videos not filed in any folder.
const (
	RootFolderID   = ""
	RootFolderName = "(no folder)"
)

// FolderRecord is a folder with its fully qualified path. Paths are
// derived for display; two folders with the same name but different ids
// stay distinct records.
type FolderRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
}

// folderPath builds the ancestor-qualified path: ancestor chain root-first,
// then the folder's own name. The host reports ancestors
// immediate-parent-first, so the chain is walked in reverse.
func folderPath(f *vimeo.Folder) string {
	segments := make([]string, 0, len(f.Ancestors)+1)
	for i := len(f.Ancestors) - 1; i >= 0; i-- {
		segments = append(segments, f.Ancestors[i].Name)
	}
	segments = append(segments, f.Name)
	return strings.Join(segments, "/")
}

// Group is one folder's videos in the derived display grouping.
type Group struct {
	FolderID string        `json:"folder_id"`
	Path     string        `json:"path"`
	Videos   []RemoteVideo `json:"videos"`
}

// GroupByFolder derives the display grouping from the enumeration outputs.
// The synthetic root bucket sorts first; the rest are ordered by path.
// Video order within a group follows enumeration order.
func (r *Result) GroupByFolder() []Group {
	byFolder := make(map[string][]RemoteVideo)
	for _, v := range r.Videos {
		byFolder[v.FolderID] = append(byFolder[v.FolderID], v)
	}

	groups := make([]Group, 0, len(byFolder))
	for id, videos := range byFolder {
		path := RootFolderName
		if id != RootFolderID {
			path = r.Folders[id].Path
		}
		groups = append(groups, Group{FolderID: id, Path: path, Videos: videos})
	}

	sort.Slice(groups, func(i, j int) bool {
		if (groups[i].FolderID == RootFolderID) != (groups[j].FolderID == RootFolderID) {
			return groups[i].FolderID == RootFolderID
		}
		return groups[i].Path < groups[j].Path
	})

	return groups
}
