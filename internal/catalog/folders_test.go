package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/vmunix/vodarr/internal/vimeo"
)

func TestFolderPath(t *testing.T) {
	tests := []struct {
		name   string
		folder vimeo.Folder
		want   string
	}{
		{
			name:   "top level",
			folder: vimeo.Folder{URI: "/folders/1", Name: "Talks"},
			want:   "Talks",
		},
		{
			name: "nested ancestors reported parent first",
			folder: vimeo.Folder{
				URI:  "/folders/3",
				Name: "C",
				Ancestors: []vimeo.FolderRef{
					{URI: "/folders/2", Name: "B"},
					{URI: "/folders/1", Name: "A"},
				},
			},
			want: "A/B/C",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, folderPath(&tt.folder))
		})
	}
}

func TestResult_GroupByFolder(t *testing.T) {
	result := &Result{
		Videos: []RemoteVideo{
			{ID: "1", Title: "first", FolderID: "20"},
			{ID: "2", Title: "loose", FolderID: RootFolderID},
			{ID: "3", Title: "second", FolderID: "10"},
			{ID: "4", Title: "third", FolderID: "20"},
		},
		Folders: map[string]FolderRecord{
			"10": {ID: "10", Name: "Archive", Path: "2024/Archive"},
			"20": {ID: "20", Name: "Talks", Path: "Talks"},
		},
	}

	groups := result.GroupByFolder()

	assert.Len(t, groups, 3)

	// Root bucket first, rest ordered by path.
	assert.Equal(t, RootFolderID, groups[0].FolderID)
	assert.Equal(t, RootFolderName, groups[0].Path)
	assert.Equal(t, "2024/Archive", groups[1].Path)
	assert.Equal(t, "Talks", groups[2].Path)

	// Enumeration order preserved within a group.
	assert.Equal(t, []string{"1", "4"}, []string{groups[2].Videos[0].ID, groups[2].Videos[1].ID})
}

func TestResult_GroupByFolder_DuplicateFolderNames(t *testing.T) {
	result := &Result{
		Videos: []RemoteVideo{
			{ID: "1", FolderID: "10"},
			{ID: "2", FolderID: "20"},
		},
		Folders: map[string]FolderRecord{
			"10": {ID: "10", Name: "Talks", Path: "2023/Talks"},
			"20": {ID: "20", Name: "Talks", Path: "2024/Talks"},
		},
	}

	groups := result.GroupByFolder()

	assert.Len(t, groups, 2)
	assert.NotEqual(t, groups[0].FolderID, groups[1].FolderID)
}
