package youtube

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_FindBySourceTag_Found(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/videos", r.URL.Path)
		require.Equal(t, "vodarr:src:v42", r.URL.Query().Get("tag"))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"items": []Record{{ID: "yt-1", Title: "Existing"}},
		})
	}))
	defer srv.Close()

	client := New("key", WithBaseURL(srv.URL))
	record, err := client.FindBySourceTag(context.Background(), "v42")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "yt-1", record.ID)
	assert.Equal(t, "Existing", record.Title)
}

func TestClient_FindBySourceTag_Absent(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []Record{}})
	}))
	defer srv.Close()

	client := New("key", WithBaseURL(srv.URL))
	record, err := client.FindBySourceTag(context.Background(), "v42")
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestClient_CreateRecord(t *testing.T) {
	var got RecordFields
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/videos", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(CreatedRecord{ID: "yt-9", UploadURL: "http://upload/target"})
	}))
	defer srv.Close()

	client := New("key", WithBaseURL(srv.URL))
	created, err := client.CreateRecord(context.Background(), RecordFields{
		Title:      "My Video",
		Visibility: "private",
		Tags:       []string{"a", SourceTag("v1")},
	})
	require.NoError(t, err)

	assert.Equal(t, "yt-9", created.ID)
	assert.Equal(t, "http://upload/target", created.UploadURL)
	assert.Equal(t, "My Video", got.Title)
	assert.Contains(t, got.Tags, "vodarr:src:v1")
}

func TestClient_CreateRecord_TruncatesTitle(t *testing.T) {
	var got RecordFields
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(CreatedRecord{ID: "yt-9"})
	}))
	defer srv.Close()

	client := New("key", WithBaseURL(srv.URL))
	long := strings.Repeat("x", 150)
	_, err := client.CreateRecord(context.Background(), RecordFields{Title: long, Visibility: "private"})
	require.NoError(t, err)

	assert.Len(t, []rune(got.Title), maxTitleLength)
}

func TestClient_CreateRecord_OmitsBlankOptionals(t *testing.T) {
	var raw map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		require.NoError(t, json.Unmarshal(body, &raw))
		_ = json.NewEncoder(w).Encode(CreatedRecord{ID: "yt-9"})
	}))
	defer srv.Close()

	client := New("key", WithBaseURL(srv.URL))
	_, err := client.CreateRecord(context.Background(), RecordFields{Title: "t", Visibility: "private"})
	require.NoError(t, err)

	_, hasLanguage := raw["language"]
	_, hasCategory := raw["category"]
	assert.False(t, hasLanguage, "blank language must be omitted")
	assert.False(t, hasCategory, "blank category must be omitted")
}

func TestClient_UploadBinary(t *testing.T) {
	payload := []byte(strings.Repeat("v", 128*1024))

	var uploaded []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "video/mp4", r.Header.Get("Content-Type"))
		uploaded, _ = io.ReadAll(r.Body)
	}))
	defer srv.Close()

	client := New("key")

	var lastSent, lastTotal int64
	err := client.UploadBinary(context.Background(), srv.URL+"/upload", payload, "video/mp4", func(sent, total int64) {
		require.GreaterOrEqual(t, sent, lastSent, "progress must be monotonic")
		lastSent = sent
		lastTotal = total
	})
	require.NoError(t, err)

	assert.Equal(t, payload, uploaded)
	assert.Equal(t, int64(len(payload)), lastSent)
	assert.Equal(t, int64(len(payload)), lastTotal)
}

func TestClient_UploadBinary_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := New("key")
	err := client.UploadBinary(context.Background(), srv.URL+"/upload", []byte("x"), "video/mp4", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")
}

func TestClient_UploadThumbnail(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/videos/yt-9/thumbnail", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"thumbnailUrl": "http://img/thumb.jpg"})
	}))
	defer srv.Close()

	client := New("key", WithBaseURL(srv.URL))
	thumbURL, err := client.UploadThumbnail(context.Background(), "yt-9", []byte("jpeg"))
	require.NoError(t, err)
	assert.Equal(t, "http://img/thumb.jpg", thumbURL)
}

func TestClient_GetStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/videos/yt-9/status", r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]string{"status": "processing"})
	}))
	defer srv.Close()

	client := New("key", WithBaseURL(srv.URL))
	status, err := client.GetStatus(context.Background(), "yt-9")
	require.NoError(t, err)
	assert.Equal(t, "processing", status)
}

func TestClient_GetStatus_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New("bad", WithBaseURL(srv.URL))
	_, err := client.GetStatus(context.Background(), "yt-9")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_NoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	client := New("key", WithBaseURL(srv.URL))
	_, err := client.GetStatus(context.Background(), "yt-9")
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestTruncateTitle(t *testing.T) {
	assert.Equal(t, "short", truncateTitle("short"))

	long := strings.Repeat("é", 120)
	truncated := truncateTitle(long)
	assert.Len(t, []rune(truncated), maxTitleLength)
}
