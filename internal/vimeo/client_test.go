package vimeo

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode response: %v", err)
	}
}

func TestClient_GetVideo(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		require.Equal(t, "/videos/12345", r.URL.Path)
		writeJSON(t, w, Video{
			URI:      "/videos/12345",
			Name:     "Launch Recording",
			Type:     TypeVideo,
			Duration: 90,
			Files: []File{
				{Quality: "source", Size: 100, Link: "http://cdn/source"},
				{Quality: "hd", Size: 80, Link: "http://cdn/hd"},
			},
			ParentFolder: &Folder{
				URI:  "/folders/9",
				Name: "Launches",
			},
		})
	}))
	defer srv.Close()

	client := New("tok", WithBaseURL(srv.URL))
	video, err := client.GetVideo(context.Background(), "12345")
	require.NoError(t, err)

	assert.Equal(t, "12345", video.ID())
	assert.Equal(t, "Launch Recording", video.Name)
	assert.Len(t, video.Files, 2)
	require.NotNil(t, video.ParentFolder)
	assert.Equal(t, "9", video.ParentFolder.ID())
}

func TestClient_GetVideo_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	client := New("tok", WithBaseURL(srv.URL))
	_, err := client.GetVideo(context.Background(), "99")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_GetVideo_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New("bad", WithBaseURL(srv.URL))
	_, err := client.GetVideo(context.Background(), "1")
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestClient_GetVideo_NoResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := New("tok", WithBaseURL(srv.URL))
	_, err := client.GetVideo(context.Background(), "1")
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestClient_ListPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/me/videos", r.URL.Path)
		require.Equal(t, "2", r.URL.Query().Get("page"))
		require.Equal(t, "25", r.URL.Query().Get("per_page"))
		writeJSON(t, w, VideoPage{
			Total:   60,
			Page:    2,
			PerPage: 25,
			Paging:  Paging{Next: "/me/videos?page=3"},
			Data: []Video{
				{URI: "/videos/1", Name: "One", Type: TypeVideo},
			},
		})
	}))
	defer srv.Close()

	client := New("tok", WithBaseURL(srv.URL), WithPageSize(25))
	page, err := client.ListPage(context.Background(), 2)
	require.NoError(t, err)

	assert.Equal(t, 60, page.Total)
	assert.Equal(t, "/me/videos?page=3", page.Paging.Next)
	assert.Len(t, page.Data, 1)
}

func TestClient_ListPage_RateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "7")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New("tok", WithBaseURL(srv.URL))
	_, err := client.ListPage(context.Background(), 1)
	require.ErrorIs(t, err, ErrRateLimited)

	var rle *RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Equal(t, 7*time.Second, rle.RetryAfter)
}

func TestClient_ListPage_RateLimited_NoRetryAfter(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := New("tok", WithBaseURL(srv.URL))
	_, err := client.ListPage(context.Background(), 1)

	var rle *RateLimitError
	require.ErrorAs(t, err, &rle)
	assert.Zero(t, rle.RetryAfter)
}

func TestClient_Download(t *testing.T) {
	payload := make([]byte, 200*1024)
	for i := range payload {
		payload[i] = byte(i % 251)
	}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "204800")
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	client := New("tok")

	var lastReceived, lastTotal int64
	var calls int
	data, err := client.Download(context.Background(), srv.URL+"/file", func(received, total int64) {
		require.GreaterOrEqual(t, received, lastReceived, "progress must be monotonic")
		lastReceived = received
		lastTotal = total
		calls++
	})
	require.NoError(t, err)

	assert.Equal(t, payload, data)
	assert.Equal(t, int64(len(payload)), lastReceived)
	assert.Equal(t, int64(len(payload)), lastTotal)
	assert.Greater(t, calls, 0)
}

func TestNew_NoOverallTimeout(t *testing.T) {
	// Download streams entire renditions through this client; an overall
	// client timeout would abort any transfer slower than the deadline.
	client := New("tok")
	assert.Zero(t, client.httpClient.Timeout)
}

func TestClient_Download_SlowStream(t *testing.T) {
	payload := []byte("0123456789abcdef0123456789abcdef")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Length", "32")
		flusher := w.(http.Flusher)
		for i := 0; i < len(payload); i += 4 {
			_, _ = w.Write(payload[i : i+4])
			flusher.Flush()
			time.Sleep(10 * time.Millisecond)
		}
	}))
	defer srv.Close()

	client := New("tok")
	data, err := client.Download(context.Background(), srv.URL+"/file", nil)
	require.NoError(t, err)
	assert.Equal(t, payload, data)
}

func TestClient_Download_Rejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := New("tok")
	_, err := client.Download(context.Background(), srv.URL+"/file", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rejected")
}

func TestParseRetryAfter(t *testing.T) {
	tests := []struct {
		value string
		want  time.Duration
	}{
		{"", 0},
		{"10", 10 * time.Second},
		{"0", 0},
		{"-5", 0},
		{"soon", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, parseRetryAfter(tt.value), "value %q", tt.value)
	}
}
