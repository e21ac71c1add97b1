package v1

import (
	"context"
	"database/sql"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	_ "modernc.org/sqlite"

	"github.com/vmunix/vodarr/internal/catalog"
	"github.com/vmunix/vodarr/internal/kv"
	"github.com/vmunix/vodarr/internal/migrations"
	"github.com/vmunix/vodarr/internal/queue"
	"github.com/vmunix/vodarr/internal/queue/mocks"
	"github.com/vmunix/vodarr/internal/vimeo"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// stubLister serves a single canned page for scanner tests.
type stubLister struct {
	page *vimeo.VideoPage
	err  error
}

func (s *stubLister) ListPage(ctx context.Context, page int) (*vimeo.VideoPage, error) {
	return s.page, s.err
}

type testEnv struct {
	mux     *http.ServeMux
	store   *queue.Store
	orch    *queue.Orchestrator
	scanner *catalog.Scanner
	dest    *mocks.MockDestClient
	source  *mocks.MockSourceClient
}

func setup(t *testing.T) *testEnv {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	_, err = db.Exec(migrations.InitialSQL)
	require.NoError(t, err)

	ctrl := gomock.NewController(t)
	source := mocks.NewMockSourceClient(ctrl)
	dest := mocks.NewMockDestClient(ctrl)

	store := queue.NewStore(kv.NewStore(db), testLogger())
	orch := queue.NewOrchestrator(store, source, dest, nil, time.Hour, testLogger())
	t.Cleanup(orch.Shutdown)

	lister := &stubLister{page: &vimeo.VideoPage{
		Total: 1, Page: 1, PerPage: 25,
		Data: []vimeo.Video{{URI: "/videos/1", Name: "Demo Video", Type: vimeo.TypeVideo,
			Files: []vimeo.File{{Quality: "hd", Size: 100}}}},
	}}
	cfg := catalog.Config{Spacing: time.Millisecond, MaxRetries: 3, InitialDelay: time.Millisecond}
	scanner := catalog.NewScanner(catalog.NewFetcher(lister, cfg, nil, testLogger()), nil, testLogger())

	srv := New(context.Background(), orch, store, scanner, "test")
	mux := http.NewServeMux()
	srv.RegisterRoutes(mux)

	return &testEnv{mux: mux, store: store, orch: orch, scanner: scanner, dest: dest, source: source}
}

func (e *testEnv) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	w := httptest.NewRecorder()
	e.mux.ServeHTTP(w, req)
	return w
}

func TestGetStatus(t *testing.T) {
	env := setup(t)

	w := env.do(t, http.MethodGet, "/api/v1/status", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp statusResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.Equal(t, "test", resp.Version)
	assert.Equal(t, catalog.ScanIdle, resp.Scan.State)
}

func TestListQueue_Empty(t *testing.T) {
	env := setup(t)

	w := env.do(t, http.MethodGet, "/api/v1/queue", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp listQueueResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Items)
	assert.Zero(t, resp.Total)
}

func TestEnqueue_Validation(t *testing.T) {
	env := setup(t)

	w := env.do(t, http.MethodPost, "/api/v1/queue", `not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = env.do(t, http.MethodPost, "/api/v1/queue", `{"visibility":"private"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "MISSING_SOURCE_ID", resp.Code)

	w = env.do(t, http.MethodPost, "/api/v1/queue", `{"source_id":"111","language":"not a tag"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "INVALID_OPTIONS", resp.Code)
}

func TestEnqueue_And_GetItem(t *testing.T) {
	env := setup(t)
	// The pipeline stops at the duplicate pre-check; this test is about
	// the HTTP surface, not the pipeline.
	env.dest.EXPECT().FindBySourceTag(gomock.Any(), "111").
		Return(nil, context.Canceled).AnyTimes()

	w := env.do(t, http.MethodPost, "/api/v1/queue",
		`{"source_id":"111","visibility":"private","tags":"a,b"}`)
	require.Equal(t, http.StatusCreated, w.Code)

	var created itemResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, "111", created.SourceID)
	assert.NotEmpty(t, created.ID)

	w = env.do(t, http.MethodGet, "/api/v1/queue/"+created.ID, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/v1/queue/does-not-exist", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRemoveItem(t *testing.T) {
	env := setup(t)

	item := queue.NewImportItem("111", queue.Options{Visibility: "private"})
	require.NoError(t, env.store.Add(item))

	w := env.do(t, http.MethodDelete, "/api/v1/queue/"+item.ID, "")
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = env.do(t, http.MethodDelete, "/api/v1/queue/"+item.ID, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestClearDone(t *testing.T) {
	env := setup(t)

	done := queue.NewImportItem("1", queue.Options{})
	done.Stage = queue.StageComplete
	active := queue.NewImportItem("2", queue.Options{})
	active.Stage = queue.StagePolling
	require.NoError(t, env.store.Add(done))
	require.NoError(t, env.store.Add(active))

	w := env.do(t, http.MethodPost, "/api/v1/queue/clear", "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp clearResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Removed)
	assert.Len(t, env.store.List(), 1)
}

func TestListVideos_NoScan(t *testing.T) {
	env := setup(t)

	w := env.do(t, http.MethodGet, "/api/v1/scan/videos", "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "NO_SCAN", resp.Code)
}

func TestScan_Lifecycle(t *testing.T) {
	env := setup(t)

	w := env.do(t, http.MethodPost, "/api/v1/scan", "")
	assert.Equal(t, http.StatusAccepted, w.Code)

	deadline := time.After(2 * time.Second)
	for env.scanner.Status().State != catalog.ScanDone {
		select {
		case <-deadline:
			t.Fatalf("scan never finished (state %s)", env.scanner.Status().State)
		case <-time.After(5 * time.Millisecond):
		}
	}

	w = env.do(t, http.MethodGet, "/api/v1/scan/status", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var status catalog.ScanStatus
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.Equal(t, catalog.ScanDone, status.State)
	assert.Equal(t, 1, status.Videos)

	w = env.do(t, http.MethodGet, "/api/v1/scan/videos", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var videos videosResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &videos))
	assert.Equal(t, 1, videos.Total)
	require.Len(t, videos.Groups, 1)
	assert.Equal(t, "Demo Video", videos.Groups[0].Videos[0].Title)

	w = env.do(t, http.MethodGet, "/api/v1/scan/videos?q=demo+video", "")
	assert.Equal(t, http.StatusOK, w.Code)
	var matches searchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &matches))
	require.NotEmpty(t, matches.Matches)
	assert.Equal(t, "1", matches.Matches[0].Video.ID)
}
