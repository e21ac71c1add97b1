// Package v1 implements the native REST API.
package v1

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vmunix/vodarr/internal/catalog"
	"github.com/vmunix/vodarr/internal/queue"
)

// Server is the v1 API server.
type Server struct {
	orch    *queue.Orchestrator
	store   *queue.Store
	scanner *catalog.Scanner
	version string

	// baseCtx outlives individual requests; background pipelines started
	// from a handler must not die with the request.
	baseCtx context.Context
}

// New creates a new v1 API server. baseCtx bounds the lifetime of
// background work started by handlers.
func New(baseCtx context.Context, orch *queue.Orchestrator, store *queue.Store, scanner *catalog.Scanner, version string) *Server {
	return &Server{
		orch:    orch,
		store:   store,
		scanner: scanner,
		version: version,
		baseCtx: baseCtx,
	}
}

// RegisterRoutes registers API routes on the given mux.
func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	// Queue
	mux.HandleFunc("GET /api/v1/queue", s.listQueue)
	mux.HandleFunc("GET /api/v1/queue/{id}", s.getItem)
	mux.HandleFunc("POST /api/v1/queue", s.enqueue)
	mux.HandleFunc("DELETE /api/v1/queue/{id}", s.removeItem)
	mux.HandleFunc("POST /api/v1/queue/clear", s.clearDone)

	// Collection scan
	mux.HandleFunc("POST /api/v1/scan", s.startScan)
	mux.HandleFunc("GET /api/v1/scan/status", s.scanStatus)
	mux.HandleFunc("GET /api/v1/scan/videos", s.listVideos)

	// System
	mux.HandleFunc("GET /api/v1/status", s.getStatus)
}

// Error response
type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

func writeError(w http.ResponseWriter, code int, errCode, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(errorResponse{Error: message, Code: errCode})
}

func writeJSON(w http.ResponseWriter, code int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(data)
}

// pathID extracts the item id from the URL path.
func pathID(r *http.Request) (string, error) {
	id := r.PathValue("id")
	if id == "" {
		return "", fmt.Errorf("missing path parameter: id")
	}
	return id, nil
}

// queryInt extracts an optional integer from query string.
func queryInt(r *http.Request, name string, defaultVal int) int {
	val := r.URL.Query().Get(name)
	if val == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return i
}

func (s *Server) listQueue(w http.ResponseWriter, r *http.Request) {
	items := s.store.List()
	resp := listQueueResponse{Items: make([]itemResponse, len(items)), Total: len(items)}
	for i, item := range items {
		resp.Items[i] = itemToResponse(item)
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) getItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	item, err := s.store.Get(id)
	if err != nil {
		if errors.Is(err, queue.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Import item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, itemToResponse(item))
}

func (s *Server) enqueue(w http.ResponseWriter, r *http.Request) {
	var req enqueueRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_JSON", err.Error())
		return
	}
	if req.SourceID == "" {
		writeError(w, http.StatusBadRequest, "MISSING_SOURCE_ID", "source_id is required")
		return
	}

	item, err := s.orch.Enqueue(s.baseCtx, req.SourceID, queue.Options{
		Visibility: req.Visibility,
		Language:   req.Language,
		Tags:       req.Tags,
		Category:   req.Category,
	})
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_OPTIONS", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, itemToResponse(item))
}

func (s *Server) removeItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "INVALID_ID", err.Error())
		return
	}

	if err := s.orch.Remove(id); err != nil {
		if errors.Is(err, queue.ErrItemNotFound) {
			writeError(w, http.StatusNotFound, "NOT_FOUND", "Import item not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) clearDone(w http.ResponseWriter, r *http.Request) {
	removed, err := s.orch.ClearDone()
	if err != nil {
		writeError(w, http.StatusInternalServerError, "STORE_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusOK, clearResponse{Removed: removed})
}

func (s *Server) startScan(w http.ResponseWriter, r *http.Request) {
	if err := s.scanner.Start(s.baseCtx); err != nil {
		if errors.Is(err, catalog.ErrScanInProgress) {
			writeError(w, http.StatusConflict, "SCAN_RUNNING", "A scan is already in progress")
			return
		}
		writeError(w, http.StatusInternalServerError, "SCAN_ERROR", err.Error())
		return
	}
	writeJSON(w, http.StatusAccepted, s.scanner.Status())
}

func (s *Server) scanStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.scanner.Status())
}

func (s *Server) listVideos(w http.ResponseWriter, r *http.Request) {
	result, err := s.scanner.Result()
	if err != nil {
		writeError(w, http.StatusNotFound, "NO_SCAN", "No completed scan available; start one with POST /api/v1/scan")
		return
	}

	if q := r.URL.Query().Get("q"); q != "" {
		limit := queryInt(r, "limit", 20)
		matches := result.Find(q, limit)
		writeJSON(w, http.StatusOK, searchResponse{Matches: matches, Total: len(matches)})
		return
	}

	writeJSON(w, http.StatusOK, videosResponse{Groups: result.GroupByFolder(), Total: len(result.Videos)})
}

func (s *Server) getStatus(w http.ResponseWriter, r *http.Request) {
	counts := map[string]int{}
	for _, item := range s.store.List() {
		counts[string(item.Stage)]++
	}
	writeJSON(w, http.StatusOK, statusResponse{
		Status:  "ok",
		Version: s.version,
		Queue:   counts,
		Scan:    s.scanner.Status(),
	})
}
