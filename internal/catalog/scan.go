package catalog

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/vmunix/vodarr/internal/events"
)

// ScanState describes the lifecycle of a collection scan.
type ScanState string

const (
	ScanIdle    ScanState = "idle"
	ScanRunning ScanState = "running"
	ScanDone    ScanState = "done"
	ScanFailed  ScanState = "failed"
)

// ScanStatus is a snapshot of the scanner for API consumers.
type ScanStatus struct {
	State      ScanState  `json:"state"`
	Page       int        `json:"page,omitempty"`
	TotalPages int        `json:"total_pages,omitempty"`
	Videos     int        `json:"videos"`
	Folders    int        `json:"folders"`
	StartedAt  *time.Time `json:"started_at,omitempty"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
	Error      string     `json:"error,omitempty"`
}

// Scanner runs collection scans one at a time and retains the most recent
// result for lookups.
type Scanner struct {
	fetcher *Fetcher
	bus     *events.Bus
	log     *slog.Logger

	mu       sync.Mutex
	state    ScanState
	page     int
	total    int
	started  *time.Time
	finished *time.Time
	lastErr  string
	result   *Result
}

// NewScanner creates a scanner around the fetcher. The bus may be nil.
func NewScanner(fetcher *Fetcher, bus *events.Bus, log *slog.Logger) *Scanner {
	if log == nil {
		log = slog.Default()
	}
	return &Scanner{
		fetcher: fetcher,
		bus:     bus,
		log:     log,
		state:   ScanIdle,
	}
}

// Start begins a scan in the background. Returns ErrScanInProgress when one
// is already running.
func (s *Scanner) Start(ctx context.Context) error {
	s.mu.Lock()
	if s.state == ScanRunning {
		s.mu.Unlock()
		return ErrScanInProgress
	}
	now := time.Now()
	s.state = ScanRunning
	s.page = 0
	s.total = 0
	s.started = &now
	s.finished = nil
	s.lastErr = ""
	s.mu.Unlock()

	go s.run(ctx)
	return nil
}

func (s *Scanner) run(ctx context.Context) {
	if s.bus != nil {
		sub := s.bus.Subscribe(events.EventScanPageFetched, 16)
		defer s.bus.Unsubscribe(sub)
		go func() {
			for ev := range sub {
				if page, ok := ev.(*events.ScanPageFetched); ok {
					s.mu.Lock()
					s.page = page.Page
					s.total = page.TotalPages
					s.mu.Unlock()
				}
			}
		}()
	}

	result, err := s.fetcher.FetchAll(ctx)

	now := time.Now()
	s.mu.Lock()
	s.finished = &now
	if err != nil {
		s.state = ScanFailed
		s.lastErr = err.Error()
		s.mu.Unlock()
		s.log.Error("scan failed", "error", err)
		if s.bus != nil {
			_ = s.bus.Publish(ctx, &events.ScanFailed{
				BaseEvent: events.NewBaseEvent(events.EventScanFailed, events.EntityScan, "scan"),
				Reason:    err.Error(),
			})
		}
		return
	}
	s.state = ScanDone
	s.result = result
	s.mu.Unlock()
	s.log.Info("scan complete", "videos", len(result.Videos), "folders", len(result.Folders))
}

// Status returns a snapshot of the current or most recent scan.
func (s *Scanner) Status() ScanStatus {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := ScanStatus{
		State:      s.state,
		Page:       s.page,
		TotalPages: s.total,
		StartedAt:  s.started,
		FinishedAt: s.finished,
		Error:      s.lastErr,
	}
	if s.result != nil {
		st.Videos = len(s.result.Videos)
		st.Folders = len(s.result.Folders)
	}
	return st
}

// Result returns the most recent completed scan, or ErrNoScan when no scan
// has completed yet. A failed scan does not clear a prior result.
func (s *Scanner) Result() (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.result == nil {
		return nil, ErrNoScan
	}
	return s.result, nil
}
