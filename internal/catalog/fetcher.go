// Package catalog enumerates the source host's video collection page by
// page, honoring the host's request spacing and quota backoff rules.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/vmunix/vodarr/internal/events"
	"github.com/vmunix/vodarr/internal/vimeo"
)

// PageLister fetches one page of the remote collection.
type PageLister interface {
	ListPage(ctx context.Context, page int) (*vimeo.VideoPage, error)
}

// RemoteVideo is one enumerated collection entry.
type RemoteVideo struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	FolderID  string `json:"folder_id"` // RootFolderID when not filed in a folder
	SizeBytes int64  `json:"size_bytes"`
	Duration  int    `json:"duration"` // seconds
}

// Result is the outcome of a full enumeration: the flat ordered video list
// and the folder records referenced by it. Both are immutable once
// returned; display groupings are derived views.
type Result struct {
	Videos  []RemoteVideo           `json:"videos"`
	Folders map[string]FolderRecord `json:"folders"`
}

// Config tunes the fetcher's rate limiting and retry policy.
type Config struct {
	// Spacing is the minimum gap between consecutive request starts.
	Spacing time.Duration
	// MaxRetries bounds quota-rejection retries per request.
	MaxRetries int
	// InitialDelay seeds the doubling backoff when the host does not
	// advertise a retry-after.
	InitialDelay time.Duration
}

// Fetcher enumerates the full collection sequentially, one request in
// flight at a time. The constraint is upstream quota, not throughput.
type Fetcher struct {
	client PageLister
	cfg    Config
	bus    *events.Bus
	log    *slog.Logger
}

// NewFetcher creates a fetcher. The bus may be nil to disable progress
// events.
func NewFetcher(client PageLister, cfg Config, bus *events.Bus, log *slog.Logger) *Fetcher {
	if log == nil {
		log = slog.Default()
	}
	if cfg.MaxRetries < 1 {
		cfg.MaxRetries = 5
	}
	if cfg.InitialDelay <= 0 {
		cfg.InitialDelay = time.Second
	}
	return &Fetcher{
		client: client,
		cfg:    cfg,
		bus:    bus,
		log:    log,
	}
}

// FetchAll enumerates every page of the collection. The operation is
// all-or-nothing: any fatal error (including a quota-retry ceiling being
// exhausted) returns nil results.
//
// Live-stream entries are filtered out. For each retained entry the size of
// the largest non-source rendition is derived, and the containing folder
// (when present) is recorded with its ancestor-qualified path.
func (f *Fetcher) FetchAll(ctx context.Context) (*Result, error) {
	result := &Result{Folders: make(map[string]FolderRecord)}

	page := 1
	totalPages := 0
	retry := newBackoff(f.cfg.MaxRetries, f.cfg.InitialDelay)
	var lastStart time.Time

	for {
		// Enforce minimum spacing from the start of the previous request,
		// regardless of how fast its response came back.
		if !lastStart.IsZero() {
			if wait := f.cfg.Spacing - time.Since(lastStart); wait > 0 {
				if err := sleep(ctx, wait); err != nil {
					return nil, err
				}
			}
		}
		lastStart = time.Now()

		videoPage, err := f.client.ListPage(ctx, page)
		if err != nil {
			var rle *vimeo.RateLimitError
			if !errors.As(err, &rle) {
				// Non-quota errors are not retried.
				return nil, fmt.Errorf("fetch page %d: %w", page, err)
			}

			delay, ok := retry.Delay(rle.RetryAfter)
			if !ok {
				return nil, fmt.Errorf("fetch page %d: %w", page, ErrRetriesExhausted)
			}
			f.log.Warn("quota exceeded, backing off",
				"page", page, "attempt", retry.attempts, "delay", delay)
			if err := sleep(ctx, delay); err != nil {
				return nil, err
			}
			continue
		}

		// The retry budget is per request, not per enumeration.
		retry = newBackoff(f.cfg.MaxRetries, f.cfg.InitialDelay)

		if totalPages == 0 {
			totalPages = pageCount(videoPage.Total, videoPage.PerPage)
		}

		for i := range videoPage.Data {
			video := &videoPage.Data[i]
			if video.Type != vimeo.TypeVideo {
				continue
			}
			result.Videos = append(result.Videos, toRemoteVideo(video))
			if video.ParentFolder != nil {
				folder := video.ParentFolder
				if _, seen := result.Folders[folder.ID()]; !seen {
					result.Folders[folder.ID()] = FolderRecord{
						ID:   folder.ID(),
						Name: folder.Name,
						Path: folderPath(folder),
					}
				}
			}
		}

		f.publishPage(ctx, page, totalPages, len(result.Videos))
		f.log.Debug("page enumerated", "page", page, "total_pages", totalPages, "items", len(result.Videos))

		if videoPage.Paging.Next == "" {
			break
		}
		page++
	}

	if f.bus != nil {
		_ = f.bus.Publish(ctx, &events.ScanCompleted{
			BaseEvent: events.NewBaseEvent(events.EventScanCompleted, events.EntityScan, "scan"),
			Videos:    len(result.Videos),
			Folders:   len(result.Folders),
		})
	}

	return result, nil
}

func (f *Fetcher) publishPage(ctx context.Context, page, totalPages, items int) {
	if f.bus == nil {
		return
	}
	_ = f.bus.Publish(ctx, &events.ScanPageFetched{
		BaseEvent:  events.NewBaseEvent(events.EventScanPageFetched, events.EntityScan, "scan"),
		Page:       page,
		TotalPages: totalPages,
		Items:      items,
	})
}

func toRemoteVideo(v *vimeo.Video) RemoteVideo {
	folderID := RootFolderID
	if v.ParentFolder != nil {
		folderID = v.ParentFolder.ID()
	}
	return RemoteVideo{
		ID:        v.ID(),
		Title:     v.Name,
		FolderID:  folderID,
		SizeBytes: largestRenditionSize(v.Files),
		Duration:  v.Duration,
	}
}

// largestRenditionSize returns the byte size of the largest rendition
// excluding the non-distributable source class. Zero when none qualify.
func largestRenditionSize(files []vimeo.File) int64 {
	var best int64
	for _, f := range files {
		if f.Quality == vimeo.QualitySource {
			continue
		}
		if f.Size > best {
			best = f.Size
		}
	}
	return best
}

// pageCount derives the total page count from the first page's reported
// total.
func pageCount(total, perPage int) int {
	if perPage <= 0 {
		return 1
	}
	pages := (total + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	return pages
}

func sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
