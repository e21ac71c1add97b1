package queue

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/vmunix/vodarr/internal/events"
	"github.com/vmunix/vodarr/internal/vimeo"
	"github.com/vmunix/vodarr/internal/youtube"
)

//go:generate mockgen -source=orchestrator.go -destination=mocks/mock_clients.go -package=mocks

// SourceClient fetches metadata and binaries from the source host.
type SourceClient interface {
	GetVideo(ctx context.Context, id string) (*vimeo.Video, error)
	Download(ctx context.Context, url string, progress func(received, total int64)) ([]byte, error)
}

// DestClient manages records on the destination platform.
type DestClient interface {
	FindBySourceTag(ctx context.Context, sourceID string) (*youtube.Record, error)
	CreateRecord(ctx context.Context, fields youtube.RecordFields) (*youtube.CreatedRecord, error)
	UploadBinary(ctx context.Context, target string, data []byte, contentType string, progress func(sent, total int64)) error
	UploadThumbnail(ctx context.Context, recordID string, data []byte) (string, error)
	GetStatus(ctx context.Context, recordID string) (string, error)
}

// Destination processing statuses classified by the orchestrator. Anything
// not in either set means processing is still in flight and the poll timer
// keeps running.
var (
	doneStatuses  = map[string]bool{"processed": true, "live": true}
	errorStatuses = map[string]bool{"failed": true, "rejected": true, "terminated": true}
)

// Progress sub-ranges on the overall 0-100 scale. The binary transfer
// legs get the wide bands; the bookkeeping stages get fixed points.
const (
	progressChecking    = 5.0
	progressMetadata    = 10.0
	progressDownloadLo  = 15.0
	progressDownloadHi  = 50.0
	progressRecord      = 52.0
	progressUploadLo    = 55.0
	progressUploadHi    = 90.0
	progressThumbnail   = 92.0
	progressPolling     = 95.0
)

// Orchestrator advances import items through the pipeline. Each item runs
// its own independent stage sequence; there is no cross-item concurrency
// cap.
type Orchestrator struct {
	store        *Store
	source       SourceClient
	dest         DestClient
	poller       *Poller
	bus          *events.Bus
	pollInterval time.Duration
	log          *slog.Logger
}

// NewOrchestrator wires the pipeline. The bus may be nil to disable
// progress events.
func NewOrchestrator(store *Store, source SourceClient, dest DestClient, bus *events.Bus, pollInterval time.Duration, log *slog.Logger) *Orchestrator {
	if log == nil {
		log = slog.Default()
	}
	return &Orchestrator{
		store:        store,
		source:       source,
		dest:         dest,
		poller:       NewPoller(),
		bus:          bus,
		pollInterval: pollInterval,
		log:          log,
	}
}

// Enqueue creates a new import item, persists it, and starts its pipeline
// in the background. The returned item is the initial snapshot.
func (o *Orchestrator) Enqueue(ctx context.Context, sourceID string, opts Options) (*ImportItem, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	item := NewImportItem(sourceID, opts)
	item.StatusText = "Queued"
	if err := o.store.Add(item); err != nil {
		return nil, err
	}
	o.log.Info("import queued", "item_id", item.ID, "source_id", sourceID)

	go o.run(ctx, item.ID)

	copied := *item
	return &copied, nil
}

// Resume restarts polling for items persisted mid-poll. The store's Load
// has already reclassified everything else; registration is idempotent so
// calling Resume twice cannot double a timer.
func (o *Orchestrator) Resume(ctx context.Context) {
	resumed := 0
	for _, item := range o.store.List() {
		if item.Stage == StagePolling {
			o.startPolling(ctx, item.ID, item.DestinationID)
			resumed++
		}
	}
	if resumed > 0 {
		o.log.Info("resumed polling", "items", resumed)
	}
}

// Remove cancels any live timer for the item and deletes it.
func (o *Orchestrator) Remove(id string) error {
	o.poller.Cancel(id)
	return o.store.Remove(id)
}

// ClearDone removes all items in a terminal stage.
func (o *Orchestrator) ClearDone() (int, error) {
	return o.store.ClearDone()
}

// Shutdown stops all poll timers. Item state is already persisted; items
// mid-poll resume on the next start.
func (o *Orchestrator) Shutdown() {
	o.poller.CancelAll()
}

// Polling reports whether a live poll timer exists for the item.
func (o *Orchestrator) Polling(id string) bool {
	return o.poller.Active(id)
}

// run drives one item from checking to polling. Any fatal error transitions
// the item to error and stops the pipeline.
func (o *Orchestrator) run(ctx context.Context, id string) {
	item, err := o.store.Get(id)
	if err != nil {
		o.log.Error("pipeline start failed", "item_id", id, "error", err)
		return
	}
	sourceID := item.SourceID

	// checking: hard stop when the destination already has this source.
	o.setProgress(ctx, id, progressChecking, "Checking for existing import")
	existing, err := o.dest.FindBySourceTag(ctx, sourceID)
	if err != nil {
		o.fail(ctx, id, fmt.Errorf("duplicate check: %w", err))
		return
	}
	if existing != nil {
		o.fail(ctx, id, fmt.Errorf("%w: destination record %s (%q)", ErrDuplicate, existing.ID, existing.Title))
		return
	}

	// fetching_metadata
	if !o.transition(ctx, id, StageFetchingMetadata, progressMetadata, "Fetching video details") {
		return
	}
	video, err := o.source.GetVideo(ctx, sourceID)
	if err != nil {
		o.fail(ctx, id, fmt.Errorf("fetch metadata: %w", err))
		return
	}
	rendition := selectRendition(video.Files)
	if rendition == nil {
		o.fail(ctx, id, ErrNoValidRendition)
		return
	}
	if _, err := o.store.Update(id, func(it *ImportItem) {
		it.SourceMetadata = video
	}); err != nil {
		o.fail(ctx, id, err)
		return
	}

	// downloading
	sizeText := humanize.Bytes(uint64(rendition.Size))
	if !o.transition(ctx, id, StageDownloading, progressDownloadLo, "Downloading "+sizeText) {
		return
	}
	data, err := o.source.Download(ctx, rendition.Link, o.progressFunc(ctx, id, progressDownloadLo, progressDownloadHi, "Downloading "+sizeText))
	if err != nil {
		o.fail(ctx, id, fmt.Errorf("download: %w", err))
		return
	}

	// creating_record
	if !o.transition(ctx, id, StageCreatingRecord, progressRecord, "Creating destination record") {
		return
	}
	created, err := o.dest.CreateRecord(ctx, buildRecordFields(video.Name, sourceID, item.Options))
	if err != nil {
		o.fail(ctx, id, fmt.Errorf("create record: %w", err))
		return
	}
	if _, err := o.store.Update(id, func(it *ImportItem) {
		it.DestinationID = created.ID
	}); err != nil {
		o.fail(ctx, id, err)
		return
	}

	// uploading
	if !o.transition(ctx, id, StageUploading, progressUploadLo, "Uploading "+sizeText) {
		return
	}
	if err := o.dest.UploadBinary(ctx, created.UploadURL, data, contentType(rendition), o.progressFunc(ctx, id, progressUploadLo, progressUploadHi, "Uploading "+sizeText)); err != nil {
		o.fail(ctx, id, fmt.Errorf("upload: %w", err))
		return
	}
	data = nil // release the payload before polling

	// uploading_thumbnail: skipped entirely when the source has none;
	// entered but soft-failed when the transfer itself breaks.
	if thumb := selectThumbnail(video.Pictures.Sizes); thumb != nil {
		if !o.transition(ctx, id, StageUploadingThumbnail, progressThumbnail, "Transferring thumbnail") {
			return
		}
		o.transferThumbnail(ctx, id, created.ID, thumb.Link)
	}

	// polling
	if !o.transition(ctx, id, StagePolling, progressPolling, "Waiting for destination processing") {
		return
	}
	o.startPolling(ctx, id, created.ID)
}

// transferThumbnail downloads and uploads the thumbnail. Failure here is
// degraded-non-fatal: logged and published, never failing the import.
func (o *Orchestrator) transferThumbnail(ctx context.Context, id, recordID, url string) {
	thumbData, err := o.source.Download(ctx, url, nil)
	if err == nil {
		var thumbURL string
		thumbURL, err = o.dest.UploadThumbnail(ctx, recordID, thumbData)
		if err == nil {
			_, _ = o.store.Update(id, func(it *ImportItem) {
				it.ThumbnailURL = thumbURL
			})
			return
		}
	}

	o.log.Warn("thumbnail transfer failed, continuing without one", "item_id", id, "error", err)
	o.publish(ctx, &events.ThumbnailSkipped{
		BaseEvent: events.NewBaseEvent(events.EventThumbnailSkipped, events.EntityItem, id),
		ItemID:    id,
		Reason:    err.Error(),
	})
}

// startPolling registers the recurring status check. Registration is a
// no-op when a timer for the id is already live.
func (o *Orchestrator) startPolling(ctx context.Context, id, recordID string) {
	registered := o.poller.Register(ctx, id, o.pollInterval, func(tickCtx context.Context) {
		o.pollOnce(tickCtx, id, recordID)
	})
	if !registered {
		o.log.Debug("poll timer already live", "item_id", id)
	}
}

// pollOnce performs one status check and applies the terminal transition
// when the destination reports one.
func (o *Orchestrator) pollOnce(ctx context.Context, id, recordID string) {
	status, err := o.dest.GetStatus(ctx, recordID)
	if err != nil {
		// Transient poll failures keep the timer running; the next tick
		// retries.
		o.log.Warn("status poll failed", "item_id", id, "error", err)
		return
	}

	switch {
	case doneStatuses[status]:
		o.poller.Cancel(id)
		item, err := o.store.Update(id, func(it *ImportItem) {
			it.Stage = StageComplete
			it.Progress = 100
			it.StatusText = "Complete"
			it.ErrorMessage = ""
		})
		if err != nil {
			o.log.Error("complete transition failed", "item_id", id, "error", err)
			return
		}
		o.log.Info("import complete", "item_id", id, "destination_id", recordID)
		o.publish(ctx, &events.ImportCompleted{
			BaseEvent:     events.NewBaseEvent(events.EventImportCompleted, events.EntityItem, id),
			ItemID:        id,
			SourceID:      item.SourceID,
			DestinationID: recordID,
			ThumbnailURL:  item.ThumbnailURL,
		})
	case errorStatuses[status]:
		o.poller.Cancel(id)
		o.fail(ctx, id, fmt.Errorf("destination processing failed with status %q", status))
	default:
		_, _ = o.store.Update(id, func(it *ImportItem) {
			it.StatusText = "Processing: " + status
		})
	}
}

// transition moves the item to the next stage, persists, and publishes.
// Returns false when the transition is not valid for the item's current
// stage (e.g. the item was removed or already failed).
func (o *Orchestrator) transition(ctx context.Context, id string, to Stage, progress float64, statusText string) bool {
	var from Stage
	var sourceID string
	var invalid error
	item, err := o.store.Update(id, func(it *ImportItem) {
		from = it.Stage
		sourceID = it.SourceID
		if err := it.Stage.ValidateTransition(to); err != nil {
			invalid = err
			return
		}
		it.Stage = to
		it.Progress = progress
		it.StatusText = statusText
	})
	if err != nil {
		o.log.Error("transition failed", "item_id", id, "to", to, "error", err)
		return false
	}
	if invalid != nil {
		o.log.Warn("transition rejected", "item_id", id, "error", invalid)
		return false
	}

	o.log.Debug("stage changed", "item_id", id, "from", from, "to", to)
	o.publish(ctx, &events.StageChanged{
		BaseEvent: events.NewBaseEvent(events.EventStageChanged, events.EntityItem, id),
		ItemID:    id,
		SourceID:  sourceID,
		From:      string(from),
		To:        string(to),
	})
	o.publishProgress(ctx, id, item.Progress, item.StatusText)
	return true
}

// fail moves the item to error from whatever stage it is in, keeping
// already-assigned fields untouched. The error message distinguishes
// transport, rejection, and local failures via the wrapped sentinels.
func (o *Orchestrator) fail(ctx context.Context, id string, cause error) {
	o.poller.Cancel(id)

	var stage Stage
	var sourceID string
	item, err := o.store.Update(id, func(it *ImportItem) {
		stage = it.Stage
		sourceID = it.SourceID
		it.Stage = StageError
		it.ErrorMessage = cause.Error()
		it.StatusText = "Failed"
	})
	if err != nil {
		o.log.Error("error transition failed", "item_id", id, "error", err)
		return
	}

	o.log.Error("import failed", "item_id", id, "stage", stage, "error", cause)
	o.publish(ctx, &events.ImportFailed{
		BaseEvent: events.NewBaseEvent(events.EventImportFailed, events.EntityItem, id),
		ItemID:    id,
		SourceID:  sourceID,
		Stage:     string(stage),
		Reason:    item.ErrorMessage,
	})
}

// setProgress updates progress and status text without a stage change.
func (o *Orchestrator) setProgress(ctx context.Context, id string, progress float64, statusText string) {
	item, err := o.store.Update(id, func(it *ImportItem) {
		if progress > it.Progress {
			it.Progress = progress
		}
		it.StatusText = statusText
	})
	if err != nil {
		return
	}
	o.publishProgress(ctx, id, item.Progress, item.StatusText)
}

// progressFunc maps a transfer's fractional progress onto [lo, hi] of the
// overall scale. Writes are coalesced to whole-point steps so a chunked
// transfer does not persist on every read.
func (o *Orchestrator) progressFunc(ctx context.Context, id string, lo, hi float64, statusText string) func(done, total int64) {
	last := lo
	return func(done, total int64) {
		if total <= 0 {
			return
		}
		p := lo + (hi-lo)*float64(done)/float64(total)
		if p > hi {
			p = hi
		}
		if p-last < 1 {
			return
		}
		last = p
		o.setProgress(ctx, id, p, statusText)
	}
}

func (o *Orchestrator) publish(ctx context.Context, e events.Event) {
	if o.bus != nil {
		_ = o.bus.Publish(ctx, e)
	}
}

func (o *Orchestrator) publishProgress(ctx context.Context, id string, progress float64, statusText string) {
	o.publish(ctx, &events.ProgressUpdated{
		BaseEvent:  events.NewBaseEvent(events.EventProgressUpdated, events.EntityItem, id),
		ItemID:     id,
		Progress:   progress,
		StatusText: statusText,
	})
}

// selectRendition picks the largest rendition excluding the source class.
// Ties break to the first encountered. Returns nil when none qualify.
func selectRendition(files []vimeo.File) *vimeo.File {
	var best *vimeo.File
	for i := range files {
		f := &files[i]
		if f.Quality == vimeo.QualitySource {
			continue
		}
		if best == nil || f.Size > best.Size {
			best = f
		}
	}
	return best
}

// selectThumbnail picks the widest thumbnail rendition, first max wins.
func selectThumbnail(sizes []vimeo.PictureSize) *vimeo.PictureSize {
	var best *vimeo.PictureSize
	for i := range sizes {
		s := &sizes[i]
		if best == nil || s.Width > best.Width {
			best = s
		}
	}
	return best
}

// buildRecordFields assembles the destination record request from the
// item's immutable option snapshot. Tags are comma-split, trimmed, empties
// dropped, and the source marker tag appended.
func buildRecordFields(title, sourceID string, opts Options) youtube.RecordFields {
	var tags []string
	for _, t := range strings.Split(opts.Tags, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	tags = append(tags, youtube.SourceTag(sourceID))

	return youtube.RecordFields{
		Title:      title,
		Visibility: opts.Visibility,
		Language:   opts.Language,
		Category:   opts.Category,
		Tags:       tags,
	}
}

// contentType returns the rendition's MIME type with a safe fallback.
func contentType(f *vimeo.File) string {
	if f.Type != "" {
		return f.Type
	}
	return "video/mp4"
}
