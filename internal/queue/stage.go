package queue

import "fmt"

// Stage tracks an import item's position in the transfer pipeline.
type Stage string

const (
	StageChecking           Stage = "checking"
	StageFetchingMetadata   Stage = "fetching_metadata"
	StageDownloading        Stage = "downloading"
	StageCreatingRecord     Stage = "creating_record"
	StageUploading          Stage = "uploading"
	StageUploadingThumbnail Stage = "uploading_thumbnail"
	StagePolling            Stage = "polling"
	StageComplete           Stage = "complete"
	StageError              Stage = "error"
)

// validTransitions defines allowed stage transitions.
// Key is the "from" stage, value is list of valid "to" stages.
// Every non-terminal stage may fail into error. uploading may skip
// uploading_thumbnail when the source has no eligible thumbnail.
var validTransitions = map[Stage][]Stage{
	StageChecking:           {StageFetchingMetadata, StageError},
	StageFetchingMetadata:   {StageDownloading, StageError},
	StageDownloading:        {StageCreatingRecord, StageError},
	StageCreatingRecord:     {StageUploading, StageError},
	StageUploading:          {StageUploadingThumbnail, StagePolling, StageError},
	StageUploadingThumbnail: {StagePolling, StageError},
	StagePolling:            {StageComplete, StageError},
	StageComplete:           {}, // terminal
	StageError:              {}, // terminal
}

// CanTransitionTo returns true if transitioning from s to target is valid.
func (s Stage) CanTransitionTo(target Stage) bool {
	valid, ok := validTransitions[s]
	if !ok {
		return false
	}
	for _, v := range valid {
		if v == target {
			return true
		}
	}
	return false
}

// ValidateTransition returns ErrInvalidTransition when the state machine
// does not allow moving from s to target.
func (s Stage) ValidateTransition(target Stage) error {
	if !s.CanTransitionTo(target) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, s, target)
	}
	return nil
}

// IsTerminal returns true if this stage has no valid outgoing transitions.
func (s Stage) IsTerminal() bool {
	return s == StageComplete || s == StageError
}
