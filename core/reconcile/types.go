package reconcile

import (
	"fmt"
	"time"
)

// Stats counts what a run did to the destination.
type Stats struct {
	// Added counts bookmarks created in the destination.
	Added int `json:"added"`

	// Updated counts bookmarks renamed or moved.
	Updated int `json:"updated"`

	// Deleted counts URLs whose destination bookmarks were removed.
	Deleted int `json:"deleted"`

	// Unchanged counts bookmarks that needed no mutation.
	Unchanged int `json:"unchanged"`

	// Failed counts mutation and source fetch failures. Failed work is
	// retried by the next run.
	Failed int `json:"failed"`
}

// Phase is a step of a run's state machine.
type Phase string

const (
	PhaseLoadingState       Phase = "LOADING_STATE"
	PhaseBuildingSourceTree Phase = "BUILDING_SOURCE_TREE"
	PhaseWalkingTree        Phase = "WALKING_TREE"
	PhaseDeletingStale      Phase = "DELETING_STALE"
	PhasePersistingState    Phase = "PERSISTING_STATE"
	PhaseDone               Phase = "DONE"
	PhaseFailed             Phase = "FAILED"
)

// Mode selects how a run treats the existing destination.
type Mode string

const (
	// ModeIncremental applies the delta against the previous SyncState.
	ModeIncremental Mode = "incremental"
	// ModeFull clears the destination root and rebuilds it from the source.
	ModeFull Mode = "full"
)

// ParseMode accepts "incremental", "full" or an empty string (incremental).
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeIncremental:
		return ModeIncremental, nil
	case ModeFull:
		return ModeFull, nil
	default:
		return "", fmt.Errorf("unknown sync mode %q", s)
	}
}

// DefaultUnsortedTitle names the destination folder for unsorted items.
const DefaultUnsortedTitle = "Unsorted"

// Options tunes an Engine.
type Options struct {
	// Concurrency bounds how many siblings are processed at once.
	// Zero or less uses 4.
	Concurrency int

	// IncludeUnsorted syncs the unsorted pseudo-collection into its own
	// folder under the destination root.
	IncludeUnsorted bool

	// UnsortedTitle names that folder. Defaults to DefaultUnsortedTitle.
	UnsortedTitle string

	// Now stamps SyncState.LastSync. Defaults to time.Now.
	Now func() time.Time

	// OnPhase observes state machine transitions. It is called synchronously
	// from the run.
	OnPhase func(Phase)
}

func (o Options) withDefaults() Options {
	if o.Concurrency <= 0 {
		o.Concurrency = 4
	}
	if o.UnsortedTitle == "" {
		o.UnsortedTitle = DefaultUnsortedTitle
	}
	if o.Now == nil {
		o.Now = time.Now
	}
	return o
}
