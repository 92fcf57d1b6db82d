package reconcile

import (
	"errors"
	"fmt"
)

var (
	// ErrDestinationFolderMissing marks a mapped folder that vanished from the
	// destination. The engine recovers by creating it again.
	ErrDestinationFolderMissing = errors.New("destination folder missing")

	// ErrRunInProgress is returned when a run is requested while another one
	// holds the engine.
	ErrRunInProgress = errors.New("reconciliation already in progress")
)

// MutationFailure wraps a failed destination call. It is logged and counted;
// the run carries on.
type MutationFailure struct {
	Op  string
	ID  string
	URL string
	Err error
}

func (e *MutationFailure) Error() string {
	target := e.ID
	if e.URL != "" {
		target = e.URL
	}
	return fmt.Sprintf("failed to %s %s: %v", e.Op, target, e.Err)
}

func (e *MutationFailure) Unwrap() error { return e.Err }

// SourceFetchFailure wraps a failed source listing. The affected subtree keeps
// its previous state.
type SourceFetchFailure struct {
	CollectionID int64
	Err          error
}

func (e *SourceFetchFailure) Error() string {
	if e.CollectionID == 0 {
		return fmt.Sprintf("failed to list source collections: %v", e.Err)
	}
	return fmt.Sprintf("failed to list items of collection %d: %v", e.CollectionID, e.Err)
}

func (e *SourceFetchFailure) Unwrap() error { return e.Err }

// StatePersistFailure is returned when the final state write fails. The
// destination has already been mutated at that point.
type StatePersistFailure struct {
	Err error
}

func (e *StatePersistFailure) Error() string {
	return fmt.Sprintf("failed to persist sync state: %v", e.Err)
}

func (e *StatePersistFailure) Unwrap() error { return e.Err }
