// Package reconcile keeps a destination bookmark tree in step with a source
// tree.
//
// Two pieces live here:
//
// 1. Diff: Compute flattens two trees into maps keyed by a KeyFunc and
// partitions the nodes into four disjoint lists (only in left, only in right,
// matched but different, unchanged). Leaves are keyed by normalized URL and
// folders by their path, so the two sides never need to share an id space.
//
// 2. Engine: a state machine that walks the source tree and issues the
// smallest set of create, update, move and remove calls against a
// Destination. Between runs it keeps a state.SyncState mapping URLs and
// collections to what was written, which makes re-runs cheap and idempotent.
//
// # Run phases
//
//	LOADING_STATE -> BUILDING_SOURCE_TREE -> WALKING_TREE -> DELETING_STALE -> PERSISTING_STATE -> DONE
//
// Any phase may end in FAILED. The previous SyncState is only replaced in
// PERSISTING_STATE, so a failed or cancelled run leaves it authoritative.
// Mutations already issued are not rolled back; the next run converges.
//
// # Destination edits
//
// Titles and positions changed by hand on the destination are kept. Folders
// follow a source rename or re-parent only when the source value differs from
// the one recorded at the last run. A synced folder moved outside the managed
// root is left alone and replaced by a new one. A run that could not read part
// of the source deletes nothing.
//
// # Concurrency
//
// Sibling collections are processed concurrently. A collection's folder is
// resolved and its items written before any of its children start, because
// the children need the resolved folder id. Fan-out width is bounded by
// Options.Concurrency.
//
// # Usage
//
//	engine := reconcile.NewEngine(source, destination, store, logger, reconcile.Options{
//	    IncludeUnsorted: true,
//	})
//	stats, err := engine.Sync(ctx, reconcile.ModeIncremental, rootFolderID)
//
// Both Source and Destination are interfaces so the engine can run against
// in-memory fakes.
package reconcile
