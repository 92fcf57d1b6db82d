// Package state holds the snapshot that makes incremental sync possible.
//
// A SyncState maps every synced bookmark (keyed by normalized URL) to what was
// last written for it, and every source collection to the destination folder
// created for it. It is read once when a run starts and replaced as a whole
// when the run succeeds. A run that fails never writes it, so the previous
// snapshot stays authoritative.
//
// # Stores
//
// The snapshot is kept as one JSON blob under one well-known key. Four
// backends implement Store:
//   - FileStore: a file on an afero filesystem, replaced through rename.
//   - ObjectStore: an object in a MinIO/S3 bucket.
//   - DBStore: a row in the sync_states table via GORM.
//   - MemoryStore: process memory, for tests and dry runs.
//
// # Usage
//
//	store, err := state.NewStore(cfg.State, state.Deps{Fs: afero.NewOsFs()})
//	prev, err := store.Load(ctx) // nil when nothing was saved yet
package state
