// Package bookmarks exposes bookmark syncing over HTTP.
//
// The Service wraps a reconcile.Engine with the managed root folder, a time
// limit and request coalescing, and adds a read-only diff preview.
//
// # HTTP Endpoints
//
//   - POST /sync?mode=incremental|full : Runs a sync and returns its stats.
//   - GET /sync/diff : Lists what a sync would add, remove and update.
//   - GET /sync/state : Returns the stored SyncState.
//   - DELETE /sync/state : Clears the stored SyncState.
package bookmarks
