// Package destination stores the synced bookmark tree in SQL.
//
// Every folder and bookmark is a row of bookmark_nodes linked through
// parent_id. Store implements reconcile.Destination on top of gorm, so the
// tree lives in sqlite for local use or MySQL when shared.
//
// Bookmarks are indexed by a fingerprint of their normalized URL, which is
// what FindItemsByURL matches on. Sibling order is kept in the position
// column.
package destination
