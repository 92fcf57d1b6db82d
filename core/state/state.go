package state

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// DefaultKey is the well-known key the snapshot is stored under.
const DefaultKey = "bookmark-sync/state.json"

// BookmarkState records what was written to the destination for one bookmark.
type BookmarkState struct {
	URL                string     `json:"url"`
	Title              string     `json:"title"`
	SourceCollectionID int64      `json:"sourceCollectionId"`
	SourceItemID       int64      `json:"sourceItemId"`
	LastModified       *time.Time `json:"lastModified,omitempty"`
	Cover              string     `json:"cover,omitempty"`
}

// CollectionState records a collection as it stood when its folder was last
// written. Folder renames and moves follow changes to these values only.
type CollectionState struct {
	Title              string `json:"title"`
	ParentCollectionID int64  `json:"parentCollectionId"`
}

// SyncState is the snapshot left behind by the last successful run.
type SyncState struct {
	// Bookmarks is keyed by normalized URL.
	Bookmarks map[string]BookmarkState `json:"bookmarks"`
	// CollectionFolders maps source collection ids to destination folder ids.
	CollectionFolders map[int64]string `json:"collectionFolders"`
	// Collections is keyed like CollectionFolders. Snapshots written before it
	// existed decode with an empty map.
	Collections map[int64]CollectionState `json:"collections,omitempty"`
	LastSync    time.Time                 `json:"lastSync"`
}

// New returns an empty snapshot.
func New() *SyncState {
	return &SyncState{
		Bookmarks:         make(map[string]BookmarkState),
		CollectionFolders: make(map[int64]string),
		Collections:       make(map[int64]CollectionState),
	}
}

// Clone returns a deep copy.
func (s *SyncState) Clone() *SyncState {
	c := New()
	c.LastSync = s.LastSync
	for k, v := range s.Bookmarks {
		c.Bookmarks[k] = v
	}
	for k, v := range s.CollectionFolders {
		c.CollectionFolders[k] = v
	}
	for k, v := range s.Collections {
		c.Collections[k] = v
	}
	return c
}

// Store persists a SyncState under a single key.
type Store interface {
	// Load returns nil and no error when nothing has been saved yet.
	Load(ctx context.Context) (*SyncState, error)
	// Save replaces the stored snapshot as a whole.
	Save(ctx context.Context, s *SyncState) error
	// Clear removes the stored snapshot.
	Clear(ctx context.Context) error
}

// Encode serializes a snapshot into the persisted layout.
func Encode(s *SyncState) ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return data, nil
}

// Decode parses the persisted layout. Missing maps come back empty.
func Decode(data []byte) (*SyncState, error) {
	s := New()
	if err := json.Unmarshal(data, s); err != nil {
		return nil, fmt.Errorf("failed to parse state: %w", err)
	}
	if s.Bookmarks == nil {
		s.Bookmarks = make(map[string]BookmarkState)
	}
	if s.CollectionFolders == nil {
		s.CollectionFolders = make(map[int64]string)
	}
	if s.Collections == nil {
		s.Collections = make(map[int64]CollectionState)
	}
	return s, nil
}
