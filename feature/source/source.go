package source

import (
	"context"
	"fmt"
	"sync"

	"bookmark-sync/core/bookmark"
	"bookmark-sync/core/reconcile"
	"bookmark-sync/core/tree"

	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"
)

// DefaultPageSize is how many collections one listing page carries.
const DefaultPageSize = 50

// Snapshot is the on-disk export format. JSON exports parse as well.
type Snapshot struct {
	Collections []bookmark.Collection `yaml:"collections"`
	Items       []bookmark.Item       `yaml:"items"`
}

// Source serves a bookmark export file as a reconcile.Source.
//
// ListCollectionsAsTree rereads the file; ListItems answers from the copy it
// loaded, so one run sees a consistent export.
type Source struct {
	fs       afero.Fs
	path     string
	pageSize int

	mu       sync.Mutex
	snapshot *Snapshot
}

// NewSource creates a source reading path from fs.
func NewSource(fs afero.Fs, path string) *Source {
	return &Source{fs: fs, path: path, pageSize: DefaultPageSize}
}

// Path returns the export file location.
func (s *Source) Path() string {
	return s.path
}

// Load reads and validates the export file.
func (s *Source) Load() (*Snapshot, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read source %s: %w", s.path, err)
	}

	var snap Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to parse source %s: %w", s.path, err)
	}
	if err := snap.validate(); err != nil {
		return nil, fmt.Errorf("invalid source %s: %w", s.path, err)
	}

	s.mu.Lock()
	s.snapshot = &snap
	s.mu.Unlock()
	return &snap, nil
}

func (s *Source) current() (*Snapshot, error) {
	s.mu.Lock()
	snap := s.snapshot
	s.mu.Unlock()
	if snap != nil {
		return snap, nil
	}
	return s.Load()
}

// ListCollectionsAsTree implements reconcile.Source. Collections are paged
// through tree.FromPages the way a remote listing would be.
func (s *Source) ListCollectionsAsTree(ctx context.Context) (*tree.TreeNode[bookmark.Collection], error) {
	snap, err := s.Load()
	if err != nil {
		return nil, err
	}

	collections := snap.Collections
	return tree.FromPages(ctx, func(ctx context.Context, page int) ([]bookmark.Collection, bool, error) {
		start := page * s.pageSize
		if start >= len(collections) {
			return nil, false, nil
		}
		end := min(start+s.pageSize, len(collections))
		return collections[start:end], end < len(collections), nil
	})
}

// ListItems implements reconcile.Source. Items without a collection belong to
// the unsorted pseudo-collection.
func (s *Source) ListItems(ctx context.Context, collectionID int64) ([]bookmark.Item, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	snap, err := s.current()
	if err != nil {
		return nil, err
	}

	var items []bookmark.Item
	for _, item := range snap.Items {
		owner := item.CollectionID
		if owner == 0 {
			owner = bookmark.UnsortedCollectionID
		}
		if owner == collectionID {
			items = append(items, item)
		}
	}
	return items, nil
}

func (snap *Snapshot) validate() error {
	seen := make(map[int64]struct{}, len(snap.Collections))
	for _, c := range snap.Collections {
		if c.CollectionID <= 0 {
			return fmt.Errorf("collection %q has invalid id %d", c.Title, c.CollectionID)
		}
		if _, dup := seen[c.CollectionID]; dup {
			return fmt.Errorf("duplicate collection id %d", c.CollectionID)
		}
		seen[c.CollectionID] = struct{}{}
	}
	for _, item := range snap.Items {
		if item.Link == "" {
			return fmt.Errorf("item %d has no link", item.ItemID)
		}
	}
	return nil
}

var _ reconcile.Source = (*Source)(nil)
