package reconcile

import (
	"context"

	"bookmark-sync/core/bookmark"
	"bookmark-sync/core/tree"
)

// Source lists the authoritative side of a sync.
type Source interface {
	// ListCollectionsAsTree returns every collection. Top-level collections
	// have ParentCollectionID 0; several of them come back under a synthetic
	// root.
	ListCollectionsAsTree(ctx context.Context) (*tree.TreeNode[bookmark.Collection], error)

	// ListItems returns the items filed directly under a collection.
	// bookmark.UnsortedCollectionID lists items that belong to no collection.
	ListItems(ctx context.Context, collectionID int64) ([]bookmark.Item, error)
}

// Destination is the mutable side of a sync.
//
// UpdateItem and MoveItem accept folder ids as well as entry ids, which is how
// renamed and re-parented collections are carried over.
type Destination interface {
	// CreateFolder appends a folder under parentID.
	CreateFolder(ctx context.Context, parentID, title string) (bookmark.Folder, error)

	// CreateItem appends a bookmark under parentID.
	CreateItem(ctx context.Context, parentID, title, url string) (bookmark.Entry, error)

	UpdateItem(ctx context.Context, id string, changes bookmark.ItemChanges) error

	MoveItem(ctx context.Context, id, parentID string) error

	// RemoveItem removes a single bookmark.
	RemoveItem(ctx context.Context, id string) error

	// RemoveSubtree removes a folder and everything below it.
	RemoveSubtree(ctx context.Context, id string) error

	// FindItemsByURL returns every bookmark whose normalized URL equals the
	// normalized form of url, wherever it lives.
	FindItemsByURL(ctx context.Context, url string) ([]bookmark.Entry, error)

	// GetFolder returns bookmark.ErrNotFound when the folder does not exist.
	GetFolder(ctx context.Context, id string) (bookmark.Folder, error)

	// ListChildren returns the direct children of a folder in position order,
	// as bookmark.Folder and bookmark.Entry values.
	ListChildren(ctx context.Context, folderID string) ([]tree.NodeData, error)
}
