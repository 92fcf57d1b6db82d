package reconcile

import (
	"context"
	"fmt"

	"bookmark-sync/core/bookmark"
	"bookmark-sync/core/tree"
)

// SourceSnapshot lists every collection and item of src into one tree rooted
// at an untitled collection, ready to be diffed against DestinationSnapshot.
func SourceSnapshot(ctx context.Context, src Source, opts Options) (*tree.TreeNode[tree.NodeData], error) {
	opts = opts.withDefaults()

	collections, err := src.ListCollectionsAsTree(ctx)
	if err != nil {
		return nil, &SourceFetchFailure{Err: err}
	}

	var list []tree.NodeData
	appendItems := func(c bookmark.Collection) error {
		items, err := src.ListItems(ctx, c.CollectionID)
		if err != nil {
			return &SourceFetchFailure{CollectionID: c.CollectionID, Err: err}
		}
		for _, item := range items {
			// Items are filed under the collection that listed them.
			item.CollectionID = c.CollectionID
			list = append(list, item)
		}
		return nil
	}

	var walkErr error
	collections.Walk(func(n *tree.TreeNode[bookmark.Collection]) bool {
		if n.IsSynthetic() || n.Data.CollectionID == 0 || n.Data.IsUnsorted() {
			return true
		}
		list = append(list, n.Data)
		if walkErr = appendItems(n.Data); walkErr != nil {
			return false
		}
		return ctx.Err() == nil
	})
	if walkErr != nil {
		return nil, walkErr
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if opts.IncludeUnsorted {
		unsorted := bookmark.Unsorted(opts.UnsortedTitle)
		list = append(list, unsorted)
		if err := appendItems(unsorted); err != nil {
			return nil, err
		}
	}

	return tree.CreateTreeWithRoot[tree.NodeData](bookmark.Collection{}, list)
}

// DestinationSnapshot reads the destination subtree under rootID.
func DestinationSnapshot(ctx context.Context, dest Destination, rootID string) (*tree.TreeNode[tree.NodeData], error) {
	root, err := dest.GetFolder(ctx, rootID)
	if err != nil {
		return nil, fmt.Errorf("failed to get destination root %s: %w", rootID, err)
	}

	var list []tree.NodeData
	queue := []string{rootID}
	for len(queue) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		folderID := queue[0]
		queue = queue[1:]

		children, err := dest.ListChildren(ctx, folderID)
		if err != nil {
			return nil, fmt.Errorf("failed to list destination folder %s: %w", folderID, err)
		}
		for _, child := range children {
			list = append(list, child)
			if child.IsFolder() {
				queue = append(queue, child.ID())
			}
		}
	}

	return tree.CreateTreeWithRoot[tree.NodeData](root, list)
}
