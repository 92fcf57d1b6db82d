// Package tree provides the generic hierarchy used on both sides of a sync.
//
// Every element of a tree satisfies the NodeData capability: an identity in its
// own id space, a parent reference, a content fingerprint, a display name and
// an optional URL (absent for folders). TreeNode owns a payload and an ordered
// list of children, and keeps a back-reference to its parent so that paths can
// be computed without another traversal.
//
// # Building
//
// Trees are built from flat listings where each element names its parent:
//
//	root, err := tree.CreateTree(items)
//	if err != nil {
//	    var malformed *tree.MalformedTreeError
//	    errors.As(err, &malformed)
//	}
//
// When the listing arrives in pages, use a Builder or FromPages.
//
// Trees are immutable snapshots. Nothing here is safe for concurrent mutation,
// but a built tree may be read from many goroutines.
package tree
