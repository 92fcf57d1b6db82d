package tree

import (
	"errors"
	"fmt"
)

// ErrMalformedTree matches every MalformedTreeError through errors.Is.
var ErrMalformedTree = errors.New("malformed tree")

// MalformedTreeError reports a listing that cannot form a single tree.
type MalformedTreeError struct {
	// NodeID is the element that could not be placed.
	NodeID string
	// ParentID is the reference that failed to resolve, if any.
	ParentID string
	// Reason is one of "unresolved parent", "duplicate id" or "cycle".
	Reason string
}

func (e *MalformedTreeError) Error() string {
	if e.ParentID != "" {
		return fmt.Sprintf("malformed tree: node %q: %s %q", e.NodeID, e.Reason, e.ParentID)
	}
	return fmt.Sprintf("malformed tree: node %q: %s", e.NodeID, e.Reason)
}

func (e *MalformedTreeError) Is(target error) bool {
	return target == ErrMalformedTree
}
