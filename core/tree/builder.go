package tree

import (
	"context"
	"fmt"
)

// CreateTree builds a hierarchy from a flat listing.
//
// Elements with an empty ParentID are top level. A single top-level element
// becomes the root; otherwise a synthetic root wraps all of them. Children keep
// the order in which they appear in list.
func CreateTree[T NodeData](list []T) (*TreeNode[T], error) {
	return build(nil, list)
}

// CreateTreeWithRoot builds a hierarchy under an explicit root. Elements whose
// ParentID is empty or equal to root.ID() attach directly to it. The root may
// also appear in list, in which case that entry is skipped.
func CreateTreeWithRoot[T NodeData](root T, list []T) (*TreeNode[T], error) {
	return build(NewNode(root), list)
}

func build[T NodeData](root *TreeNode[T], list []T) (*TreeNode[T], error) {
	rootID := ""
	if root != nil {
		rootID = root.Data.ID()
	}

	index := make(map[string]*TreeNode[T], len(list))
	nodes := make([]*TreeNode[T], 0, len(list))
	for _, data := range list {
		id := data.ID()
		if root != nil && id == rootID {
			continue
		}
		if _, dup := index[id]; dup {
			return nil, &MalformedTreeError{NodeID: id, Reason: "duplicate id"}
		}
		node := NewNode(data)
		index[id] = node
		nodes = append(nodes, node)
	}

	var top []*TreeNode[T]
	for _, node := range nodes {
		parentID := node.Data.ParentID()
		if parentID == "" || (root != nil && parentID == rootID) {
			top = append(top, node)
			continue
		}
		parent, ok := index[parentID]
		if !ok {
			return nil, &MalformedTreeError{NodeID: node.Data.ID(), ParentID: parentID, Reason: "unresolved parent"}
		}
		parent.AddChild(node)
	}

	expected := len(nodes)
	switch {
	case root != nil:
		expected++
	case len(top) == 1:
		root = top[0]
		top = nil
	default:
		root = newSyntheticRoot[T]()
		expected++
	}
	for _, node := range top {
		root.AddChild(node)
	}

	// Anything not reachable from the root hangs off a cycle.
	visited := make(map[*TreeNode[T]]struct{}, expected)
	root.Walk(func(n *TreeNode[T]) bool {
		visited[n] = struct{}{}
		return true
	})
	if len(visited) != expected {
		for _, node := range nodes {
			if _, ok := visited[node]; !ok {
				return nil, &MalformedTreeError{NodeID: node.Data.ID(), ParentID: node.Data.ParentID(), Reason: "cycle through parent"}
			}
		}
	}

	return root, nil
}

// Builder accumulates a listing that arrives in pages.
type Builder[T NodeData] struct {
	items []T
}

// NewBuilder creates an empty builder.
func NewBuilder[T NodeData]() *Builder[T] {
	return &Builder[T]{}
}

// Add appends one page of elements.
func (b *Builder[T]) Add(page ...T) *Builder[T] {
	b.items = append(b.items, page...)
	return b
}

// Len returns the number of elements collected so far.
func (b *Builder[T]) Len() int {
	return len(b.items)
}

// Build creates the tree from everything added so far.
func (b *Builder[T]) Build() (*TreeNode[T], error) {
	return CreateTree(b.items)
}

// BuildWithRoot creates the tree under an explicit root.
func (b *Builder[T]) BuildWithRoot(root T) (*TreeNode[T], error) {
	return CreateTreeWithRoot(root, b.items)
}

// PageFunc fetches one page of a listing. more reports whether another page
// follows.
type PageFunc[T NodeData] func(ctx context.Context, page int) (items []T, more bool, err error)

// FromPages drains a paginated listing, starting at page 0, and builds it.
func FromPages[T NodeData](ctx context.Context, fetch PageFunc[T]) (*TreeNode[T], error) {
	b := NewBuilder[T]()
	for page := 0; ; page++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		items, more, err := fetch(ctx, page)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch page %d: %w", page, err)
		}
		b.Add(items...)
		if !more {
			break
		}
	}
	return b.Build()
}
