package tree

// NodeData is the identity contract every tree element satisfies.
type NodeData interface {
	// ID is unique within its own tree.
	ID() string
	// ParentID is empty only for a top-level element.
	ParentID() string
	// Hash is a content fingerprint used for cross-tree matching.
	Hash() string
	// Name is the display label.
	Name() string
	// URL is empty for folders.
	URL() string
	IsFolder() bool
}

// TreeNode holds a payload and exclusively owns its ordered children.
type TreeNode[T NodeData] struct {
	// Data is the zero value on a synthetic root.
	Data T
	// Children keeps the insertion order of the source listing.
	Children []*TreeNode[T]

	parent    *TreeNode[T]
	synthetic bool
}

// NewNode wraps data in a detached node.
func NewNode[T NodeData](data T) *TreeNode[T] {
	return &TreeNode[T]{Data: data}
}

// newSyntheticRoot returns a root that carries no payload.
func newSyntheticRoot[T NodeData]() *TreeNode[T] {
	return &TreeNode[T]{synthetic: true}
}

// Parent returns nil for the root.
func (n *TreeNode[T]) Parent() *TreeNode[T] {
	return n.parent
}

// IsRoot reports whether the node has no parent.
func (n *TreeNode[T]) IsRoot() bool {
	return n.parent == nil
}

// IsSynthetic reports whether the node is a wrapping root with no payload.
func (n *TreeNode[T]) IsSynthetic() bool {
	return n.synthetic
}

// IsLeaf reports whether the node carries a non-folder payload.
func (n *TreeNode[T]) IsLeaf() bool {
	return !n.synthetic && !n.Data.IsFolder()
}

// AddChild appends child and links it back to n.
func (n *TreeNode[T]) AddChild(child *TreeNode[T]) {
	child.parent = n
	n.Children = append(n.Children, child)
}

// Depth is the number of edges between the node and its root.
func (n *TreeNode[T]) Depth() int {
	depth := 0
	for p := n.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// FullPath returns the names from the root (exclusive) down to n (inclusive).
// It walks parent references only, so it costs O(depth).
func (n *TreeNode[T]) FullPath() []string {
	depth := n.Depth()
	path := make([]string, depth)
	cur := n
	for i := depth - 1; i >= 0; i-- {
		path[i] = cur.Data.Name()
		cur = cur.parent
	}
	return path
}

// Walk visits n and its descendants in pre-order. Returning false from fn
// stops the walk.
func (n *TreeNode[T]) Walk(fn func(*TreeNode[T]) bool) bool {
	if !fn(n) {
		return false
	}
	for _, child := range n.Children {
		if !child.Walk(fn) {
			return false
		}
	}
	return true
}

// Nodes returns every node below n in pre-order, n excluded.
func (n *TreeNode[T]) Nodes() []*TreeNode[T] {
	var nodes []*TreeNode[T]
	n.Walk(func(node *TreeNode[T]) bool {
		if node != n {
			nodes = append(nodes, node)
		}
		return true
	})
	return nodes
}

// Leaves returns every non-folder node below n in pre-order.
func (n *TreeNode[T]) Leaves() []*TreeNode[T] {
	var leaves []*TreeNode[T]
	n.Walk(func(node *TreeNode[T]) bool {
		if node != n && node.IsLeaf() {
			leaves = append(leaves, node)
		}
		return true
	})
	return leaves
}

// Len counts n and all of its descendants.
func (n *TreeNode[T]) Len() int {
	count := 0
	n.Walk(func(*TreeNode[T]) bool {
		count++
		return true
	})
	return count
}

// Find returns the first node in pre-order whose payload has the given id.
func (n *TreeNode[T]) Find(id string) *TreeNode[T] {
	var found *TreeNode[T]
	n.Walk(func(node *TreeNode[T]) bool {
		if !node.synthetic && node.Data.ID() == id {
			found = node
			return false
		}
		return true
	})
	return found
}
