package reconcile

import (
	"fmt"
	"io"
	"strings"

	"bookmark-sync/core/tree"
	"bookmark-sync/core/utils"
)

// KeyFunc derives the matching key of a node from its data and its full path.
type KeyFunc func(data tree.NodeData, path []string) string

// DefaultKey matches leaves by normalized URL and folders by their path below
// the root.
func DefaultKey(data tree.NodeData, path []string) string {
	if data.IsFolder() {
		return "folder:" + strings.Join(path, "/")
	}
	return "url:" + utils.NormalizeURL(data.URL())
}

// HashKey matches nodes by their content fingerprint.
func HashKey(data tree.NodeData, _ []string) string {
	return data.Hash()
}

// Pair is a node matched on both sides.
type Pair[L, R tree.NodeData] struct {
	Left  *tree.TreeNode[L]
	Right *tree.TreeNode[R]
}

// SyncDiff partitions the nodes of two trees. Every non-root node of the left
// tree lands in exactly one of OnlyInLeft, InBothButDifferent or Unchanged,
// and likewise for the right tree.
type SyncDiff[L, R tree.NodeData] struct {
	OnlyInLeft         []*tree.TreeNode[L]
	OnlyInRight        []*tree.TreeNode[R]
	InBothButDifferent []Pair[L, R]
	Unchanged          []Pair[L, R]
}

// DiffSummary holds the size of each partition.
type DiffSummary struct {
	OnlyInLeft  int `json:"onlyInLeft"`
	OnlyInRight int `json:"onlyInRight"`
	Different   int `json:"inBothButDifferent"`
	Unchanged   int `json:"unchanged"`
}

// HasChanges reports whether anything other than Unchanged is populated.
func (d *SyncDiff[L, R]) HasChanges() bool {
	return len(d.OnlyInLeft) > 0 || len(d.OnlyInRight) > 0 || len(d.InBothButDifferent) > 0
}

// Summary counts the partitions.
func (d *SyncDiff[L, R]) Summary() DiffSummary {
	return DiffSummary{
		OnlyInLeft:  len(d.OnlyInLeft),
		OnlyInRight: len(d.OnlyInRight),
		Different:   len(d.InBothButDifferent),
		Unchanged:   len(d.Unchanged),
	}
}

// ComputeDiff compares two trees with DefaultKey.
func ComputeDiff[L, R tree.NodeData](left *tree.TreeNode[L], right *tree.TreeNode[R]) *SyncDiff[L, R] {
	return Compute(left, right, DefaultKey)
}

// Compute compares two trees. Roots are not compared.
//
// When a key occurs more than once on one side, the first node in pre-order
// takes the match and the rest are reported as only on that side. Folders are
// compared by name alone; their children are matched on their own.
func Compute[L, R tree.NodeData](left *tree.TreeNode[L], right *tree.TreeNode[R], keyOf KeyFunc) *SyncDiff[L, R] {
	diff := &SyncDiff[L, R]{}

	rightNodes := right.Nodes()
	rightIndex := make(map[string]*tree.TreeNode[R], len(rightNodes))
	for _, node := range rightNodes {
		key := keyOf(node.Data, node.FullPath())
		if _, dup := rightIndex[key]; !dup {
			rightIndex[key] = node
		}
	}

	matched := make(map[*tree.TreeNode[R]]struct{}, len(rightIndex))
	seen := make(map[string]struct{})
	for _, node := range left.Nodes() {
		key := keyOf(node.Data, node.FullPath())
		if _, dup := seen[key]; dup {
			diff.OnlyInLeft = append(diff.OnlyInLeft, node)
			continue
		}
		seen[key] = struct{}{}

		other, ok := rightIndex[key]
		if !ok {
			diff.OnlyInLeft = append(diff.OnlyInLeft, node)
			continue
		}
		matched[other] = struct{}{}

		pair := Pair[L, R]{Left: node, Right: other}
		if sameAttributes(node.Data, other.Data) {
			diff.Unchanged = append(diff.Unchanged, pair)
		} else {
			diff.InBothButDifferent = append(diff.InBothButDifferent, pair)
		}
	}

	for _, node := range rightNodes {
		if _, ok := matched[node]; !ok {
			diff.OnlyInRight = append(diff.OnlyInRight, node)
		}
	}

	return diff
}

func sameAttributes(l, r tree.NodeData) bool {
	if l.IsFolder() != r.IsFolder() || l.Name() != r.Name() {
		return false
	}
	return l.IsFolder() || utils.SameURL(l.URL(), r.URL())
}

// FormatReport writes one line per changed node followed by a summary line.
//
//	+ Reading/Go blog <https://go.dev/blog>
//	- Old/stale <http://old.example>
//	~ Reading/Renamed <http://a.com>  (was "A")
func FormatReport[L, R tree.NodeData](w io.Writer, d *SyncDiff[L, R]) error {
	for _, node := range d.OnlyInLeft {
		if _, err := fmt.Fprintf(w, "+ %s\n", describe(node.Data, node.FullPath())); err != nil {
			return err
		}
	}
	for _, node := range d.OnlyInRight {
		if _, err := fmt.Fprintf(w, "- %s\n", describe(node.Data, node.FullPath())); err != nil {
			return err
		}
	}
	for _, pair := range d.InBothButDifferent {
		line := fmt.Sprintf("~ %s  (was %q)", describe(pair.Left.Data, pair.Left.FullPath()), pair.Right.Data.Name())
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}

	s := d.Summary()
	_, err := fmt.Fprintf(w, "%d to add, %d to remove, %d to update, %d unchanged\n",
		s.OnlyInLeft, s.OnlyInRight, s.Different, s.Unchanged)
	return err
}

func describe(data tree.NodeData, path []string) string {
	p := strings.Join(path, "/")
	if data.IsFolder() {
		return p + "/"
	}
	return fmt.Sprintf("%s <%s>", p, data.URL())
}
