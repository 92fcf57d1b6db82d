package reconcile

import (
	"bytes"
	"context"
	"testing"

	"bookmark-sync/core/bookmark"
	"bookmark-sync/core/state"
	"bookmark-sync/core/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func folderNode(id, parent, title string) tree.NodeData {
	return bookmark.Folder{FolderID: id, ParentFolderID: parent, Title: title}
}

func entryNode(id, parent, title, url string) tree.NodeData {
	return bookmark.Entry{EntryID: id, ParentFolderID: parent, Title: title, Link: url}
}

func mustTree(t *testing.T, list ...tree.NodeData) *tree.TreeNode[tree.NodeData] {
	t.Helper()
	root, err := tree.CreateTreeWithRoot(folderNode("root", "", "Root"), list)
	require.NoError(t, err)
	return root
}

func sampleTree(t *testing.T) *tree.TreeNode[tree.NodeData] {
	return mustTree(t,
		folderNode("r", "root", "Reading"),
		entryNode("a", "r", "A", "http://a.com/"),
		entryNode("b", "r", "B", "http://b.com"),
		folderNode("g", "r", "Go"),
		entryNode("blog", "g", "Blog", "https://go.dev/blog"),
		entryNode("top", "root", "Top", "http://top.example"),
	)
}

func TestComputeDiff_Identical(t *testing.T) {
	left := sampleTree(t)
	right := sampleTree(t)

	diff := ComputeDiff(left, right)
	assert.Empty(t, diff.OnlyInLeft)
	assert.Empty(t, diff.OnlyInRight)
	assert.Empty(t, diff.InBothButDifferent)
	assert.Len(t, diff.Unchanged, len(left.Nodes()))
	assert.False(t, diff.HasChanges())
}

func TestComputeDiff_Partitions(t *testing.T) {
	left := mustTree(t,
		folderNode("r", "root", "Reading"),
		entryNode("a", "r", "A", "http://a.com/"),
		entryNode("b", "r", "B renamed", "http://b.com"),
		entryNode("n", "r", "New", "http://new.example"),
	)
	right := mustTree(t,
		folderNode("x", "root", "Reading"),
		entryNode("1", "x", "A", " http://a.com"),
		entryNode("2", "x", "B", "http://b.com/"),
		folderNode("y", "root", "Old"),
		entryNode("3", "y", "Gone", "http://gone.example"),
	)

	diff := ComputeDiff(left, right)

	require.Len(t, diff.OnlyInLeft, 1)
	assert.Equal(t, "n", diff.OnlyInLeft[0].Data.ID())

	var rightOnly []string
	for _, n := range diff.OnlyInRight {
		rightOnly = append(rightOnly, n.Data.ID())
	}
	assert.Equal(t, []string{"y", "3"}, rightOnly)

	require.Len(t, diff.InBothButDifferent, 1)
	assert.Equal(t, "b", diff.InBothButDifferent[0].Left.Data.ID())
	assert.Equal(t, "2", diff.InBothButDifferent[0].Right.Data.ID())

	// The folder matches by path even though its children differ.
	assert.Len(t, diff.Unchanged, 2)
	assert.Equal(t, DiffSummary{OnlyInLeft: 1, OnlyInRight: 2, Different: 1, Unchanged: 2}, diff.Summary())
	assert.True(t, diff.HasChanges())
}

func TestComputeDiff_DuplicateKeys(t *testing.T) {
	left := mustTree(t,
		folderNode("r", "root", "Reading"),
		entryNode("a1", "r", "A", "http://a.com"),
		folderNode("l", "root", "Later"),
		entryNode("a2", "l", "A again", "http://a.com/"),
	)
	right := mustTree(t,
		folderNode("r", "root", "Reading"),
		entryNode("x1", "r", "A", "http://a.com"),
		entryNode("x2", "r", "A", "http://a.com"),
	)

	diff := ComputeDiff(left, right)

	require.Len(t, diff.Unchanged, 2)
	assert.Equal(t, "a1", diff.Unchanged[1].Left.Data.ID())
	assert.Equal(t, "x1", diff.Unchanged[1].Right.Data.ID())

	var leftOnly, rightOnly []string
	for _, n := range diff.OnlyInLeft {
		leftOnly = append(leftOnly, n.Data.ID())
	}
	for _, n := range diff.OnlyInRight {
		rightOnly = append(rightOnly, n.Data.ID())
	}
	assert.Equal(t, []string{"l", "a2"}, leftOnly)
	assert.Equal(t, []string{"x2"}, rightOnly)
}

func TestComputeDiff_Completeness(t *testing.T) {
	left := sampleTree(t)
	right := mustTree(t,
		folderNode("r", "root", "Reading"),
		entryNode("a", "r", "A changed", "http://a.com"),
		entryNode("dup", "r", "Top", "http://top.example"),
		entryNode("top", "root", "Top", "http://top.example"),
		entryNode("z", "root", "Z", "http://z.example"),
	)
	diff := ComputeDiff(left, right)

	leftSeen := make(map[*tree.TreeNode[tree.NodeData]]int)
	rightSeen := make(map[*tree.TreeNode[tree.NodeData]]int)
	for _, n := range diff.OnlyInLeft {
		leftSeen[n]++
	}
	for _, n := range diff.OnlyInRight {
		rightSeen[n]++
	}
	for _, p := range append(append([]Pair[tree.NodeData, tree.NodeData]{}, diff.InBothButDifferent...), diff.Unchanged...) {
		leftSeen[p.Left]++
		rightSeen[p.Right]++
	}

	for _, n := range left.Nodes() {
		assert.Equal(t, 1, leftSeen[n], "left node %s", n.Data.ID())
	}
	for _, n := range right.Nodes() {
		assert.Equal(t, 1, rightSeen[n], "right node %s", n.Data.ID())
	}
}

func TestCompute_HashKey(t *testing.T) {
	left := mustTree(t, entryNode("a", "root", "A", "http://a.com"))
	right := mustTree(t, folderNode("f", "root", "Elsewhere"), entryNode("b", "f", "A", "http://a.com/"))

	diff := Compute(left, right, HashKey)
	require.Len(t, diff.Unchanged, 1)
	assert.Equal(t, "b", diff.Unchanged[0].Right.Data.ID())
	require.Len(t, diff.OnlyInRight, 1)
	assert.Equal(t, "f", diff.OnlyInRight[0].Data.ID())
}

func TestFormatReport(t *testing.T) {
	left := mustTree(t,
		folderNode("r", "root", "Reading"),
		entryNode("a", "r", "A2", "http://a.com"),
		entryNode("n", "r", "New", "http://new.example"),
	)
	right := mustTree(t,
		folderNode("r", "root", "Reading"),
		entryNode("a", "r", "A", "http://a.com"),
		entryNode("o", "root", "Old", "http://old.example"),
	)

	var buf bytes.Buffer
	require.NoError(t, FormatReport(&buf, ComputeDiff(left, right)))
	assert.Equal(t, "+ Reading/New <http://new.example>\n"+
		"- Old <http://old.example>\n"+
		"~ Reading/A2 <http://a.com>  (was \"A\")\n"+
		"1 to add, 1 to remove, 1 to update, 1 unchanged\n", buf.String())
}

func TestSnapshots_MatchAfterSync(t *testing.T) {
	ctx := context.Background()
	src := readingSource().
		addCollection(2, 1, "Go").
		addItem(21, 2, "Blog", "https://go.dev/blog").
		addItem(91, bookmark.UnsortedCollectionID, "Loose", "http://loose.example")
	dest := newFakeDest()
	opts := Options{IncludeUnsorted: true}

	before, err := SourceSnapshot(ctx, src, opts)
	require.NoError(t, err)
	empty, err := DestinationSnapshot(ctx, dest, "root")
	require.NoError(t, err)
	diff := ComputeDiff(before, empty)
	assert.Len(t, diff.OnlyInLeft, 8)

	_, err = newTestEngine(src, dest, state.NewMemoryStore(), opts).IncrementalSync(ctx, src.tree(), "root")
	require.NoError(t, err)

	after, err := DestinationSnapshot(ctx, dest, "root")
	require.NoError(t, err)
	diff = ComputeDiff(before, after)
	assert.False(t, diff.HasChanges(), "unexpected diff: %+v", diff.Summary())
	assert.Len(t, diff.Unchanged, 8)
}

func TestSourceSnapshot_FetchFailure(t *testing.T) {
	src := readingSource()
	src.failItems[1] = errBoom

	_, err := SourceSnapshot(context.Background(), src, Options{})
	var fetch *SourceFetchFailure
	require.ErrorAs(t, err, &fetch)
	assert.Equal(t, int64(1), fetch.CollectionID)
}
