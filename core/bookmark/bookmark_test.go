package bookmark

import (
	"testing"

	"bookmark-sync/core/tree"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVariantsMatchAcrossSides(t *testing.T) {
	item := Item{ItemID: 7, CollectionID: 3, Title: "A", Link: "http://a.com/"}
	entry := Entry{EntryID: "uuid-1", ParentFolderID: "f", Title: "A", Link: " http://a.com"}

	assert.Equal(t, item.Hash(), entry.Hash())
	assert.NotEqual(t, item.ID(), entry.ID())
	assert.False(t, item.IsFolder())
	assert.False(t, entry.IsFolder())

	coll := Collection{CollectionID: 3, Title: "Reading"}
	fold := Folder{FolderID: "f", Title: "Reading"}
	assert.Equal(t, coll.Hash(), fold.Hash())
	assert.True(t, coll.IsFolder())
	assert.Empty(t, coll.URL())
}

func TestCollectionParent(t *testing.T) {
	assert.Equal(t, "", Collection{CollectionID: 1}.ParentID())
	assert.Equal(t, "1", Collection{CollectionID: 2, ParentCollectionID: 1}.ParentID())
	assert.True(t, Unsorted("Unsorted").IsUnsorted())
}

func TestMixedSourceTree(t *testing.T) {
	// Item and collection ids share numbers but never collide.
	nodes := []tree.NodeData{
		Collection{CollectionID: 1, Title: "Reading"},
		Item{ItemID: 1, CollectionID: 1, Title: "A", Link: "http://a.com/"},
	}

	root, err := tree.CreateTree(nodes)
	require.NoError(t, err)
	assert.Equal(t, 2, root.Len())
	assert.Equal(t, []string{"A"}, root.Find("item:1").FullPath())
}
