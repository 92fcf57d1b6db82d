package source

import (
	"context"
	"testing"

	"bookmark-sync/core/bookmark"
	"bookmark-sync/core/tree"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const export = `
collections:
  - id: 1
    title: Reading
  - id: 2
    parent: 1
    title: Go
  - id: 3
    title: Recipes
items:
  - id: 11
    collection: 1
    title: A
    link: http://a.com
  - id: 21
    collection: 2
    title: Go blog
    link: https://go.dev/blog
    lastUpdate: 2024-03-01T10:00:00Z
  - id: 91
    title: Loose
    link: http://loose.example
`

func newTestSource(t *testing.T, content string) *Source {
	t.Helper()
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "bookmarks.yaml", []byte(content), 0o644))
	return NewSource(fs, "bookmarks.yaml")
}

func TestSource_ListCollectionsAsTree(t *testing.T) {
	src := newTestSource(t, export)
	src.pageSize = 2

	root, err := src.ListCollectionsAsTree(context.Background())
	require.NoError(t, err)

	assert.True(t, root.IsSynthetic())
	require.Len(t, root.Children, 2)
	assert.Equal(t, "Reading", root.Children[0].Data.Title)
	assert.Equal(t, "Recipes", root.Children[1].Data.Title)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, []string{"Reading", "Go"}, root.Children[0].Children[0].FullPath())
}

func TestSource_ListItems(t *testing.T) {
	src := newTestSource(t, export)
	ctx := context.Background()

	tests := []struct {
		name       string
		collection int64
		want       []int64
	}{
		{"Top level", 1, []int64{11}},
		{"Nested", 2, []int64{21}},
		{"Empty", 3, nil},
		{"Unsorted", bookmark.UnsortedCollectionID, []int64{91}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			items, err := src.ListItems(ctx, tt.collection)
			require.NoError(t, err)
			var ids []int64
			for _, item := range items {
				ids = append(ids, item.ItemID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	items, err := src.ListItems(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 2024, items[0].LastUpdate.Year())
}

func TestSource_JSON(t *testing.T) {
	src := newTestSource(t, `{"collections":[{"id":7,"title":"Only"}],"items":[{"id":1,"collection":7,"title":"X","link":"http://x.example"}]}`)

	root, err := src.ListCollectionsAsTree(context.Background())
	require.NoError(t, err)
	// A single top-level collection becomes the root itself.
	assert.Equal(t, int64(7), root.Data.CollectionID)

	items, err := src.ListItems(context.Background(), 7)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestSource_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"Unparseable", "collections: [", "failed to parse source"},
		{"Duplicate collection", "collections: [{id: 1, title: A}, {id: 1, title: B}]", "duplicate collection id 1"},
		{"Invalid id", "collections: [{id: 0, title: A}]", "invalid id 0"},
		{"Missing link", "items: [{id: 4, collection: 1, title: A}]", "item 4 has no link"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := newTestSource(t, tt.content)
			_, err := src.ListCollectionsAsTree(context.Background())
			assert.ErrorContains(t, err, tt.want)
		})
	}

	t.Run("Missing file", func(t *testing.T) {
		src := NewSource(afero.NewMemMapFs(), "absent.yaml")
		_, err := src.ListItems(context.Background(), 1)
		assert.ErrorContains(t, err, "failed to read source absent.yaml")
	})

	t.Run("Malformed hierarchy", func(t *testing.T) {
		src := newTestSource(t, "collections: [{id: 2, parent: 9, title: Orphan}]")
		_, err := src.ListCollectionsAsTree(context.Background())
		assert.ErrorIs(t, err, tree.ErrMalformedTree)
	})
}

func TestSource_Reload(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "b.yaml", []byte("collections: [{id: 1, title: A}]"), 0o644))
	src := NewSource(fs, "b.yaml")

	_, err := src.ListCollectionsAsTree(context.Background())
	require.NoError(t, err)

	require.NoError(t, afero.WriteFile(fs, "b.yaml", []byte("collections: [{id: 1, title: A}]\nitems: [{id: 5, collection: 1, title: N, link: 'http://n.example'}]"), 0o644))
	items, err := src.ListItems(context.Background(), 1)
	require.NoError(t, err)
	assert.Empty(t, items, "items come from the loaded copy")

	_, err = src.ListCollectionsAsTree(context.Background())
	require.NoError(t, err)
	items, err = src.ListItems(context.Background(), 1)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}
