package bookmark

import (
	"errors"
	"strconv"
	"time"

	"bookmark-sync/core/tree"
	"bookmark-sync/core/utils"
)

// UnsortedCollectionID is the reserved pseudo-collection holding items that
// belong to no collection.
const UnsortedCollectionID int64 = -1

// ErrNotFound is returned by destination lookups for ids that no longer exist.
var ErrNotFound = errors.New("not found")

// Collection is a folder-like grouping on the source side.
// ParentCollectionID is zero for top-level collections.
type Collection struct {
	CollectionID       int64  `json:"id" yaml:"id"`
	ParentCollectionID int64  `json:"parent,omitempty" yaml:"parent,omitempty"`
	Title              string `json:"title" yaml:"title"`
	Cover              string `json:"cover,omitempty" yaml:"cover,omitempty"`
}

// Unsorted returns the pseudo-collection for unassigned items.
func Unsorted(title string) Collection {
	return Collection{CollectionID: UnsortedCollectionID, Title: title}
}

func (c Collection) ID() string { return CollectionKey(c.CollectionID) }

func (c Collection) ParentID() string {
	if c.ParentCollectionID == 0 {
		return ""
	}
	return CollectionKey(c.ParentCollectionID)
}

func (c Collection) Hash() string   { return utils.Fingerprint("collection", c.Title) }
func (c Collection) Name() string   { return c.Title }
func (c Collection) URL() string    { return "" }
func (c Collection) IsFolder() bool { return true }

// IsUnsorted reports whether c is the reserved pseudo-collection.
func (c Collection) IsUnsorted() bool { return c.CollectionID == UnsortedCollectionID }

// CollectionKey formats a collection id the way Collection.ID does.
func CollectionKey(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Item is a URL-bearing entry on the source side.
type Item struct {
	ItemID       int64     `json:"id" yaml:"id"`
	CollectionID int64     `json:"collection" yaml:"collection"`
	Title        string    `json:"title" yaml:"title"`
	Link         string    `json:"link" yaml:"link"`
	LastUpdate   time.Time `json:"lastUpdate,omitempty" yaml:"lastUpdate,omitempty"`
	Cover        string    `json:"cover,omitempty" yaml:"cover,omitempty"`
}

// Item ids are prefixed so they never collide with collection ids when both
// live in one tree.
func (i Item) ID() string       { return "item:" + strconv.FormatInt(i.ItemID, 10) }
func (i Item) ParentID() string { return CollectionKey(i.CollectionID) }
func (i Item) Hash() string     { return utils.Fingerprint("link", utils.NormalizeURL(i.Link)) }
func (i Item) Name() string     { return i.Title }
func (i Item) URL() string      { return i.Link }
func (i Item) IsFolder() bool   { return false }

// Folder is a container on the destination side.
type Folder struct {
	FolderID       string `json:"id"`
	ParentFolderID string `json:"parentId,omitempty"`
	Title          string `json:"title"`
}

func (f Folder) ID() string       { return f.FolderID }
func (f Folder) ParentID() string { return f.ParentFolderID }
func (f Folder) Hash() string     { return utils.Fingerprint("collection", f.Title) }
func (f Folder) Name() string     { return f.Title }
func (f Folder) URL() string      { return "" }
func (f Folder) IsFolder() bool   { return true }

// Entry is a bookmark on the destination side.
type Entry struct {
	EntryID        string `json:"id"`
	ParentFolderID string `json:"parentId"`
	Title          string `json:"title"`
	Link           string `json:"url"`
}

func (e Entry) ID() string       { return e.EntryID }
func (e Entry) ParentID() string { return e.ParentFolderID }
func (e Entry) Hash() string     { return utils.Fingerprint("link", utils.NormalizeURL(e.Link)) }
func (e Entry) Name() string     { return e.Title }
func (e Entry) URL() string      { return e.Link }
func (e Entry) IsFolder() bool   { return false }

// ItemChanges lists the mutable attributes of a destination entry.
type ItemChanges struct {
	Title string
}

var (
	_ tree.NodeData = Collection{}
	_ tree.NodeData = Item{}
	_ tree.NodeData = Folder{}
	_ tree.NodeData = Entry{}
)
